// Package nested holds records that embed other records, with padding Go
// inserts around them, so the generated codecs are compiled and exercised.
package nested

//go:generate go run github.com/alexhholmes/abilayout/cmd/abicheck gen nested.go

// Inner ends in three bytes of padding: Go rounds its size up to 8.
//
// @layout revision=1
type Inner struct {
	A uint32 `layout:"@0"`
	B uint8  `layout:"@4"`
}

// Outer embeds Inner with its padding, so C sits at 8.
//
// @layout revision=1
type Outer struct {
	In Inner `layout:"@0"`
	C  uint8 `layout:"@8"`
}
