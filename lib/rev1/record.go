// Package rev1 is the first revision of the versioned-record library.
//
// Record is two bytes: minor then major version. Callers built against this
// revision allocate exactly GetObjectSize() bytes per record.
package rev1

import "unsafe"

//go:generate go run github.com/alexhholmes/abilayout/cmd/abicheck gen record.go

// Record carries a two-part version number.
//
// @layout revision=1
type Record struct {
	Minor uint8 `layout:"@0"`
	Major uint8 `layout:"@1"`
}

// GetVersion returns major*10000 + minor.
func GetVersion(r *Record) int {
	return int(r.Major)*10000 + int(r.Minor)
}

// GetObjectSize returns the size of Record as compiled into this revision.
func GetObjectSize() int {
	return int(unsafe.Sizeof(Record{}))
}
