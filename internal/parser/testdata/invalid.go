package testdata

// @layout
type Broken struct {
	Head uint16 `layout:"@0"`
	Body []byte `layout:"start-end"`
}
