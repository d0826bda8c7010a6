package testdata

// @layout revision=1
type RecordV1 struct {
	Minor uint8 `layout:"@0"`
	Major uint8 `layout:"@1"`
}

// @layout revision=2
type RecordV2 struct {
	Minor uint8 `layout:"@0"`
	Major uint8 `layout:"@1"`
	calls uint8 `layout:"@2"`
}

// @layout size=8 endian=big
type Header struct {
	Magic   [4]byte `layout:"@0"`
	Version uint16  `layout:"@4"`
	Flags   uint16  `layout:"@6"`
	scratch int     // untagged, not part of the layout
}

// No annotation - should be skipped
type IgnoredType struct {
	Field uint32 `layout:"@0"`
}

type Revision uint8

// @layout revision=3
type Tagged struct {
	Rev Revision `layout:"@0"`
}
