package parser

import (
	"fmt"
)

// Example demonstrating tag parsing for the two revisions of a record
func ExampleParseTag() {
	// // @layout revision=2
	// type Record struct {
	//   Minor uint8 `layout:"@0"`
	//   Major uint8 `layout:"@1"`
	//   calls uint8 `layout:"@2"`
	// }
	tags := []string{
		"@0",        // Minor
		"@1",        // Major
		"@2",        // calls, added in revision 2
		"start-end", // not a record field
	}

	for i, tag := range tags {
		layout, err := ParseTag(tag)
		if err != nil {
			fmt.Printf("Field%d: ERROR: %v\n", i+1, err)
			continue
		}
		fmt.Printf("Field%d (%s): fixed at byte %d\n", i+1, tag, layout.Offset)
	}

	// Output:
	// Field1 (@0): fixed at byte 0
	// Field2 (@1): fixed at byte 1
	// Field3 (@2): fixed at byte 2
	// Field4: ERROR: dynamic region "start-end" not supported in records
}
