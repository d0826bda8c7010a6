package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldLayout is the placement of a single record field.
type FieldLayout struct {
	Offset int // byte position of the field inside the record
}

// ParseTag parses layout struct tags
//
// Records are plain old data, so every field sits at a fixed offset:
//
//	"@0"  → field at byte 0
//	"@2"  → field at byte 2
//
// Directional regions ("start-end", "end-start") describe variable-size
// pages and are rejected here.
func ParseTag(tag string) (*FieldLayout, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty layout tag")
	}

	if strings.Contains(tag, ",") {
		return nil, fmt.Errorf("unexpected parameters in tag: %s", tag)
	}

	if tag == "start-end" || tag == "end-start" {
		return nil, fmt.Errorf("dynamic region %q not supported in records", tag)
	}

	if !strings.HasPrefix(tag, "@") {
		return nil, fmt.Errorf("invalid layout tag: %s (expected @N)", tag)
	}

	offset, err := strconv.Atoi(strings.TrimPrefix(tag, "@"))
	if err != nil {
		return nil, fmt.Errorf("invalid offset: %s", tag)
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset must not be negative: %s", tag)
	}

	return &FieldLayout{Offset: offset}, nil
}
