package analyzer

import (
	"fmt"
	"sort"

	"github.com/alexhholmes/abilayout/internal/parser"
)

// Region represents the bytes a record field occupies
type Region struct {
	Start        int // Byte offset where the field begins
	Boundary     int // Byte offset one past the field's last byte
	Align        int // Natural alignment of the field type
	NativeOffset int // Offset Go's compiler assigns the field
	Record       bool
	Field        parser.Field
}

// Size returns the number of bytes in the region
func (r Region) Size() int {
	return r.Boundary - r.Start
}

// AnalyzedLayout contains the analyzed memory layout of one record revision
type AnalyzedLayout struct {
	TypeName    string
	Revision    int
	Endian      string
	BufferSize  int // Encoded size: annotation size, else end of last field
	NativeSize  int // unsafe.Sizeof of the struct, padding included
	NativeAlign int
	Regions     []Region // Sorted by Start
	Errors      []string // Validation errors
}

// Analyze performs layout analysis on a parsed type
func Analyze(layout *parser.TypeLayout, registry *TypeRegistry) (*AnalyzedLayout, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout is nil")
	}
	if registry == nil {
		registry = NewTypeRegistry()
	}

	a := &AnalyzedLayout{
		TypeName:    layout.Name,
		Revision:    layout.Anno.Revision,
		Endian:      layout.Anno.Endian,
		BufferSize:  layout.Anno.Size,
		NativeAlign: 1,
	}

	// Phase 1: Build regions in declaration order, tracking where Go puts each field
	native := 0
	for _, field := range layout.Fields {
		region, err := buildRegion(field, registry)
		if err != nil {
			a.Errors = append(a.Errors, fmt.Sprintf("%s: %v", field.Name, err))
			continue
		}

		native = alignUp(native, region.Align)
		region.NativeOffset = native
		native += region.Size()
		if region.Align > a.NativeAlign {
			a.NativeAlign = region.Align
		}

		a.Regions = append(a.Regions, region)
	}

	if len(a.Errors) > 0 {
		return a, fmt.Errorf("layout has %d errors", len(a.Errors))
	}

	a.NativeSize = alignUp(native, a.NativeAlign)

	// Phase 2: Settle the encoded size
	end := 0
	for _, region := range a.Regions {
		if region.Boundary > end {
			end = region.Boundary
		}
	}
	if a.BufferSize == 0 {
		a.BufferSize = end
	}
	for _, region := range a.Regions {
		if region.Boundary > a.BufferSize {
			a.Errors = append(a.Errors,
				fmt.Sprintf("%s: field [%d, %d) exceeds buffer size %d",
					region.Field.Name, region.Start, region.Boundary, a.BufferSize))
		}
	}

	// Phase 3: Declared offsets must match the in-memory layout
	for _, region := range a.Regions {
		if region.Start != region.NativeOffset {
			a.Errors = append(a.Errors,
				fmt.Sprintf("%s: declared @%d but Go places it at %d",
					region.Field.Name, region.Start, region.NativeOffset))
		}
	}

	// Phase 4: Detect collisions
	sort.SliceStable(a.Regions, func(i, j int) bool {
		return a.Regions[i].Start < a.Regions[j].Start
	})
	detectCollisions(a)

	if len(a.Errors) > 0 {
		return a, fmt.Errorf("layout has %d errors", len(a.Errors))
	}

	return a, nil
}

func buildRegion(field parser.Field, registry *TypeRegistry) (Region, error) {
	r := Region{Field: field}

	size, err := registry.SizeOf(field.GoType)
	if err != nil {
		return r, fmt.Errorf("cannot determine size: %w", err)
	}
	align, err := registry.AlignOf(field.GoType)
	if err != nil {
		return r, fmt.Errorf("cannot determine alignment: %w", err)
	}

	r.Start = field.Layout.Offset
	r.Boundary = field.Layout.Offset + size
	r.Align = align
	r.Record = registry.IsRecord(field.GoType)

	return r, nil
}

func detectCollisions(a *AnalyzedLayout) {
	for i := 0; i < len(a.Regions)-1; i++ {
		r1 := a.Regions[i]
		r2 := a.Regions[i+1]

		if r1.Boundary > r2.Start {
			a.Errors = append(a.Errors,
				fmt.Sprintf("collision: %s [%d, %d) overlaps %s [%d, %d)",
					r1.Field.Name, r1.Start, r1.Boundary,
					r2.Field.Name, r2.Start, r2.Boundary))
		}
	}
}

// IsValid returns true if layout has no errors
func (a *AnalyzedLayout) IsValid() bool {
	return len(a.Errors) == 0
}

// Region returns the region holding the named field
func (a *AnalyzedLayout) Region(field string) (Region, bool) {
	for _, r := range a.Regions {
		if r.Field.Name == field {
			return r, true
		}
	}
	return Region{}, false
}
