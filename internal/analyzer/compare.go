package analyzer

import (
	"fmt"
	"strings"
)

// BreakKind classifies a binary-compatibility break between two revisions
type BreakKind int

const (
	SizeChanged   BreakKind = iota // Callers allocate the wrong number of bytes
	AlignChanged                   // Callers may place the record at a bad address
	EndianChanged                  // Multi-byte fields decode to different values
	FieldRemoved                   // Library no longer reads a field callers write
	FieldMoved                     // Same field, different offset
	FieldRetyped                   // Same field, different type
	FieldAdded                     // Library reads bytes callers never initialized
	TypeRemoved                    // Callers still pass a record the library no longer declares
)

var breakKindNames = [...]string{
	SizeChanged:   "size-changed",
	AlignChanged:  "align-changed",
	EndianChanged: "endian-changed",
	FieldRemoved:  "field-removed",
	FieldMoved:    "field-moved",
	FieldRetyped:  "field-retyped",
	FieldAdded:    "field-added",
	TypeRemoved:   "type-removed",
}

func (k BreakKind) String() string {
	if k < 0 || int(k) >= len(breakKindNames) {
		return "unknown"
	}
	return breakKindNames[k]
}

// MarshalText renders the kind by name in JSON and YAML reports
func (k BreakKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Break is a single incompatibility found by Compare
type Break struct {
	Kind  BreakKind `json:"kind" yaml:"kind"`
	Field string    `json:"field,omitempty" yaml:"field,omitempty"`
	Old   string    `json:"old,omitempty" yaml:"old,omitempty"`
	New   string    `json:"new,omitempty" yaml:"new,omitempty"`
}

func (b Break) String() string {
	switch b.Kind {
	case SizeChanged:
		return fmt.Sprintf("size changed: %s -> %s bytes", b.Old, b.New)
	case AlignChanged:
		return fmt.Sprintf("alignment changed: %s -> %s", b.Old, b.New)
	case EndianChanged:
		return fmt.Sprintf("endianness changed: %s -> %s", b.Old, b.New)
	case FieldRemoved:
		return fmt.Sprintf("field %s removed (was %s)", b.Field, b.Old)
	case FieldMoved:
		return fmt.Sprintf("field %s moved: %s -> %s", b.Field, b.Old, b.New)
	case FieldRetyped:
		return fmt.Sprintf("field %s retyped: %s -> %s", b.Field, b.Old, b.New)
	case FieldAdded:
		return fmt.Sprintf("field %s added (%s)", b.Field, b.New)
	case TypeRemoved:
		return fmt.Sprintf("type removed (was %s)", b.Old)
	default:
		return fmt.Sprintf("%s %s: %s -> %s", b.Kind, b.Field, b.Old, b.New)
	}
}

// Comparison is the outcome of checking a newer record revision against an
// older one that callers were built with
type Comparison struct {
	TypeName    string  `json:"type" yaml:"type"`
	OldRevision int     `json:"old_revision" yaml:"old_revision"`
	NewRevision int     `json:"new_revision" yaml:"new_revision"`
	OldSize     int     `json:"old_size" yaml:"old_size"`
	NewSize     int     `json:"new_size" yaml:"new_size"`
	Removed     bool    `json:"removed,omitempty" yaml:"removed,omitempty"`
	Breaks      []Break `json:"breaks" yaml:"breaks"`
}

// Compatible reports whether code built against the old revision can share
// records with code built against the new one
func (c *Comparison) Compatible() bool {
	return len(c.Breaks) == 0
}

func (c *Comparison) String() string {
	var b strings.Builder
	if c.Removed {
		fmt.Fprintf(&b, "%s: revision %d (%d bytes) -> removed\n",
			c.TypeName, c.OldRevision, c.OldSize)
	} else {
		fmt.Fprintf(&b, "%s: revision %d (%d bytes) -> revision %d (%d bytes)\n",
			c.TypeName, c.OldRevision, c.OldSize, c.NewRevision, c.NewSize)
	}
	if c.Compatible() {
		b.WriteString("  layout compatible\n")
		return b.String()
	}
	for _, br := range c.Breaks {
		fmt.Fprintf(&b, "  BREAK %s\n", br)
	}
	return b.String()
}

// Compare checks the new revision of a record against the old one.
// Fields are matched by name.
func Compare(prev, next *AnalyzedLayout) *Comparison {
	c := &Comparison{
		TypeName:    next.TypeName,
		OldRevision: prev.Revision,
		NewRevision: next.Revision,
		OldSize:     prev.NativeSize,
		NewSize:     next.NativeSize,
	}

	if prev.NativeSize != next.NativeSize {
		c.add(SizeChanged, "", fmt.Sprint(prev.NativeSize), fmt.Sprint(next.NativeSize))
	}
	if prev.NativeAlign != next.NativeAlign {
		c.add(AlignChanged, "", fmt.Sprint(prev.NativeAlign), fmt.Sprint(next.NativeAlign))
	}
	if prev.Endian != next.Endian && hasMultiByte(prev) && hasMultiByte(next) {
		c.add(EndianChanged, "", prev.Endian, next.Endian)
	}

	for _, before := range prev.Regions {
		name := before.Field.Name
		after, ok := next.Region(name)
		if !ok {
			c.add(FieldRemoved, name, describe(before), "")
			continue
		}
		if before.Start != after.Start {
			c.add(FieldMoved, name, fmt.Sprintf("@%d", before.Start), fmt.Sprintf("@%d", after.Start))
		}
		if before.Field.GoType != after.Field.GoType {
			c.add(FieldRetyped, name, before.Field.GoType, after.Field.GoType)
		}
	}

	for _, after := range next.Regions {
		if _, ok := prev.Region(after.Field.Name); !ok {
			c.add(FieldAdded, after.Field.Name, "", describe(after))
		}
	}

	return c
}

// Removed reports a record that the new revision no longer declares
func Removed(prev *AnalyzedLayout) *Comparison {
	c := &Comparison{
		TypeName:    prev.TypeName,
		OldRevision: prev.Revision,
		OldSize:     prev.NativeSize,
		Removed:     true,
	}
	c.add(TypeRemoved, "", fmt.Sprintf("%d bytes", prev.NativeSize), "")
	return c
}

func (c *Comparison) add(kind BreakKind, field, from, to string) {
	c.Breaks = append(c.Breaks, Break{Kind: kind, Field: field, Old: from, New: to})
}

func describe(r Region) string {
	s := fmt.Sprintf("%s @%d", r.Field.GoType, r.Start)
	if r.Field.Private {
		s += ", private"
	}
	return s
}

func hasMultiByte(a *AnalyzedLayout) bool {
	for _, r := range a.Regions {
		if r.Align > 1 {
			return true
		}
	}
	return false
}
