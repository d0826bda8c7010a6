package report

import (
	"fmt"
	"strings"

	"github.com/alexhholmes/abilayout/internal/analyzer"
)

// FieldInfo is one field of a dumped layout.
type FieldInfo struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Offset  int    `json:"offset" yaml:"offset"`
	Size    int    `json:"size" yaml:"size"`
	Private bool   `json:"private,omitempty" yaml:"private,omitempty"`
}

// LayoutInfo is the dump of one analyzed record.
type LayoutInfo struct {
	Name       string      `json:"name" yaml:"name"`
	Revision   int         `json:"revision,omitempty" yaml:"revision,omitempty"`
	Endian     string      `json:"endian" yaml:"endian"`
	Size       int         `json:"size" yaml:"size"`
	NativeSize int         `json:"native_size" yaml:"native_size"`
	Fields     []FieldInfo `json:"fields" yaml:"fields"`
}

// Layouts is a dump of every record in a file.
type Layouts []LayoutInfo

// FromAnalyzed converts analyzer output for reporting.
func FromAnalyzed(a *analyzer.AnalyzedLayout) LayoutInfo {
	info := LayoutInfo{
		Name:       a.TypeName,
		Revision:   a.Revision,
		Endian:     a.Endian,
		Size:       a.BufferSize,
		NativeSize: a.NativeSize,
	}
	for _, r := range a.Regions {
		info.Fields = append(info.Fields, FieldInfo{
			Name:    r.Field.Name,
			Type:    r.Field.GoType,
			Offset:  r.Start,
			Size:    r.Size(),
			Private: r.Field.Private,
		})
	}
	return info
}

func (l Layouts) String() string {
	if len(l) == 0 {
		return "No types with @layout annotations found\n"
	}

	var b strings.Builder
	for _, t := range l {
		fmt.Fprintf(&b, "\n%s (size=%d, native=%d, endian=%s", t.Name, t.Size, t.NativeSize, t.Endian)
		if t.Revision > 0 {
			fmt.Fprintf(&b, ", revision=%d", t.Revision)
		}
		b.WriteString(")\nFields:\n")
		for _, f := range t.Fields {
			fmt.Fprintf(&b, "  %-15s %-20s @%d", f.Name, f.Type, f.Offset)
			if f.Private {
				b.WriteString(" (private)")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
