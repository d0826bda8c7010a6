package analyzer

import (
	"strings"
	"testing"
)

func TestSizeOf(t *testing.T) {
	tests := []struct {
		goType   string
		wantSize int
		wantErr  bool
	}{
		// Primitive types
		{"uint8", 1, false},
		{"int8", 1, false},
		{"byte", 1, false},
		{"bool", 1, false},
		{"uint16", 2, false},
		{"int16", 2, false},
		{"uint32", 4, false},
		{"int32", 4, false},
		{"float32", 4, false},
		{"uint64", 8, false},
		{"int64", 8, false},
		{"float64", 8, false},

		// Arrays
		{"[16]byte", 16, false},
		{"[8]uint32", 32, false},
		{"[4]uint64", 32, false},
		{"[10]uint8", 10, false},

		// Error cases
		{"int", 0, true},        // platform width
		{"uintptr", 0, true},    // platform width
		{"[]byte", 0, true},     // slice
		{"*uint32", 0, true},    // pointer
		{"Record", 0, true},     // unknown struct
		{"[16]*byte", 0, true},  // array of pointers
		{"[abc]byte", 0, true},  // invalid array size
		{"[4][]byte", 0, true},  // array of slices
	}

	for _, tt := range tests {
		t.Run(tt.goType, func(t *testing.T) {
			got, err := SizeOf(tt.goType)

			if tt.wantErr {
				if err == nil {
					t.Errorf("SizeOf(%q) expected error, got nil", tt.goType)
				}
				return
			}

			if err != nil {
				t.Fatalf("SizeOf(%q) unexpected error: %v", tt.goType, err)
			}

			if got != tt.wantSize {
				t.Errorf("SizeOf(%q) = %d, want %d", tt.goType, got, tt.wantSize)
			}
		})
	}
}

func TestAlignOf(t *testing.T) {
	tests := []struct {
		goType    string
		wantAlign int
	}{
		{"uint8", 1},
		{"bool", 1},
		{"uint16", 2},
		{"float32", 4},
		{"int64", 8},
		{"[16]byte", 1},
		{"[3]uint32", 4},
	}

	for _, tt := range tests {
		got, err := AlignOf(tt.goType)
		if err != nil {
			t.Fatalf("AlignOf(%q) unexpected error: %v", tt.goType, err)
		}
		if got != tt.wantAlign {
			t.Errorf("AlignOf(%q) = %d, want %d", tt.goType, got, tt.wantAlign)
		}
	}
}

func TestTypeRegistry(t *testing.T) {
	reg := NewTypeRegistry()

	reg.Register("Version", 2, 1)
	reg.Register("Stamp", 16, 8)
	reg.RegisterAlias("Revision", "uint8")
	reg.RegisterAlias("Tag", "Revision")

	tests := []struct {
		goType    string
		wantSize  int
		wantAlign int
		wantErr   bool
	}{
		// Built-in types still work
		{"uint64", 8, 8, false},

		// Aliases, including chains
		{"Revision", 1, 1, false},
		{"Tag", 1, 1, false},

		// Registered records
		{"Version", 2, 1, false},
		{"Stamp", 16, 8, false},

		// Arrays of registered records
		{"[4]Version", 8, 1, false},
		{"[2]Stamp", 32, 8, false},

		// Unregistered struct
		{"Unknown", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.goType, func(t *testing.T) {
			size, err := reg.SizeOf(tt.goType)

			if tt.wantErr {
				if err == nil {
					t.Errorf("SizeOf(%q) expected error, got nil", tt.goType)
				}
				return
			}

			if err != nil {
				t.Fatalf("SizeOf(%q) unexpected error: %v", tt.goType, err)
			}
			if size != tt.wantSize {
				t.Errorf("SizeOf(%q) = %d, want %d", tt.goType, size, tt.wantSize)
			}

			align, err := reg.AlignOf(tt.goType)
			if err != nil {
				t.Fatalf("AlignOf(%q) unexpected error: %v", tt.goType, err)
			}
			if align != tt.wantAlign {
				t.Errorf("AlignOf(%q) = %d, want %d", tt.goType, align, tt.wantAlign)
			}
		})
	}

	if !reg.IsRecord("Version") || reg.IsRecord("Revision") {
		t.Error("IsRecord should only report registered records")
	}
}

func TestTypeRegistry_AliasCycle(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterAlias("A", "B")
	reg.RegisterAlias("B", "A")

	if _, err := reg.SizeOf("A"); err == nil || !strings.Contains(err.Error(), "alias cycle") {
		t.Errorf("SizeOf(A) error = %v, want alias cycle", err)
	}
	if _, err := reg.AlignOf("[2]B"); err == nil || !strings.Contains(err.Error(), "alias cycle") {
		t.Errorf("AlignOf([2]B) error = %v, want alias cycle", err)
	}
	if reg.IsRecord("A") {
		t.Error("IsRecord(A) = true for an alias cycle")
	}
}

func TestTypeRegistry_EncodedSize(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterLayout(&AnalyzedLayout{TypeName: "Inner", BufferSize: 5, NativeSize: 8, NativeAlign: 4})
	reg.RegisterAlias("Alias", "Inner")
	reg.Register("Plain", 2, 1)

	tests := []struct {
		goType string
		want   int
		ok     bool
	}{
		{"Inner", 5, true},
		{"Alias", 5, true},
		{"Plain", 2, true},
		{"Missing", 0, false},
	}
	for _, tt := range tests {
		got, ok := reg.EncodedSize(tt.goType)
		if got != tt.want || ok != tt.ok {
			t.Errorf("EncodedSize(%q) = %d, %v; want %d, %v", tt.goType, got, ok, tt.want, tt.ok)
		}
	}

	size, err := reg.SizeOf("Inner")
	if err != nil || size != 8 {
		t.Errorf("SizeOf(Inner) = %d, %v; want 8", size, err)
	}
}
