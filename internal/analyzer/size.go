package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SizeOf returns the size in bytes of a Go type
// Returns error for unsupported types: slices and pointers have no fixed
// in-record representation, and int/uint change width with the platform.
func SizeOf(goType string) (int, error) {
	switch goType {
	case "uint8", "int8", "byte", "bool":
		return 1, nil
	case "uint16", "int16":
		return 2, nil
	case "uint32", "int32", "float32":
		return 4, nil
	case "uint64", "int64", "float64":
		return 8, nil
	case "int", "uint", "uintptr":
		return 0, fmt.Errorf("platform-dependent type not supported: %s", goType)
	}

	if strings.HasPrefix(goType, "[]") {
		return 0, fmt.Errorf("slice types not supported: %s", goType)
	}

	if strings.HasPrefix(goType, "[") && strings.Contains(goType, "]") {
		return arraySize(goType)
	}

	if strings.HasPrefix(goType, "*") {
		return 0, fmt.Errorf("pointer types not supported: %s", goType)
	}

	// Unknown/struct type - needs type registry
	return 0, fmt.Errorf("unknown type: %s (use type registry for structs)", goType)
}

// AlignOf returns the natural alignment Go gives a type on 64-bit targets
func AlignOf(goType string) (int, error) {
	if matches := arrayRe.FindStringSubmatch(goType); matches != nil {
		return AlignOf(matches[2])
	}

	size, err := SizeOf(goType)
	if err != nil {
		return 0, err
	}
	return size, nil
}

var arrayRe = regexp.MustCompile(`^\[(\d+)\](.+)$`)

func arraySize(goType string) (int, error) {
	// Parse: [16]byte → 16 * 1
	matches := arrayRe.FindStringSubmatch(goType)
	if matches == nil {
		return 0, fmt.Errorf("invalid array type: %s", goType)
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid array length: %s", matches[1])
	}

	elemSize, err := SizeOf(matches[2])
	if err != nil {
		return 0, fmt.Errorf("array element: %w", err)
	}

	return n * elemSize, nil
}

// alignUp rounds n up to the next multiple of align
func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

type typeInfo struct {
	size    int
	align   int
	encoded int // bytes its codec reads and writes, without trailing padding
}

// TypeRegistry tracks record sizes and type aliases for layout analysis
type TypeRegistry struct {
	types   map[string]typeInfo // type name → size and alignment
	aliases map[string]string   // alias → underlying type
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types:   make(map[string]typeInfo),
		aliases: make(map[string]string),
	}
}

// Register adds a record type with its size and alignment
func (r *TypeRegistry) Register(name string, size, align int) {
	if align < 1 {
		align = 1
	}
	r.types[name] = typeInfo{size: size, align: align, encoded: size}
}

// RegisterLayout registers an analyzed record so other records can embed it.
// The record occupies NativeSize bytes in its parent but its codec only
// handles BufferSize of them.
func (r *TypeRegistry) RegisterLayout(a *AnalyzedLayout) {
	r.Register(a.TypeName, a.NativeSize, a.NativeAlign)
	info := r.types[a.TypeName]
	info.encoded = a.BufferSize
	r.types[a.TypeName] = info
}

// RegisterAlias adds a type alias mapping (e.g., type Revision uint8)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// Lookup returns the size of a registered type
func (r *TypeRegistry) Lookup(name string) (int, bool) {
	info, ok := r.types[name]
	return info.size, ok
}

// EncodedSize returns how many bytes a registered record's codec handles
func (r *TypeRegistry) EncodedSize(goType string) (int, bool) {
	info, ok := r.types[r.ResolveType(goType)]
	return info.encoded, ok
}

// ResolveType resolves type aliases to their underlying types
// Returns the original type if not an alias. A cycle stops at the first
// repeated name, which then fails to size.
func (r *TypeRegistry) ResolveType(goType string) string {
	seen := make(map[string]bool)
	for !seen[goType] {
		seen[goType] = true
		underlying, ok := r.aliases[goType]
		if !ok {
			return goType
		}
		goType = underlying
	}
	return goType
}

// IsRecord reports whether goType names a registered record
func (r *TypeRegistry) IsRecord(goType string) bool {
	_, ok := r.types[r.ResolveType(goType)]
	return ok
}

// SizeOf calculates size using registry for record types
func (r *TypeRegistry) SizeOf(goType string) (int, error) {
	if matches := arrayRe.FindStringSubmatch(goType); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		elemSize, err := r.SizeOf(matches[2])
		if err != nil {
			return 0, err
		}
		return n * elemSize, nil
	}

	resolved := r.ResolveType(goType)
	if _, ok := r.aliases[resolved]; ok {
		return 0, fmt.Errorf("alias cycle through %s", resolved)
	}

	size, err := SizeOf(resolved)
	if err == nil {
		return size, nil
	}

	if info, ok := r.types[resolved]; ok {
		return info.size, nil
	}

	return 0, err
}

// AlignOf is AlignOf with registered records and aliases
func (r *TypeRegistry) AlignOf(goType string) (int, error) {
	if matches := arrayRe.FindStringSubmatch(goType); matches != nil {
		return r.AlignOf(matches[2])
	}

	resolved := r.ResolveType(goType)
	if _, ok := r.aliases[resolved]; ok {
		return 0, fmt.Errorf("alias cycle through %s", resolved)
	}

	align, err := AlignOf(resolved)
	if err == nil {
		return align, nil
	}

	if info, ok := r.types[resolved]; ok {
		return info.align, nil
	}

	return 0, err
}
