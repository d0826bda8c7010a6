package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	file, err := ParseFile("testdata/simple.go")
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}

	if file.Package != "testdata" {
		t.Errorf("Package = %q, want %q", file.Package, "testdata")
	}

	// IgnoredType has no @layout annotation
	if len(file.Types) != 4 {
		t.Fatalf("ParseFile() found %d types, want 4", len(file.Types))
	}

	if got := file.Aliases["Revision"]; got != "uint8" {
		t.Errorf("Aliases[Revision] = %q, want %q", got, "uint8")
	}

	v1 := file.Types[0]
	if v1.Name != "RecordV1" {
		t.Errorf("types[0].Name = %q, want %q", v1.Name, "RecordV1")
	}
	if v1.Anno.Revision != 1 {
		t.Errorf("RecordV1.Anno.Revision = %d, want 1", v1.Anno.Revision)
	}
	if len(v1.Fields) != 2 {
		t.Fatalf("RecordV1 has %d fields, want 2", len(v1.Fields))
	}

	f1 := v1.Fields[1]
	if f1.Name != "Major" || f1.GoType != "uint8" || f1.Layout.Offset != 1 {
		t.Errorf("fields[1] = {%s %s @%d}, want {Major uint8 @1}",
			f1.Name, f1.GoType, f1.Layout.Offset)
	}

	v2 := file.Types[1]
	if v2.Anno.Revision != 2 {
		t.Errorf("RecordV2.Anno.Revision = %d, want 2", v2.Anno.Revision)
	}
	if len(v2.Fields) != 3 {
		t.Fatalf("RecordV2 has %d fields, want 3", len(v2.Fields))
	}
	calls := v2.Fields[2]
	if calls.Name != "calls" || !calls.Private || calls.Layout.Offset != 2 {
		t.Errorf("fields[2] = {%s private=%v @%d}, want {calls private=true @2}",
			calls.Name, calls.Private, calls.Layout.Offset)
	}

	header := file.Types[2]
	if header.Anno.Size != 8 || header.Anno.Endian != "big" {
		t.Errorf("Header.Anno = {size=%d endian=%s}, want {size=8 endian=big}",
			header.Anno.Size, header.Anno.Endian)
	}
	if len(header.Fields) != 3 {
		t.Fatalf("Header has %d fields, want 3", len(header.Fields))
	}
	if header.Fields[0].GoType != "[4]byte" {
		t.Errorf("Header.Magic GoType = %q, want %q", header.Fields[0].GoType, "[4]byte")
	}
}

func TestParseFileRejectsDynamicRegions(t *testing.T) {
	_, err := ParseFile("testdata/invalid.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
	assert.Contains(t, err.Error(), "Body")
}

func TestParseSource(t *testing.T) {
	src := `package lib

type (
	// @layout revision=3
	Grouped struct {
		A uint32 ` + "`layout:\"@0\"`" + `
	}

	Plain struct {
		B uint32 ` + "`layout:\"@0\"`" + `
	}
)
`
	file, err := ParseSource("lib.go", src)
	require.NoError(t, err)
	require.Len(t, file.Types, 1)

	got, ok := file.Lookup("Grouped")
	require.True(t, ok)
	assert.Equal(t, 3, got.Anno.Revision)

	_, ok = file.Lookup("Plain")
	assert.False(t, ok)
}

func TestParseSourceBadAnnotation(t *testing.T) {
	src := `package lib

// @layout revision=zero
type Record struct {
	A uint8 ` + "`layout:\"@0\"`" + `
}
`
	_, err := ParseSource("lib.go", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid revision")
}

func TestParseSourceSyntaxError(t *testing.T) {
	_, err := ParseSource("lib.go", "package lib\ntype {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}
