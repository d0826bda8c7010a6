package nested

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaddedSizes(t *testing.T) {
	assert.Equal(t, uintptr(8), unsafe.Sizeof(Inner{}))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(Outer{}.C))
}

func TestOuterRoundTrip(t *testing.T) {
	in := Outer{In: Inner{A: 0xDEADBEEF, B: 0x7F}, C: 0x42}

	buf, err := in.MarshalLayout()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE, 0x7F, 0, 0, 0, 0x42}, buf)

	var out Outer
	require.NoError(t, out.UnmarshalLayout(buf))
	assert.Equal(t, in, out)
}

func TestOuterShortBuffer(t *testing.T) {
	var out Outer
	assert.EqualError(t, out.UnmarshalLayout(make([]byte, 8)), "expected 9 bytes, got 8")
}
