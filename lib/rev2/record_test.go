package rev2

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/abilayout/lib/rev1"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	return &buf
}

func TestGetVersion(t *testing.T) {
	out := captureOutput(t)

	r := Record{Minor: 0xCD, Major: 0xAB}
	assert.Equal(t, 1710205, GetVersion(&r))
	assert.Equal(t, "GetVersion was called. Count: 1\n", out.String())
	assert.Equal(t, 1, r.CountCalls())
}

func TestGetVersionCountsCalls(t *testing.T) {
	for _, n := range []int{0, 1, 3, 255, 256, 300, 513} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			out := captureOutput(t)

			r := Record{Minor: 7, Major: 3}
			for i := 0; i < n; i++ {
				require.Equal(t, 30007, GetVersion(&r))
			}

			assert.Equal(t, n%256, r.CountCalls())

			lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
			if n == 0 {
				assert.Empty(t, out.String())
				return
			}
			require.Len(t, lines, n)
			for i, line := range lines {
				want := fmt.Sprintf("GetVersion was called. Count: %d", (i+1)%256)
				if line != want {
					t.Fatalf("line %d = %q, want %q", i, line, want)
				}
			}
		})
	}
}

func TestIncrementCallCountWraps(t *testing.T) {
	r := Record{calls: 255}
	r.IncrementCallCount()
	assert.Equal(t, 0, r.CountCalls())
}

func TestCountCallsHasNoSideEffect(t *testing.T) {
	r := Record{calls: 4}
	r.CountCalls()
	assert.Equal(t, 4, r.CountCalls())
}

func TestGetObjectSize(t *testing.T) {
	assert.GreaterOrEqual(t, GetObjectSize(), 3)
	assert.NotEqual(t, rev1.GetObjectSize(), GetObjectSize())
}

func TestLayoutRoundTrip(t *testing.T) {
	r := Record{Minor: 0xCD, Major: 0xAB, calls: 9}
	buf, err := r.MarshalLayout()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCD, 0xAB, 9}, buf)

	var got Record
	require.NoError(t, got.UnmarshalLayout(buf))
	assert.Equal(t, r, got)

	assert.Error(t, got.UnmarshalLayout(buf[:2]), "a revision 1 sized buffer is not a revision 2 record")
}

func TestLibrary(t *testing.T) {
	out := captureOutput(t)
	lib := Library{}
	assert.Equal(t, 2, lib.Revision())
	assert.Equal(t, 3, lib.ObjectSize())

	mem := make([]byte, 3)
	require.NoError(t, lib.Place(mem, 0xCD, 0xAB))
	assert.Equal(t, []byte{0xCD, 0xAB, 0}, mem)

	for i := 1; i <= 2; i++ {
		v, err := lib.CallGetVersion(mem)
		require.NoError(t, err)
		assert.Equal(t, 1710205, v)
		assert.Equal(t, byte(i), mem[2], "counter persists in memory")
	}
	assert.Equal(t, "GetVersion was called. Count: 1\nGetVersion was called. Count: 2\n", out.String())

	_, err := lib.CallGetVersion(mem[:2])
	assert.Error(t, err)
}
