// Package rev2 is the second revision of the versioned-record library.
//
// Record gained a private call counter, so it is one byte larger than in
// revision 1. Code built against rev1 and code built against rev2 must not
// exchange records in raw memory.
package rev2

import (
	"fmt"
	"io"
	"os"
	"unsafe"
)

//go:generate go run github.com/alexhholmes/abilayout/cmd/abicheck gen record.go

// Record carries a two-part version number and counts how often its version
// was queried.
//
// @layout revision=2
type Record struct {
	Minor uint8 `layout:"@0"`
	Major uint8 `layout:"@1"`
	calls uint8 `layout:"@2"`
}

// IncrementCallCount bumps the call counter. It wraps at 256.
func (r *Record) IncrementCallCount() {
	r.calls++
}

// CountCalls returns the call counter.
func (r *Record) CountCalls() int {
	return int(r.calls)
}

var output io.Writer = os.Stdout

// SetOutput sets where GetVersion reports its calls and returns the
// previous writer. The default is standard output.
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

// GetVersion counts the call on r, reports the new count and returns
// major*10000 + minor.
func GetVersion(r *Record) int {
	r.IncrementCallCount()

	fmt.Fprintf(output, "GetVersion was called. Count: %d\n", r.CountCalls())

	return int(r.Major)*10000 + int(r.Minor)
}

// GetObjectSize returns the size of Record as compiled into this revision.
func GetObjectSize() int {
	return int(unsafe.Sizeof(Record{}))
}
