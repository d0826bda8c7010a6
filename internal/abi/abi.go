// Package abi simulates callers and libraries that were compiled against
// different revisions of a record exchanging that record in raw memory.
//
// The caller lays out the record with its own revision's size inside a
// frame, followed by guard bytes standing in for whatever memory happens to
// sit next to the record. The library then runs against the same frame
// using its own revision's layout. Any guard byte that changes is memory the
// library had no business touching.
package abi

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alexhholmes/abilayout/internal/logger"
)

// Guard fills the bytes that follow the caller's record.
const Guard byte = 0xEE

// DefaultGuardBytes is how much neighbouring memory a frame carries.
const DefaultGuardBytes = 4

// ErrFrameTooSmall is returned when the library's record does not even fit
// in the caller's frame, so the simulation cannot run at all.
var ErrFrameTooSmall = errors.New("frame too small for library record")

// Library is one revision of the record library seen through its binary
// interface.
type Library interface {
	Revision() int
	ObjectSize() int
	// Place constructs a record the way a caller of this revision would and
	// stores it at the start of mem.
	Place(mem []byte, minor, major uint8) error
	// CallGetVersion runs GetVersion on the record stored at the start of mem.
	CallGetVersion(mem []byte) (int, error)
}

// Frame is a window of memory holding a record and its neighbours.
type Frame []byte

// MarshalText renders the frame as spaced hex, e.g. "cd ab ee".
func (f Frame) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("% x", []byte(f))), nil
}

// split renders the frame with a bar after the caller's record
func (f Frame) split(at int) string {
	if at >= len(f) {
		return fmt.Sprintf("% x", []byte(f))
	}
	return fmt.Sprintf("% x | % x", []byte(f[:at]), []byte(f[at:]))
}

// Corruption is a byte outside the caller's record that the library changed.
type Corruption struct {
	Offset int  `json:"offset" yaml:"offset"`
	Was    byte `json:"was" yaml:"was"`
	Now    byte `json:"now" yaml:"now"`
}

// Result describes one simulated call.
type Result struct {
	CallerRevision int          `json:"caller_revision" yaml:"caller_revision"`
	CalleeRevision int          `json:"callee_revision" yaml:"callee_revision"`
	CallerSize     int          `json:"caller_size" yaml:"caller_size"`
	CalleeSize     int          `json:"callee_size" yaml:"callee_size"`
	Version        int          `json:"version" yaml:"version"`
	Before         Frame        `json:"before" yaml:"before"`
	After          Frame        `json:"after" yaml:"after"`
	Corrupted      []Corruption `json:"corrupted" yaml:"corrupted"`
}

// Corrupt reports whether the library wrote outside the caller's record.
func (r *Result) Corrupt() bool {
	return len(r.Corrupted) > 0
}

func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "caller rev%d (%d bytes) -> library rev%d (%d bytes)\n",
		r.CallerRevision, r.CallerSize, r.CalleeRevision, r.CalleeSize)
	fmt.Fprintf(&b, "version: %d\n", r.Version)
	fmt.Fprintf(&b, "before:  %s\n", r.Before.split(r.CallerSize))
	fmt.Fprintf(&b, "after:   %s\n", r.After.split(r.CallerSize))
	if !r.Corrupt() {
		b.WriteString("no memory outside the record was touched\n")
		return b.String()
	}
	for _, c := range r.Corrupted {
		fmt.Fprintf(&b, "CORRUPTED offset %d: %#02x -> %#02x\n", c.Offset, c.Was, c.Now)
	}
	return b.String()
}

// Simulator runs caller/library pairs against a shared frame.
type Simulator struct {
	GuardBytes int
	log        *zap.Logger
}

// NewSimulator returns a simulator with DefaultGuardBytes. A nil logger
// uses the process logger.
func NewSimulator(log *zap.Logger) *Simulator {
	if log == nil {
		log = logger.Named("abi")
	}
	return &Simulator{GuardBytes: DefaultGuardBytes, log: log}
}

// Simulate runs one call with a default simulator.
func Simulate(caller, callee Library, minor, major uint8) (*Result, error) {
	return NewSimulator(nil).Run(caller, callee, minor, major)
}

// Run places a record built by caller into a fresh frame and has callee
// call GetVersion on it.
func (s *Simulator) Run(caller, callee Library, minor, major uint8) (*Result, error) {
	res := &Result{
		CallerRevision: caller.Revision(),
		CalleeRevision: callee.Revision(),
		CallerSize:     caller.ObjectSize(),
		CalleeSize:     callee.ObjectSize(),
	}

	if s.GuardBytes < 0 {
		return nil, fmt.Errorf("negative guard size %d", s.GuardBytes)
	}

	frame := make(Frame, res.CallerSize+s.GuardBytes)
	for i := res.CallerSize; i < len(frame); i++ {
		frame[i] = Guard
	}

	if res.CalleeSize > len(frame) {
		return nil, fmt.Errorf("%w: library rev%d needs %d bytes, frame has %d",
			ErrFrameTooSmall, res.CalleeRevision, res.CalleeSize, len(frame))
	}

	if err := caller.Place(frame, minor, major); err != nil {
		return nil, fmt.Errorf("place record: %w", err)
	}
	res.Before = append(Frame(nil), frame...)

	s.log.Debug("calling library",
		zap.Int("caller_revision", res.CallerRevision),
		zap.Int("callee_revision", res.CalleeRevision),
		zap.Binary("frame", frame))

	v, err := callee.CallGetVersion(frame)
	if err != nil {
		return nil, fmt.Errorf("call GetVersion: %w", err)
	}
	res.Version = v
	res.After = frame

	for i := res.CallerSize; i < len(frame); i++ {
		if res.Before[i] != res.After[i] {
			res.Corrupted = append(res.Corrupted, Corruption{
				Offset: i,
				Was:    res.Before[i],
				Now:    res.After[i],
			})
		}
	}

	if res.Corrupt() {
		s.log.Warn("library wrote past the caller's record",
			zap.Int("caller_size", res.CallerSize),
			zap.Int("callee_size", res.CalleeSize),
			zap.Int("corrupted_bytes", len(res.Corrupted)))
	}

	return res, nil
}
