package track

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidRange is returned for negative positions or lengths.
	// Ranges running past the end of a track are clamped instead.
	ErrInvalidRange = errors.New("invalid sample range")
	// ErrSharedDeletion is returned by DeleteRange when an Origin position in
	// the range is still referenced by another position.
	ErrSharedDeletion = errors.New("origin sample is still shared")
	// ErrNilTrack is returned when an operation is given a nil track.
	ErrNilTrack = errors.New("nil track")
)

// Track is an ordered, editable sequence of 16-bit samples.
// The zero value is an empty track ready to use.
type Track struct {
	positions []position
}

// New returns an empty track.
func New() *Track {
	return &Track{}
}

// Len returns the number of samples in the track.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}

	return len(t.positions)
}

// Release drops every position of the track. Samples still referenced by
// other tracks keep their amplitude and lose one sharer.
func (t *Track) Release() {
	if t == nil {
		return
	}

	for _, p := range t.positions {
		p.release()
	}

	t.positions = nil
}

// Read copies len(dst) samples starting at pos into dst and returns how many
// were copied. Copying stops early at the end of the track.
func (t *Track) Read(dst []int16, pos int) int {
	if t == nil || pos < 0 || pos >= len(t.positions) {
		return 0
	}

	n := min(len(dst), len(t.positions)-pos)
	for i := range n {
		dst[i] = t.positions[pos+i].s.amp
	}

	return n
}

// Write sets the samples starting at pos to src. Positions past the end of
// the track are appended as Origin positions with fresh samples.
//
// Writing to a Shared position changes the sample for every track that
// references it.
func (t *Track) Write(src []int16, pos int) error {
	if t == nil {
		return ErrNilTrack
	}

	if pos < 0 {
		return fmt.Errorf("%w: write at %d", ErrInvalidRange, pos)
	}

	if len(src) == 0 {
		return nil
	}

	end := pos + len(src)
	if end > len(t.positions) {
		t.positions = slices.Grow(t.positions, end-len(t.positions))
		for len(t.positions) < end {
			t.positions = append(t.positions, newOrigin())
		}
	}

	for i, v := range src {
		t.positions[pos+i].s.amp = v
	}

	return nil
}

// Samples returns a copy of every amplitude in the track.
func (t *Track) Samples() []int16 {
	out := make([]int16, t.Len())
	t.Read(out, 0)

	return out
}

// Shares returns the number of positions referencing the sample at i, or 0
// when i is out of range.
func (t *Track) Shares(i int) int {
	if t == nil || i < 0 || i >= len(t.positions) {
		return 0
	}

	return t.positions[i].s.shares
}

// RoleAt returns the role of the position at i.
func (t *Track) RoleAt(i int) (Role, bool) {
	if t == nil || i < 0 || i >= len(t.positions) {
		return 0, false
	}

	return t.positions[i].role, true
}
