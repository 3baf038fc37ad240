package track

import (
	"fmt"
	"slices"
)

// DeleteRange removes n positions starting at pos. A range running past the
// end of the track is truncated.
//
// If any Origin position in the range is still shared, DeleteRange returns
// ErrSharedDeletion and the track is left untouched.
func (t *Track) DeleteRange(pos, n int) error {
	if t == nil {
		return ErrNilTrack
	}

	if pos < 0 || n < 0 {
		return fmt.Errorf("%w: delete %d samples at %d", ErrInvalidRange, n, pos)
	}

	if pos >= len(t.positions) || n == 0 {
		return nil
	}

	end := pos + min(n, len(t.positions)-pos)

	doomed := t.positions[pos:end]
	for i, p := range doomed {
		if !p.deletable() {
			return fmt.Errorf("%w: position %d has %d sharers", ErrSharedDeletion, pos+i, p.s.shares)
		}
	}

	for _, p := range doomed {
		p.release()
	}

	t.positions = slices.Delete(t.positions, pos, end)

	return nil
}

// Insert splices n positions of src, starting at srcPos, into t before
// destPos. The new positions are Shared and reference the same samples as
// the source, so later writes through either track are visible in both.
// It returns the number of positions inserted, which is less than n when
// src ends early. A destPos past the end appends.
//
// src may be t itself; the source range is captured before t is modified.
func (t *Track) Insert(destPos int, src *Track, srcPos, n int) (int, error) {
	if t == nil || src == nil {
		return 0, ErrNilTrack
	}

	if destPos < 0 || srcPos < 0 || n < 0 {
		return 0, fmt.Errorf("%w: insert %d samples from %d at %d", ErrInvalidRange, n, srcPos, destPos)
	}

	if srcPos >= len(src.positions) || n == 0 {
		return 0, nil
	}

	n = min(n, len(src.positions)-srcPos)

	chain := make([]position, n)
	for i, p := range src.positions[srcPos : srcPos+n] {
		chain[i] = p.share()
	}

	destPos = min(destPos, len(t.positions))
	t.positions = slices.Insert(t.positions, destPos, chain...)

	return n, nil
}
