package track

import (
	"errors"
	"slices"
	"testing"
)

func newTrack(t *testing.T, samples ...int16) *Track {
	t.Helper()

	tr := New()
	if err := tr.Write(samples, 0); err != nil {
		t.Fatalf("Write(%v, 0) failed: %v", samples, err)
	}

	return tr
}

func assertSamples(t *testing.T, tr *Track, want ...int16) {
	t.Helper()

	if tr.Len() != len(want) {
		t.Fatalf("Len()=%d, want %d", tr.Len(), len(want))
	}

	if got := tr.Samples(); !slices.Equal(got, want) {
		t.Fatalf("Samples()=%v, want %v", got, want)
	}
}

func TestNewTrackIsEmpty(t *testing.T) {
	tr := New()
	if tr.Len() != 0 {
		t.Fatalf("Len()=%d, want 0", tr.Len())
	}

	var zero Track
	if err := zero.Write([]int16{1}, 0); err != nil {
		t.Fatalf("zero value Write failed: %v", err)
	}

	assertSamples(t, &zero, 1)
}

func TestWriteExtendsTrack(t *testing.T) {
	tests := []struct {
		name    string
		initial []int16
		src     []int16
		pos     int
		want    []int16
	}{
		{"empty track", nil, []int16{1, 2, 3}, 0, []int16{1, 2, 3}},
		{"overwrite inside", []int16{1, 2, 3}, []int16{9}, 1, []int16{1, 9, 3}},
		{"straddles end", []int16{1, 2, 3}, []int16{8, 9}, 2, []int16{1, 2, 8, 9}},
		{"gap is zero filled", nil, []int16{7}, 3, []int16{0, 0, 0, 7}},
		{"append at end", []int16{1}, []int16{2}, 1, []int16{1, 2}},
		{"empty source", []int16{1}, nil, 5, []int16{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTrack(t, tt.initial...)

			if err := tr.Write(tt.src, tt.pos); err != nil {
				t.Fatalf("Write(%v, %d) failed: %v", tt.src, tt.pos, err)
			}

			assertSamples(t, tr, tt.want...)
		})
	}
}

func TestWriteAppendsOriginPositions(t *testing.T) {
	tr := newTrack(t, 0, 0)
	if err := tr.Write([]int16{5}, 4); err != nil {
		t.Fatal(err)
	}

	for i := range tr.Len() {
		role, ok := tr.RoleAt(i)
		if !ok || role != Origin {
			t.Fatalf("RoleAt(%d)=%v,%t, want origin", i, role, ok)
		}

		if got := tr.Shares(i); got != 1 {
			t.Fatalf("Shares(%d)=%d, want 1", i, got)
		}
	}
}

func TestWriteNegativePosition(t *testing.T) {
	tr := newTrack(t, 1, 2)

	err := tr.Write([]int16{3}, -1)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("Write at -1 err=%v, want ErrInvalidRange", err)
	}

	assertSamples(t, tr, 1, 2)
}

func TestReadAfterWrite(t *testing.T) {
	tr := newTrack(t, 10, 20, 30, 40, 50)

	src := []int16{-1, -2, -3}
	if err := tr.Write(src, 1); err != nil {
		t.Fatal(err)
	}

	dst := make([]int16, len(src))
	if n := tr.Read(dst, 1); n != len(src) {
		t.Fatalf("Read()=%d, want %d", n, len(src))
	}

	if !slices.Equal(dst, src) {
		t.Fatalf("Read()=%v, want %v", dst, src)
	}
}

func TestReadClampsAtEnd(t *testing.T) {
	tr := newTrack(t, 1, 2, 3)

	tests := []struct {
		name  string
		pos   int
		size  int
		wantN int
		want  []int16
	}{
		{"in bounds", 0, 2, 2, []int16{1, 2}},
		{"runs past end", 1, 5, 2, []int16{2, 3, -1, -1, -1}},
		{"starts at end", 3, 2, 0, []int16{-1, -1}},
		{"starts past end", 10, 1, 0, []int16{-1}},
		{"negative start", -1, 1, 0, []int16{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]int16, tt.size)
			for i := range dst {
				dst[i] = -1
			}

			if n := tr.Read(dst, tt.pos); n != tt.wantN {
				t.Fatalf("Read(_, %d)=%d, want %d", tt.pos, n, tt.wantN)
			}

			if !slices.Equal(dst, tt.want) {
				t.Fatalf("Read(_, %d) filled %v, want %v", tt.pos, dst, tt.want)
			}
		})
	}
}

func TestNilTrack(t *testing.T) {
	var tr *Track

	if tr.Len() != 0 {
		t.Fatalf("nil Len()=%d, want 0", tr.Len())
	}

	if n := tr.Read(make([]int16, 1), 0); n != 0 {
		t.Fatalf("nil Read()=%d, want 0", n)
	}

	if err := tr.Write([]int16{1}, 0); !errors.Is(err, ErrNilTrack) {
		t.Fatalf("nil Write err=%v, want ErrNilTrack", err)
	}

	if err := tr.DeleteRange(0, 1); !errors.Is(err, ErrNilTrack) {
		t.Fatalf("nil DeleteRange err=%v, want ErrNilTrack", err)
	}

	if _, err := New().Insert(0, tr, 0, 1); !errors.Is(err, ErrNilTrack) {
		t.Fatalf("Insert from nil err=%v, want ErrNilTrack", err)
	}

	tr.Release()
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{Origin, "origin"},
		{Shared, "shared"},
		{Role(7), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Fatalf("Role(%d).String()=%q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestRoleAtOutOfRange(t *testing.T) {
	tr := newTrack(t, 1)

	if _, ok := tr.RoleAt(1); ok {
		t.Fatal("RoleAt(1) reported a role past the end")
	}

	if got := tr.Shares(-1); got != 0 {
		t.Fatalf("Shares(-1)=%d, want 0", got)
	}
}

func TestReleaseKeepsSharedSamples(t *testing.T) {
	src := newTrack(t, 1, 2, 3)
	dst := New()

	if _, err := dst.Insert(0, src, 0, 3); err != nil {
		t.Fatal(err)
	}

	src.Release()

	if src.Len() != 0 {
		t.Fatalf("released Len()=%d, want 0", src.Len())
	}

	assertSamples(t, dst, 1, 2, 3)

	for i := range dst.Len() {
		if got := dst.Shares(i); got != 1 {
			t.Fatalf("Shares(%d)=%d after source release, want 1", i, got)
		}
	}

	if err := dst.DeleteRange(0, 3); err != nil {
		t.Fatalf("DeleteRange after source release failed: %v", err)
	}
}
