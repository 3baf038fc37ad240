package track

// Role tags how a position came to reference its sample.
type Role uint8

const (
	// Origin positions were allocated together with their sample.
	Origin Role = iota
	// Shared positions were attached to an existing sample by Insert.
	Shared
)

func (r Role) String() string {
	switch r {
	case Origin:
		return "origin"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}

// sample holds one amplitude and the number of live positions, across all
// tracks, that reference it.
type sample struct {
	amp    int16
	shares int
}

type position struct {
	s    *sample
	role Role
}

func newOrigin() position {
	return position{s: &sample{shares: 1}, role: Origin}
}

// share returns a Shared position referencing the same sample.
func (p position) share() position {
	p.s.shares++

	return position{s: p.s, role: Shared}
}

func (p position) release() {
	p.s.shares--
}

// deletable reports whether removing p would leave other sharers without
// the sample they were attached to.
func (p position) deletable() bool {
	return p.role == Shared || p.s.shares <= 1
}
