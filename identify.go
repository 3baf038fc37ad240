package track

import (
	"strconv"
	"strings"

	"github.com/viterin/vek"
)

// Threshold is the minimum normalized correlation for a window to count as
// an occurrence of the needle.
const Threshold = 0.95

// Match is an inclusive range of sample indices.
type Match struct {
	Start int
	End   int
}

func (m Match) String() string {
	return strconv.Itoa(m.Start) + "," + strconv.Itoa(m.End)
}

// Matches is an ordered list of non-overlapping matches.
type Matches []Match

// String renders one "start,end" pair per line with no trailing newline.
// An empty list renders as the empty string.
func (ms Matches) String() string {
	var sb strings.Builder

	for i, m := range ms {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(m.String())
	}

	return sb.String()
}

// Identify returns every window of target whose zero-lag cross-correlation
// with needle, normalized by the needle's own energy, reaches Threshold.
// After a match the scan resumes at the sample following it, so matches
// never overlap. A silent or empty needle matches nothing.
func Identify(target, needle *Track) Matches {
	width := needle.Len()
	if width == 0 || width > target.Len() {
		return nil
	}

	ad := amplitudes(needle)

	energy := vek.Dot(ad, ad)
	if energy == 0 {
		return nil
	}

	hay := amplitudes(target)

	var found Matches

	for i := 0; i+width <= len(hay); i++ {
		corr := vek.Dot(ad, hay[i:i+width])
		if corr/energy < Threshold {
			continue
		}

		found = append(found, Match{Start: i, End: i + width - 1})
		i += width - 1
	}

	return found
}

// amplitudes widens the track to float64 so products and sums of 16-bit
// samples stay exact.
func amplitudes(t *Track) []float64 {
	out := make([]float64, len(t.positions))
	for i, p := range t.positions {
		out[i] = float64(p.s.amp)
	}

	return out
}
