// internal/catalog/analyze.go
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/creativeyann17/tgmedia/internal/format"
)

// Order returns a copy of parts sorted by destination offset.
// Parts sharing an offset keep their discovery order.
func Order(parts []format.Part) []format.Part {
	ordered := make([]format.Part, len(parts))
	copy(ordered, parts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DestOffset < ordered[j].DestOffset
	})
	return ordered
}

// Report summarizes an ordered catalog
type Report struct {
	// Parts is the number of parts analyzed
	Parts int

	// Analyzed is false for fewer than two parts, where contiguity is meaningless
	Analyzed bool

	First          format.Part
	Last           format.Part
	LastContiguous format.Part

	// LastContiguousOffset is the end of the unbroken run that starts at First
	LastContiguousOffset uint64

	// Discontinuity is the distance from LastContiguousOffset to Last
	Discontinuity uint64

	// TotalSize is the highest destination end offset
	TotalSize uint64
}

// Gap is a destination range no part covers
type Gap struct {
	Start uint64
	End   uint64
}

// Len returns the gap length in bytes
func (g Gap) Len() uint64 {
	return g.End - g.Start
}

// Analyze computes the contiguity report of parts already sorted by Order
func Analyze(ordered []format.Part) Report {
	rep := Report{Parts: len(ordered)}
	if len(ordered) == 0 {
		return rep
	}

	for _, p := range ordered {
		if end := p.End(); end > rep.TotalSize {
			rep.TotalSize = end
		}
	}

	rep.First = ordered[0]
	rep.Last = ordered[len(ordered)-1]
	rep.LastContiguous = ordered[0]
	rep.LastContiguousOffset = ordered[0].End()
	if len(ordered) == 1 {
		return rep
	}
	rep.Analyzed = true

	last := 0
	for i := 1; i < len(ordered); i++ {
		if uint64(ordered[i].DestOffset) != ordered[i-1].End() {
			break
		}
		last = i
	}
	rep.LastContiguous = ordered[last]
	rep.LastContiguousOffset = ordered[last].End()

	if lastStart := uint64(rep.Last.DestOffset); lastStart > rep.LastContiguousOffset {
		rep.Discontinuity = lastStart - rep.LastContiguousOffset
	}
	return rep
}

// Trusted returns how many leading bytes of the output are linearly playable:
// the contiguous run when it starts at offset 0, otherwise nothing
func (r Report) Trusted() uint64 {
	if r.Parts == 0 || r.First.DestOffset != 0 {
		return 0
	}
	return r.LastContiguousOffset
}

// Contiguous reports whether the whole catalog is one unbroken run
func (r Report) Contiguous() bool {
	return r.Parts > 0 && r.LastContiguous == r.Last
}

// Gaps lists every destination hole in ordered parts, including one before
// the first part when it does not start at 0. Overlaps produce no gap.
func Gaps(ordered []format.Part) []Gap {
	var gaps []Gap
	var covered uint64
	for _, p := range ordered {
		start := uint64(p.DestOffset)
		if start > covered {
			gaps = append(gaps, Gap{Start: covered, End: start})
		}
		if end := p.End(); end > covered {
			covered = end
		}
	}
	return gaps
}

// String renders the report the way it is printed after ordering
func (r Report) String() string {
	var sb strings.Builder
	if !r.Analyzed {
		fmt.Fprintf(&sb, "Parts: %d (nothing to order)\n", r.Parts)
		return sb.String()
	}
	sb.WriteString("After ordering parts by destination offset:\n")
	fmt.Fprintf(&sb, "  First part:             %s\n", r.First)
	fmt.Fprintf(&sb, "  Last contiguous:        %s\n", r.LastContiguous)
	fmt.Fprintf(&sb, "  Last contiguous offset: %d (Discontinuity: %d bytes)\n", r.LastContiguousOffset, r.Discontinuity)
	fmt.Fprintf(&sb, "  Last part:              %s\n", r.Last)
	return sb.String()
}
