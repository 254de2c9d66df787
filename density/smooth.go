package density

import (
	"container/ring"
	"fmt"
	"sort"

	"github.com/jfcg/butter"
)

type entry struct {
	Index int
	Value float64
}

type list struct {
	*ring.Ring
}

func entryValue(v interface{}) entry {
	return v.(entry)
}

func (l *list) adjacent(n int) []entry {
	out := make([]entry, 0, 1+2*n)

	out = append(out, entryValue(l.Value))

	current := l.Ring
	for i := 0; i < n; i++ {
		current = current.Prev()
		out = append(out, entryValue(current.Value))
	}

	current = l.Ring
	for i := 0; i < n; i++ {
		current = current.Next()
		out = append(out, entryValue(current.Value))
	}

	return out
}

// Smooth applies a moving trimmed-median filter: each residue is replaced by
// the median of its surrounding window of adjacentN neighbors per side,
// after the discardN most extreme values on each end are dropped. Residues
// are linear, not cyclic, so windows shrink at the termini rather than
// wrapping.
func Smooth(values []float64, adjacentN, discardN int) ([]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if adjacentN < 0 || discardN < 0 {
		return nil, fmt.Errorf("negative window (%d) or discard (%d)", adjacentN, discardN)
	}

	l := &list{ring.New(len(values))}
	for i, v := range values {
		l.Ring.Value = entry{Index: i, Value: v}
		l.Ring = l.Next()
	}

	out := make([]float64, 0, len(values))

	for i := 0; i < len(values); i++ {
		adj := l.adjacent(adjacentN)

		// The ring wraps; discard neighbors from the far terminus
		window := make([]entry, 0, len(adj))
		for _, e := range adj {
			if e.Index < i-adjacentN || e.Index > i+adjacentN {
				continue
			}
			window = append(window, e)
		}

		// Shrunken terminal windows trim proportionally less
		discard := discardN
		if max := (len(window) - 1) / 2; discard > max {
			discard = max
		}

		trimmed, err := discardExtremes(window, discard)
		if err != nil {
			return nil, err
		}

		out = append(out, median(trimmed))
		l.Ring = l.Next()
	}

	return out, nil
}

func median(entries []entry) float64 {
	floats := make([]float64, 0, len(entries))
	for _, v := range entries {
		floats = append(floats, v.Value)
	}

	sort.Float64s(floats)

	mIdx := len(floats) / 2

	if len(floats)%2 == 1 {
		return floats[mIdx]
	}

	return (floats[mIdx-1] + floats[mIdx]) / 2.0
}

func discardExtremes(entries []entry, discardN int) ([]entry, error) {
	if 2*discardN >= len(entries) {
		return nil, fmt.Errorf("tried to discard %d from each end but only have %d", discardN, len(entries))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Value < entries[j].Value
	})

	out := make([]entry, 0, len(entries)-2*discardN)
	for i := discardN; i < len(entries)-discardN; i++ {
		out = append(out, entries[i])
	}

	return out, nil
}

// Lowpass runs a single-pole butterworth low-pass over the profile. The
// cutoff is the normalized angular frequency and must lie in (0.0001, pi).
func Lowpass(values []float64, cutoff float64) ([]float64, error) {
	filt := butter.NewLowPass1(cutoff)
	if filt == nil {
		return nil, fmt.Errorf("invalid low-pass filter (attempted wc=%f, but expect .0001 < wc && wc < 3.1415)", cutoff)
	}

	out := make([]float64, 0, len(values))
	for _, v := range values {
		out = append(out, filt.Next(v))
	}

	return out, nil
}
