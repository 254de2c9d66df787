package density

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Window is one maximal run of high-density residues.
type Window struct {
	Protein string
	Sample  string
	Start   int
	End     int
	Score   float64
	P       float64
}

// Len returns the number of residues the window spans.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Options tunes core window extraction.
type Options struct {
	// Trimmed-median window half-width; 0 disables smoothing
	Smooth int
	// Extremes dropped per window end during smoothing
	Discard int
	// Butterworth cutoff; 0 disables the low-pass stage
	Lowpass float64
	// Density quantile (over covered residues) a residue must reach;
	// 0 keeps every covered residue
	Quantile float64
	// Runs shorter than this many residues are dropped
	MinWindow int
}

// DefaultOptions mirror the windows used for immunopeptidome summaries: a
// light median smooth and the upper quartile of covered residues.
var DefaultOptions = Options{
	Smooth:    2,
	Discard:   0,
	Quantile:  0.75,
	MinWindow: 8,
}

// CoreWindows extracts the maximal runs of residues whose smoothed density
// reaches the requested quantile of the profile's covered residues. Score is
// the mean smoothed density over the run; P is the chi-square tail
// probability of the run's share of raw density under a uniform spread.
// Profiles with no covered residues yield no windows.
func CoreWindows(p Profile, opts Options) ([]Window, error) {
	if len(p.Values) == 0 || p.Covered() == 0 {
		return nil, nil
	}

	smoothed := p.Values
	var err error

	if opts.Smooth > 0 {
		smoothed, err = Smooth(smoothed, opts.Smooth, opts.Discard)
		if err != nil {
			return nil, err
		}
	}
	if opts.Lowpass > 0 {
		smoothed, err = Lowpass(smoothed, opts.Lowpass)
		if err != nil {
			return nil, err
		}
	}

	threshold := quantileOfCovered(smoothed, opts.Quantile)

	total := p.Total()
	var out []Window

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		defer func() { start = -1 }()

		if end-start+1 < opts.MinWindow {
			return
		}

		var score, raw float64
		for i := start; i <= end; i++ {
			score += smoothed[i]
			raw += p.Values[i]
		}
		score /= float64(end - start + 1)

		out = append(out, Window{
			Protein: p.Protein,
			Sample:  p.Sample,
			Start:   start + 1,
			End:     end + 1,
			Score:   score,
			P:       ChiSquareEnrichment(raw, total, end-start+1, len(p.Values)),
		})
	}

	for i, v := range smoothed {
		if v > 0 && v >= threshold {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i - 1)
	}
	flush(len(smoothed) - 1)

	return out, nil
}

// quantileOfCovered computes the q-th quantile of the positive values. With
// q = 0 every positive value passes.
func quantileOfCovered(values []float64, q float64) float64 {
	covered := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			covered = append(covered, v)
		}
	}
	if len(covered) == 0 {
		return 0
	}

	sort.Float64s(covered)

	if q <= 0 {
		return covered[0]
	}
	if q >= 1 {
		return covered[len(covered)-1]
	}

	return stat.Quantile(q, stat.LinInterp, covered, nil)
}
