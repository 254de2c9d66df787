package density

import (
	"fmt"
	"log"
	"math"

	"github.com/carbocation/runningvariance"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Stat accumulates running moments plus the observed range of a density
// stream.
type Stat struct {
	runningvariance.RunningStat
	Min float64
	Max float64
}

func NewStat() *Stat {
	return &Stat{
		*runningvariance.NewRunningStat(),
		math.MaxFloat64,
		math.SmallestNonzeroFloat64,
	}
}

func (s *Stat) Push(x float64) {
	s.RunningStat.Push(x)
	if x > s.Max {
		s.Max = x
	}
	if x < s.Min {
		s.Min = x
	}
}

// Correlate computes the Pearson correlation of two profiles over the same
// protein. Degenerate profiles (constant or empty) correlate as 0 with a
// logged notice rather than NaN.
func Correlate(a, b Profile) (float64, error) {
	if len(a.Values) != len(b.Values) {
		return 0, fmt.Errorf("profile lengths differ: %s/%s has %d, %s/%s has %d",
			a.Protein, a.Sample, len(a.Values), b.Protein, b.Sample, len(b.Values))
	}
	if len(a.Values) == 0 {
		return 0, nil
	}

	r := stat.Correlation(a.Values, b.Values, nil)
	if math.IsNaN(r) {
		log.Printf("Correlation of %s/%s with %s/%s is undefined (constant profile); reporting 0\n",
			a.Protein, a.Sample, b.Protein, b.Sample)
		return 0, nil
	}

	return r, nil
}

// Summary describes one profile's covered residues.
type Summary struct {
	Protein string
	Sample  string
	Length  int
	Covered int
	Mean    float64
	SD      float64
	Median  float64
	Max     float64
}

// Summaries condenses each profile to location and spread statistics over
// its covered residues. Profiles with no coverage report zeros.
func Summaries(profiles []Profile) ([]Summary, error) {
	out := make([]Summary, 0, len(profiles))

	for _, p := range profiles {
		s := Summary{
			Protein: p.Protein,
			Sample:  p.Sample,
			Length:  len(p.Values),
			Covered: p.Covered(),
		}

		covered := make([]float64, 0, s.Covered)
		for _, v := range p.Values {
			if v > 0 {
				covered = append(covered, v)
			}
		}

		if len(covered) > 0 {
			data := stats.Float64Data(covered)

			var err error
			if s.Mean, err = data.Mean(); err != nil {
				return nil, err
			}
			if s.Median, err = data.Median(); err != nil {
				return nil, err
			}
			if s.Max, err = data.Max(); err != nil {
				return nil, err
			}
			if len(covered) > 1 {
				if s.SD, err = data.StandardDeviation(); err != nil {
					return nil, err
				}
			}
		}

		out = append(out, s)
	}

	return out, nil
}
