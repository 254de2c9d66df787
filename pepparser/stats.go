package pepparser

import (
	"math"

	"github.com/carbocation/runningvariance"
)

// IntensityStat accumulates running moments plus the observed range for one
// sample's intensities.
type IntensityStat struct {
	runningvariance.RunningStat
	Min float64
	Max float64
}

func NewIntensityStat() *IntensityStat {
	return &IntensityStat{
		*runningvariance.NewRunningStat(),
		math.MaxFloat64,
		math.SmallestNonzeroFloat64,
	}
}

func (s *IntensityStat) Push(x float64) {
	s.RunningStat.Push(x)
	if x > s.Max {
		s.Max = x
	}
	if x < s.Min {
		s.Min = x
	}
}

// RunningIntensityStats summarizes quantified intensities per sample.
// Missing cells never reach the stats; zero intensities do.
func RunningIntensityStats(peptides []Peptide) map[string]*IntensityStat {
	out := make(map[string]*IntensityStat)

	for _, pep := range peptides {
		for sample, x := range pep.Intensity {
			stat, exists := out[sample]
			if !exists {
				stat = NewIntensityStat()
				out[sample] = stat
			}
			stat.Push(x)
		}
	}

	return out
}
