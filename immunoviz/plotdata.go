package immunoviz

import (
	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/pepmap"
)

// PlotData carries everything one protein's figure needs: the matched
// peptides, the per-sample density profiles, and any core windows to shade.
type PlotData struct {
	Protein  string
	Length   int
	Matches  []pepmap.Match
	Profiles []density.Profile
	Windows  []density.Window
}

// CollectPlotData pulls one protein's slice out of whole-run results.
func CollectPlotData(protein string, length int, matches pepmap.ProteinMatches, profiles []density.Profile, windows []density.Window) PlotData {
	out := PlotData{
		Protein: protein,
		Length:  length,
		Matches: matches[protein],
	}

	for _, p := range profiles {
		if p.Protein == protein {
			out.Profiles = append(out.Profiles, p)
		}
	}

	for _, w := range windows {
		if w.Protein == protein {
			out.Windows = append(out.Windows, w)
		}
	}

	return out
}

// SampleProfile returns the protein's density trace for one sample, or nil
// when the sample never matched it.
func (d PlotData) SampleProfile(sample string) []float64 {
	for _, p := range d.Profiles {
		if p.Sample == sample {
			return p.Values
		}
	}

	return nil
}
