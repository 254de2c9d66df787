// Package density turns peptide matches into per-residue density profiles
// and extracts the high-density windows that mark core presentation regions.
package density

import (
	"sort"

	"github.com/lilab-monash/protpeptigram/pepmap"
	"github.com/lilab-monash/protpeptigram/pepparser"
)

// Profile is the per-residue density of one (protein, sample) pair. Values
// has one entry per residue.
type Profile struct {
	Protein string
	Sample  string
	Values  []float64
}

// Covered counts residues with nonzero density.
func (p Profile) Covered() int {
	n := 0
	for _, v := range p.Values {
		if v > 0 {
			n++
		}
	}

	return n
}

// Total sums the profile's density mass.
func (p Profile) Total() float64 {
	var sum float64
	for _, v := range p.Values {
		sum += v
	}

	return sum
}

// Profiles accumulates matches into per-(protein, sample) residue densities.
// A match contributes to sample S only when its peptide was quantified in S.
// Weighted mode adds intensity divided by peptide length to each covered
// residue, so one peptide spreads its signal over its span; unweighted mode
// adds 1 per covering match. Rows sharing a naked sequence pool their
// intensities. Output is ordered by protein, then sample.
func Profiles(matches pepmap.ProteinMatches, peptides []pepparser.Peptide, proteinLen map[string]int, weighted bool) []Profile {
	// Pool intensity by naked sequence: charge states and modified forms
	// of the same peptide collapse here
	intensity := make(map[string]map[string]float64)
	for _, pep := range peptides {
		if pep.Naked == "" {
			continue
		}
		pooled, exists := intensity[pep.Naked]
		if !exists {
			pooled = make(map[string]float64)
			intensity[pep.Naked] = pooled
		}
		for sample, x := range pep.Intensity {
			pooled[sample] += x
		}
	}

	profiles := make(map[string]map[string][]float64)

	for protein, ms := range matches {
		n, exists := proteinLen[protein]
		if !exists || n < 1 {
			continue
		}

		bySample, exists := profiles[protein]
		if !exists {
			bySample = make(map[string][]float64)
			profiles[protein] = bySample
		}

		for _, m := range ms {
			pooled := intensity[m.Peptide]

			for sample, x := range pooled {
				values, exists := bySample[sample]
				if !exists {
					values = make([]float64, n)
					bySample[sample] = values
				}

				add := 1.0
				if weighted {
					add = x / float64(m.Len())
				}

				for i := m.Start; i <= m.End && i <= n; i++ {
					if i < 1 {
						continue
					}
					values[i-1] += add
				}
			}
		}
	}

	var out []Profile
	for protein, bySample := range profiles {
		for sample, values := range bySample {
			out = append(out, Profile{Protein: protein, Sample: sample, Values: values})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Protein != out[j].Protein {
			return out[i].Protein < out[j].Protein
		}
		return out[i].Sample < out[j].Sample
	})

	return out
}

// UniformProfile accumulates matches for one protein without sample or
// intensity information: every covering match adds 1.
func UniformProfile(protein string, matches []pepmap.Match, proteinLen int) Profile {
	values := make([]float64, proteinLen)

	for _, m := range matches {
		for i := m.Start; i <= m.End && i <= proteinLen; i++ {
			if i < 1 {
				continue
			}
			values[i-1]++
		}
	}

	return Profile{Protein: protein, Values: values}
}
