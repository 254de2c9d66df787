package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	hist2 "github.com/grd/histogram"

	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/pepmap"
	"github.com/lilab-monash/protpeptigram/pepparser"
)

// comparePair reports, for every protein where both samples have a profile,
// the overall profile correlation plus a 2x2 Fisher test per core window:
// each sample's placements inside the window versus elsewhere on the protein.
func comparePair(sampleA, sampleB string, proteinOrder []string, matches pepmap.ProteinMatches, profiles []density.Profile, windows []density.Window, peptides []pepparser.Peptide) {
	quantified := quantifiedBySample(peptides)

	profileByKey := make(map[string]density.Profile)
	for _, p := range profiles {
		profileByKey[p.Protein+"\x00"+p.Sample] = p
	}

	for _, protein := range proteinOrder {
		pa, aExists := profileByKey[protein+"\x00"+sampleA]
		pb, bExists := profileByKey[protein+"\x00"+sampleB]
		if !aExists || !bExists {
			continue
		}

		r, err := density.Correlate(pa, pb)
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Fprintf(STDOUT, "#correlation\t%s\t%s\t%s\t%g\n", protein, sampleA, sampleB, r)

		for _, w := range windows {
			if w.Protein != protein {
				continue
			}
			if w.Sample != sampleA && w.Sample != sampleB {
				continue
			}

			aIn, aOut := placementCounts(matches[protein], quantified, sampleA, w)
			bIn, bOut := placementCounts(matches[protein], quantified, sampleB, w)

			p := density.FisherWindowTest(aIn, aOut, bIn, bOut)
			fmt.Fprintf(STDOUT, "#fisher\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%g\n", protein, w.Sample, w.Start, w.End, aIn, aOut, bIn, bOut, p)
		}
	}
}

// placementCounts splits one sample's placements into those overlapping the
// window and those falling elsewhere on the protein.
func placementCounts(matches []pepmap.Match, quantified map[string]map[string]bool, sample string, w density.Window) (in, out int) {
	for _, m := range matches {
		if !quantified[m.Peptide][sample] {
			continue
		}

		if m.Start <= w.End && w.Start <= m.End {
			in++
		} else {
			out++
		}
	}

	return in, out
}

// quantifiedBySample indexes which samples saw each naked sequence with
// nonzero intensity.
func quantifiedBySample(peptides []pepparser.Peptide) map[string]map[string]bool {
	out := make(map[string]map[string]bool)

	for _, pep := range peptides {
		m, exists := out[pep.Naked]
		if !exists {
			m = make(map[string]bool)
			out[pep.Naked] = m
		}
		for sample, x := range pep.Intensity {
			if x > 0 {
				m[sample] = true
			}
		}
	}

	return out
}

// printScoreHistogram prints a text histogram of window scores to stderr.
func printScoreHistogram(windows []density.Window, bins int) {
	min := math.MaxFloat64
	max := -math.MaxFloat64
	for _, w := range windows {
		if w.Score < min {
			min = w.Score
		}
		if w.Score > max {
			max = w.Score
		}
	}

	if len(windows) == 0 || max <= min {
		log.Println("Too little score variation for a", bins, "bin histogram")
		return
	}

	width := (max - min) / float64(bins)
	hg, err := hist2.NewHistogram(hist2.Range(min, uint(bins), width))
	if err != nil {
		log.Fatalln(err)
	}

	for _, w := range windows {
		hg.Add(w.Score)
	}

	maxCount := 0
	for i := 0; i < bins; i++ {
		if v := hg.Get(i); v > maxCount {
			maxCount = v
		}
	}

	fmt.Fprintln(os.Stderr, "window score distribution:")
	for i := 0; i < bins; i++ {
		count := hg.Get(i)
		bar := strings.Repeat("#", int(math.Round(40*float64(count)/float64(maxCount))))
		fmt.Fprintf(os.Stderr, "%10.4f..%-10.4f %7d %s\n", min+float64(i)*width, min+float64(i+1)*width, count, bar)
	}
}
