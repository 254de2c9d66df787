package main

import (
	"testing"

	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/pepmap"
	"github.com/lilab-monash/protpeptigram/pepparser"
)

func TestPlacementCounts(t *testing.T) {
	peptides := []pepparser.Peptide{
		{Naked: "SIINFEKL", Intensity: map[string]float64{"T1": 100, "T2": 0}},
		{Naked: "NLVPMVATV", Intensity: map[string]float64{"T1": 50, "T2": 80}},
	}
	quantified := quantifiedBySample(peptides)

	matches := []pepmap.Match{
		{Peptide: "SIINFEKL", Start: 10, End: 17},
		{Peptide: "NLVPMVATV", Start: 40, End: 48},
	}

	w := density.Window{Start: 5, End: 20}

	// T1 quantified both peptides: SIINFEKL overlaps, NLVPMVATV does not
	in, out := placementCounts(matches, quantified, "T1", w)
	if in != 1 || out != 1 {
		t.Errorf("T1: expected in=1 out=1, got in=%d out=%d", in, out)
	}

	// T2 only quantified NLVPMVATV; the zero-intensity SIINFEKL cell does
	// not count as quantified
	in, out = placementCounts(matches, quantified, "T2", w)
	if in != 0 || out != 1 {
		t.Errorf("T2: expected in=0 out=1, got in=%d out=%d", in, out)
	}
}
