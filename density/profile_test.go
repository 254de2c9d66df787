package density

import (
	"testing"

	"github.com/lilab-monash/protpeptigram/pepmap"
	"github.com/lilab-monash/protpeptigram/pepparser"
)

func TestProfilesWeighted(t *testing.T) {
	matches := pepmap.ProteinMatches{
		"P1": {
			{Peptide: "AAAA", Protein: "P1", Start: 1, End: 4},
			{Peptide: "BBBB", Protein: "P1", Start: 3, End: 6},
		},
	}
	peptides := []pepparser.Peptide{
		{Naked: "AAAA", Intensity: map[string]float64{"S1": 8}},
		{Naked: "AAAA", Intensity: map[string]float64{"S1": 4}}, // pooled with the row above
		{Naked: "BBBB", Intensity: map[string]float64{"S1": 4, "S2": 8}},
	}
	lengths := map[string]int{"P1": 8}

	profiles := Profiles(matches, peptides, lengths, true)

	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}

	// Sorted by protein then sample
	s1, s2 := profiles[0], profiles[1]
	if s1.Sample != "S1" || s2.Sample != "S2" {
		t.Fatalf("sample order = %s, %s", s1.Sample, s2.Sample)
	}

	// AAAA pools to 12 over 4 residues (3/residue on 1..4);
	// BBBB has 4 over 4 residues (1/residue on 3..6)
	want := []float64{3, 3, 4, 4, 1, 1, 0, 0}
	for i, v := range want {
		if s1.Values[i] != v {
			t.Errorf("S1 values[%d] = %v, want %v", i, s1.Values[i], v)
		}
	}

	if s2.Values[2] != 2 || s2.Values[6] != 0 {
		t.Errorf("S2 values = %v", s2.Values)
	}

	if s1.Covered() != 6 {
		t.Errorf("S1 covered = %d, want 6", s1.Covered())
	}
	if got, want := s1.Total(), 16.0; got != want {
		t.Errorf("S1 total = %v, want %v", got, want)
	}
}

func TestProfilesUnweightedCountsMatches(t *testing.T) {
	matches := pepmap.ProteinMatches{
		"P1": {
			{Peptide: "AAAA", Protein: "P1", Start: 1, End: 4},
			{Peptide: "BBBB", Protein: "P1", Start: 3, End: 6},
		},
	}
	peptides := []pepparser.Peptide{
		{Naked: "AAAA", Intensity: map[string]float64{"S1": 100}},
		{Naked: "BBBB", Intensity: map[string]float64{"S1": 1}},
	}

	profiles := Profiles(matches, peptides, map[string]int{"P1": 8}, false)

	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	// Intensities are ignored; overlapping residues count both matches
	want := []float64{1, 1, 2, 2, 1, 1, 0, 0}
	for i, v := range want {
		if profiles[0].Values[i] != v {
			t.Errorf("values[%d] = %v, want %v", i, profiles[0].Values[i], v)
		}
	}
}

func TestProfilesSkipsUnknownProteinLength(t *testing.T) {
	matches := pepmap.ProteinMatches{
		"mystery": {{Peptide: "AAAA", Protein: "mystery", Start: 1, End: 4}},
	}
	peptides := []pepparser.Peptide{
		{Naked: "AAAA", Intensity: map[string]float64{"S1": 1}},
	}

	if got := Profiles(matches, peptides, map[string]int{}, true); len(got) != 0 {
		t.Errorf("expected no profiles without protein lengths, got %d", len(got))
	}
}

func TestUniformProfile(t *testing.T) {
	matches := []pepmap.Match{
		{Peptide: "AAAA", Start: 2, End: 5},
		{Peptide: "CCCC", Start: 4, End: 7},
	}

	p := UniformProfile("P1", matches, 8)

	want := []float64{0, 1, 1, 2, 2, 1, 1, 0}
	for i, v := range want {
		if p.Values[i] != v {
			t.Errorf("values[%d] = %v, want %v", i, p.Values[i], v)
		}
	}
}
