package pepmap

import "testing"

func TestFindMatches(t *testing.T) {
	seq := "MSIINFEKLSIINFEKL"

	tests := []struct {
		name           string
		peptide        string
		maxMM          int
		wantCount      int
		wantFirstStart int
	}{
		{
			name:           "exact match twice",
			peptide:        "SIINFEKL",
			maxMM:          0,
			wantCount:      2,
			wantFirstStart: 2,
		},
		{
			name:           "one substitution allowed",
			peptide:        "SIINFEKM",
			maxMM:          1,
			wantCount:      2,
			wantFirstStart: 2,
		},
		{
			name:           "exceed mismatch threshold",
			peptide:        "SIINFEKM",
			maxMM:          0,
			wantCount:      0,
			wantFirstStart: -1,
		},
		{
			name:           "peptide longer than protein",
			peptide:        "MSIINFEKLSIINFEKLMSIINFEKL",
			maxMM:          2,
			wantCount:      0,
			wantFirstStart: -1,
		},
		{
			name:           "full-length match",
			peptide:        "MSIINFEKLSIINFEKL",
			maxMM:          0,
			wantCount:      1,
			wantFirstStart: 1,
		},
	}

	for _, tc := range tests {
		hits := FindMatches(seq, tc.peptide, tc.maxMM)
		if len(hits) != tc.wantCount {
			t.Errorf("%s: got %d hits, want %d", tc.name, len(hits), tc.wantCount)
		}
		if tc.wantCount > 0 && hits[0].Start != tc.wantFirstStart {
			t.Errorf("%s: first match start %d, want %d", tc.name, hits[0].Start, tc.wantFirstStart)
		}
	}
}

func TestFindMatchesCoordinates(t *testing.T) {
	// KVAQKQFQR at 1-based positions 3..11
	seq := "MAKVAQKQFQRSTV"

	hits := FindMatches(seq, "KVAQKQFQR", 0)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}

	m := hits[0]
	if m.Start != 3 || m.End != 11 {
		t.Errorf("match span = [%d, %d], want [3, 11]", m.Start, m.End)
	}
	if m.Len() != 9 {
		t.Errorf("match length = %d, want 9", m.Len())
	}
	if m.Matched != "KVAQKQFQR" {
		t.Errorf("matched substring = %q", m.Matched)
	}
}

func TestFindMatchesMismatchIndexes(t *testing.T) {
	seq := "AAAPEPTIDEAAA"

	hits := FindMatches(seq, "PECTIDE", 1)

	var found bool
	for _, m := range hits {
		if m.Start == 4 {
			found = true
			if m.Mismatches != 1 {
				t.Errorf("mismatches = %d, want 1", m.Mismatches)
			}
			if len(m.MismatchIdx) != 1 || m.MismatchIdx[0] != 2 {
				t.Errorf("mismatch indexes = %v, want [2]", m.MismatchIdx)
			}
			if m.Matched != "PEPTIDE" {
				t.Errorf("matched = %q, want the protein's residues", m.Matched)
			}
		}
	}
	if !found {
		t.Error("no match at position 4")
	}
}

func TestCachedFindMatchesAgrees(t *testing.T) {
	seq := "MAKVAQKQFQRSTV"

	direct := FindMatches(seq, "KVAQ", 1)
	cached := CachedFindMatches(seq, "KVAQ", 1)
	again := CachedFindMatches(seq, "KVAQ", 1)

	if len(direct) != len(cached) || len(cached) != len(again) {
		t.Fatalf("hit counts differ: %d direct, %d cached, %d repeat", len(direct), len(cached), len(again))
	}
	for i := range direct {
		if direct[i].Start != cached[i].Start || cached[i].Start != again[i].Start {
			t.Errorf("hit %d start differs between direct and cached calls", i)
		}
	}
}
