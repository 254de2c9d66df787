package immunoviz

import (
	"testing"

	"github.com/lilab-monash/protpeptigram/pepmap"
)

func TestPackRowsAlternatesWhenCrowded(t *testing.T) {
	matches := []pepmap.Match{
		{Peptide: "AAKVAQKQF", Protein: "P1", Start: 1, End: 9},
		{Peptide: "AKVAQKQFQ", Protein: "P1", Start: 2, End: 10},
		{Peptide: "LNLVPMVAT", Protein: "P1", Start: 40, End: 48},
		{Peptide: "NLVPMVATV", Protein: "P1", Start: 41, End: 49},
	}

	rows := PackRows(matches, 2, 10)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if len(rows[0]) != 2 || rows[0][0].Start != 1 || rows[0][1].Start != 40 {
		t.Errorf("row 0 mismatch: %+v", rows[0])
	}
	if len(rows[1]) != 2 || rows[1][0].Start != 2 || rows[1][1].Start != 41 {
		t.Errorf("row 1 mismatch: %+v", rows[1])
	}
}

func TestPackRowsSharesRowWhenClear(t *testing.T) {
	matches := []pepmap.Match{
		{Peptide: "AAKVAQKQF", Protein: "P1", Start: 1, End: 9},
		{Peptide: "SIINFE", Protein: "P1", Start: 25, End: 30},
	}

	rows := PackRows(matches, 2, 10)
	if len(rows[0]) != 2 {
		t.Errorf("expected both peptides in row 0, got %+v", rows)
	}
	if len(rows[1]) != 0 {
		t.Errorf("expected row 1 empty, got %+v", rows[1])
	}
}

func TestPackRowsOverflowPilesOnEarliestEnd(t *testing.T) {
	matches := []pepmap.Match{
		{Peptide: "AAKVAQKQF", Protein: "P1", Start: 1, End: 9},
		{Peptide: "AKVAQKQFQR", Protein: "P1", Start: 2, End: 11},
	}

	rows := PackRows(matches, 1, 10)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if len(rows[0]) != 2 {
		t.Errorf("expected both peptides piled into row 0, got %+v", rows[0])
	}
}

func TestPackRowsDefaultsRowCount(t *testing.T) {
	rows := PackRows(nil, 0, 10)
	if len(rows) != 2 {
		t.Errorf("expected default of 2 rows, got %d", len(rows))
	}
}

func TestPackRowsSortsByStartThenLength(t *testing.T) {
	matches := []pepmap.Match{
		{Peptide: "KVAQKQFQRLV", Protein: "P1", Start: 30, End: 40},
		{Peptide: "KVAQKQFQR", Protein: "P1", Start: 30, End: 38},
	}

	rows := PackRows(matches, 2, 10)

	// The shorter peptide places first
	if rows[0][0].End != 38 {
		t.Errorf("expected shorter peptide first, got %+v", rows[0][0])
	}
}
