package immunoviz

import (
	"sort"

	"github.com/lilab-monash/protpeptigram/pepmap"
)

// PackRows distributes peptide bars across a fixed number of display rows.
// Bars are placed greedily: each peptide goes to the first row with at least
// gap residues of clearance after that row's last bar, and when no row has
// room it stacks onto the row that ends soonest. Returns exactly maxRows
// rows; trailing rows may be empty.
func PackRows(matches []pepmap.Match, maxRows, gap int) [][]pepmap.Match {
	if maxRows < 1 {
		maxRows = 2
	}

	sorted := make([]pepmap.Match, len(matches))
	copy(sorted, matches)

	// Shorter peptides first within a start position pack tighter
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}

		return sorted[i].Len() < sorted[j].Len()
	})

	rows := make([][]pepmap.Match, maxRows)
	rowEnds := make([]int, maxRows)

	for _, m := range sorted {
		assigned := false
		for i := range rows {
			if m.Start > rowEnds[i]+gap {
				rows[i] = append(rows[i], m)
				rowEnds[i] = m.End
				assigned = true
				break
			}
		}
		if assigned {
			continue
		}

		// Every row is occupied at this position; pile onto the row that
		// ends soonest
		best := 0
		for i := range rowEnds {
			if rowEnds[i] < rowEnds[best] {
				best = i
			}
		}

		rows[best] = append(rows[best], m)
		if m.End > rowEnds[best] {
			rowEnds[best] = m.End
		}
	}

	return rows
}
