// Package pepmap locates peptides within protein sequences and summarizes
// the resulting coverage.
package pepmap

import "strings"

// Match is one placement of a peptide within a protein. Start and End are
// 1-based and inclusive, following the coordinate convention of protein
// annotation tools. MismatchIdx holds 0-based offsets into the peptide.
type Match struct {
	Peptide     string
	Protein     string
	Start       int
	End         int
	Mismatches  int
	MismatchIdx []int
	Matched     string
}

// Len returns the number of residues the match spans.
func (m Match) Len() int {
	return m.End - m.Start + 1
}

// Overlaps reports whether two matches on the same protein are within gap
// residues of one another. Touching or overlapping intervals always qualify.
func (m Match) Overlaps(other Match, gap int) bool {
	if m.Protein != other.Protein {
		return false
	}

	return m.Start <= other.End+gap && other.Start <= m.End+gap
}

// FindMatches reports every window of seq where peptide aligns with at most
// maxMismatches substitutions. A peptide longer than the sequence yields
// nil. With maxMismatches of 0 the scan reduces to exact substring search.
func FindMatches(seq, peptide string, maxMismatches int) []Match {
	pl := len(peptide)
	if pl == 0 || len(seq) < pl {
		return nil
	}

	// Exact-match fast path: jump scanning via the SIMD'd strings.Index
	if maxMismatches == 0 {
		var out []Match
		for i := 0; ; {
			j := strings.Index(seq[i:], peptide)
			if j < 0 {
				break
			}
			pos := i + j
			out = append(out, Match{
				Peptide: peptide,
				Start:   pos + 1,
				End:     pos + pl,
				Matched: peptide,
			})
			i = pos + 1
		}
		return out
	}

	end := len(seq) - pl
	var out []Match

window:
	for pos := 0; pos <= end; pos++ {
		mm := 0
		var idx []int
		for j := 0; j < pl; j++ {
			if seq[pos+j] != peptide[j] {
				mm++
				if mm > maxMismatches {
					continue window
				}
				idx = append(idx, j)
			}
		}
		out = append(out, Match{
			Peptide:     peptide,
			Start:       pos + 1,
			End:         pos + pl,
			Mismatches:  mm,
			MismatchIdx: idx,
			Matched:     seq[pos : pos+pl],
		})
	}

	return out
}
