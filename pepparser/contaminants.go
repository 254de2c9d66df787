package pepparser

import "strings"

// DefaultContaminantPatterns match the accession conventions of the common
// contaminant and decoy databases (cRAP, MaxQuant CON__/REV__ entries).
var DefaultContaminantPatterns = []string{
	"CON__",
	"CONTAM",
	"REV__",
	"DECOY",
	"KERATIN",
}

// FilterContaminants removes contaminant accessions from each peptide and
// drops peptides that mapped only to contaminants. Matching is a
// case-insensitive substring test against patterns; nil patterns use
// DefaultContaminantPatterns.
func FilterContaminants(peptides []Peptide, patterns []string) []Peptide {
	if patterns == nil {
		patterns = DefaultContaminantPatterns
	}

	upper := make([]string, len(patterns))
	for i, pat := range patterns {
		upper[i] = strings.ToUpper(pat)
	}

	out := make([]Peptide, 0, len(peptides))
	for _, pep := range peptides {
		kept := make([]string, 0, len(pep.Proteins))
		for _, acc := range pep.Proteins {
			if isContaminant(acc, upper) {
				continue
			}
			kept = append(kept, acc)
		}

		if len(kept) == 0 {
			continue
		}

		pep.Proteins = kept
		out = append(out, pep)
	}

	return out
}

func isContaminant(accession string, upperPatterns []string) bool {
	acc := strings.ToUpper(accession)
	for _, pat := range upperPatterns {
		if strings.Contains(acc, pat) {
			return true
		}
	}

	return false
}
