package pepparser

import (
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Peptide is one identified peptide row. Intensity is keyed by sample name
// as derived from the table header. RT and Mass are null when the layout has
// no such column or the cell was blank.
type Peptide struct {
	Sequence  string
	Naked     string
	Proteins  []string
	RT        null.Float
	Mass      null.Float
	Intensity map[string]float64
}

// MaxIntensity returns the largest per-sample intensity, or 0 when the
// peptide was not quantified in any sample.
func (p Peptide) MaxIntensity() float64 {
	var max float64
	for _, v := range p.Intensity {
		if v > max {
			max = v
		}
	}

	return max
}

// TotalIntensity sums the peptide's intensity across all samples.
func (p Peptide) TotalIntensity() float64 {
	var sum float64
	for _, v := range p.Intensity {
		sum += v
	}

	return sum
}

// NakedSequence reduces a search engine peptide string to bare residues.
// Modification annotations in parentheses or brackets (e.g. M(+15.99),
// N(-.98), C[+57.0]) are removed, as is PEAKS-style flanking notation
// (K.PEPTIDE.R or -.PEPTIDE.R). The result is uppercased.
func NakedSequence(sequence string) string {
	// Drop any parenthesized or bracketed annotation, including nested
	// content such as the decimal point in (-.98)
	b := strings.Builder{}
	depth := 0
	for _, r := range sequence {
		switch {
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())

	// Flanking residue notation: single residue or terminus marker on
	// either side of the peptide, dot-separated
	if parts := strings.Split(out, "."); len(parts) == 3 &&
		len(parts[0]) <= 1 &&
		len(parts[2]) <= 1 {
		out = parts[1]
	}

	out = strings.ToUpper(out)

	// Whatever non-residue characters remain (stray dots, charge marks)
	// are not informative for mapping
	b.Reset()
	for _, r := range out {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
