// Package pepparser loads peptide identification tables produced by mass
// spectrometry search engines. Named layouts describe the column headers of
// each supported export format; additional layouts can be registered at
// runtime by adding to Layouts.
package pepparser

import "strings"

type Layout struct {
	Delimiter rune
	Comment   rune

	// Header cells, matched case-insensitively after trimming
	HeaderPeptide   string
	HeaderAccession string
	HeaderRT        string
	HeaderMass      string

	// Prefixes that mark per-sample intensity columns. The sample name is
	// the remainder of the header cell after the prefix.
	IntensityPrefixes []string

	// Separator between accessions when one peptide maps to several
	// proteins within a single cell
	AccessionSep string

	Parser *func(layout *Layout, cols Columns, row []string) (Peptide, error)
}

var Layouts = map[string]Layout{
	"PEAKS": {
		Delimiter:         ',',
		Comment:           '#',
		HeaderPeptide:     "Peptide",
		HeaderAccession:   "Protein Accession",
		HeaderRT:          "RT",
		HeaderMass:        "Mass",
		IntensityPrefixes: []string{"Intensity ", "Area "},
		AccessionSep:      ":",
		Parser:            &DefaultParseRow,
	},
	"MAXQUANT": {
		Delimiter:         '\t',
		Comment:           '#',
		HeaderPeptide:     "Sequence",
		HeaderAccession:   "Proteins",
		HeaderRT:          "Retention time",
		HeaderMass:        "Mass",
		IntensityPrefixes: []string{"Intensity "},
		AccessionSep:      ";",
		Parser:            &DefaultParseRow,
	},
}

func LayoutNames() string {
	b := strings.Builder{}
	i := 0
	for m := range Layouts {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(m)
		i++
	}

	return b.String()
}
