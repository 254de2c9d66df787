package pepparser

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

type IntensityColumn struct {
	Sample string
	Index  int
}

// Columns holds the resolved positions of the layout's named headers within
// one concrete file. RT and Mass are -1 when the file has no such column.
// Intensity preserves the column order of the file, which becomes the sample
// order everywhere downstream.
type Columns struct {
	Peptide   int
	Accession int
	RT        int
	Mass      int
	Intensity []IntensityColumn
}

// SampleNames returns the intensity sample names in file column order.
func (c Columns) SampleNames() []string {
	out := make([]string, 0, len(c.Intensity))
	for _, ic := range c.Intensity {
		out = append(out, ic.Sample)
	}

	return out
}

type Parser struct {
	CSVReaderSettings *csv.Reader
	Layout            Layout
}

func New(layout string) (*Parser, error) {
	l, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l)
}

func NewWithLayout(layout Layout) (*Parser, error) {
	n := &Parser{}
	n.Layout = layout
	n.CSVReaderSettings = &csv.Reader{}
	n.CSVReaderSettings.Comma = layout.Delimiter
	n.CSVReaderSettings.Comment = layout.Comment
	n.CSVReaderSettings.LazyQuotes = true

	return n, nil
}

// ResolveColumns locates the layout's headers within the file's header row.
// Matching is case-insensitive and ignores surrounding whitespace. An error
// is returned if the peptide or accession column is missing, or if no
// intensity column is found.
func (p *Parser) ResolveColumns(header []string) (Columns, error) {
	cols := Columns{Peptide: -1, Accession: -1, RT: -1, Mass: -1}

	for i, cell := range header {
		cell = strings.TrimSpace(cell)

		switch {
		case strings.EqualFold(cell, p.Layout.HeaderPeptide):
			cols.Peptide = i
			continue
		case strings.EqualFold(cell, p.Layout.HeaderAccession):
			cols.Accession = i
			continue
		case p.Layout.HeaderRT != "" && strings.EqualFold(cell, p.Layout.HeaderRT):
			cols.RT = i
			continue
		case p.Layout.HeaderMass != "" && strings.EqualFold(cell, p.Layout.HeaderMass):
			cols.Mass = i
			continue
		}

		for _, prefix := range p.Layout.IntensityPrefixes {
			if len(cell) > len(prefix) && strings.EqualFold(cell[:len(prefix)], prefix) {
				cols.Intensity = append(cols.Intensity, IntensityColumn{
					Sample: strings.TrimSpace(cell[len(prefix):]),
					Index:  i,
				})
				break
			}
		}
	}

	if cols.Peptide < 0 {
		return cols, fmt.Errorf("header has no %q column", p.Layout.HeaderPeptide)
	}
	if cols.Accession < 0 {
		return cols, fmt.Errorf("header has no %q column", p.Layout.HeaderAccession)
	}
	if len(cols.Intensity) < 1 {
		return cols, fmt.Errorf("header has no intensity columns (prefixes %v)", p.Layout.IntensityPrefixes)
	}

	return cols, nil
}

func (p *Parser) ParseRow(cols Columns, row []string) (Peptide, error) {
	return (*p.Layout.Parser)(&p.Layout, cols, row)
}

// DefaultParseRow builds a Peptide from one table row. Custom layouts can
// wrap it to post-process fields.
var DefaultParseRow = func(layout *Layout, cols Columns, row []string) (Peptide, error) {
	pep := Peptide{}

	if cols.Peptide >= len(row) {
		return pep, fmt.Errorf("row has %d fields; peptide column is %d", len(row), cols.Peptide)
	}

	pep.Sequence = strings.TrimSpace(row[cols.Peptide])
	pep.Naked = NakedSequence(pep.Sequence)

	if cols.Accession < len(row) {
		for _, acc := range strings.Split(row[cols.Accession], layout.AccessionSep) {
			acc = strings.TrimSpace(acc)
			if acc == "" {
				continue
			}
			pep.Proteins = append(pep.Proteins, acc)
		}
	}

	if v, ok := parseCell(cols.RT, row); ok {
		rt, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pep, fmt.Errorf("parsing RT %q: %w", v, err)
		}
		pep.RT = null.FloatFrom(rt)
	}

	if v, ok := parseCell(cols.Mass, row); ok {
		mass, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pep, fmt.Errorf("parsing mass %q: %w", v, err)
		}
		pep.Mass = null.FloatFrom(mass)
	}

	pep.Intensity = make(map[string]float64, len(cols.Intensity))
	for _, ic := range cols.Intensity {
		v, ok := parseCell(ic.Index, row)
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pep, fmt.Errorf("parsing intensity %q for sample %s: %w", v, ic.Sample, err)
		}
		pep.Intensity[ic.Sample] = x
	}

	return pep, nil
}

// parseCell reports whether the cell holds a usable value. Blank cells and
// the common absence markers are treated as missing rather than zero.
func parseCell(idx int, row []string) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}

	v := strings.TrimSpace(row[idx])
	switch v {
	case "", "-", "NA", "NaN", "nan":
		return "", false
	}

	return v, true
}
