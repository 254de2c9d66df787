package pepparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/extrame/xls"

	"github.com/lilab-monash/protpeptigram"
)

// Load consumes an already-opened table. The header row is resolved against
// the parser's layout, then every remaining row is parsed. Rows whose naked
// sequence is empty are skipped with a notice. Returns the peptides and the
// sample names in column order.
func (p *Parser) Load(r io.Reader) ([]Peptide, []string, error) {
	cr := csv.NewReader(NewQuoteFixReader(r))
	cr.Comma = p.CSVReaderSettings.Comma
	cr.Comment = p.CSVReaderSettings.Comment
	cr.LazyQuotes = p.CSVReaderSettings.LazyQuotes
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	cols, err := p.ResolveColumns(header)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	var out []Peptide
	var skipped int
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, pfx.Err(err)
		}

		pep, err := p.ParseRow(cols, row)
		if err != nil {
			return nil, nil, pfx.Err(fmt.Errorf("line %d: %w", line, err))
		}

		if pep.Naked == "" {
			skipped++
			continue
		}

		out = append(out, pep)
	}

	if skipped > 0 {
		log.Println("Skipped", skipped, "rows with no usable peptide sequence")
	}

	return out, cols.SampleNames(), nil
}

// LoadTable opens a local, http(s)://, or gs:// table and parses it with the
// named layout. A layout delimiter of 0 asks for sniffing from the file
// contents.
func LoadTable(path, layoutName string, client *storage.Client) ([]Peptide, []string, error) {
	parser, err := New(layoutName)
	if err != nil {
		return nil, nil, err
	}

	data, err := protpeptigram.OpenFileOrURL(path, client)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	if parser.CSVReaderSettings.Comma == 0 {
		parser.CSVReaderSettings.Comma = protpeptigram.DetermineDelimiterBytes(data)
	}

	return parser.Load(bytes.NewReader(data))
}

// LoadXLS parses the first worksheet of a legacy Excel workbook with the
// named layout. Cell values go through the same header resolution and row
// parsing as delimited text.
func LoadXLS(path, layoutName string) ([]Peptide, []string, error) {
	parser, err := New(layoutName)
	if err != nil {
		return nil, nil, err
	}

	rows, err := XLSRows(path, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("%s: worksheet has no rows", path)
	}

	cols, err := parser.ResolveColumns(rows[0])
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	var out []Peptide
	for i, row := range rows[1:] {
		pep, err := parser.ParseRow(cols, row)
		if err != nil {
			return nil, nil, pfx.Err(fmt.Errorf("row %d: %w", i+2, err))
		}
		if pep.Naked == "" {
			continue
		}
		out = append(out, pep)
	}

	return out, cols.SampleNames(), nil
}

// XLSRows extracts one worksheet as a string grid.
func XLSRows(path string, sheetID int) ([][]string, error) {
	spreadsheet, err := xls.Open(protpeptigram.ExpandHome(path), "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}

	if n := spreadsheet.NumSheets(); sheetID >= n {
		return nil, fmt.Errorf("%s: sheet %d requested but workbook has %d", path, sheetID, n)
	}

	sheet := spreadsheet.GetSheet(sheetID)
	if sheet == nil {
		return nil, fmt.Errorf("%s: sheet %d was nil", path, sheetID)
	}

	var rows [][]string
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			continue
		}

		cells := make([]string, 0, row.LastCol()+1)
		for colID := 0; colID <= row.LastCol(); colID++ {
			cells = append(cells, strings.TrimSpace(row.Col(colID)))
		}
		rows = append(rows, cells)
	}

	return rows, nil
}
