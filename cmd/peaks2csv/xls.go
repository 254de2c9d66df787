package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/extrame/xls"

	"github.com/lilab-monash/protpeptigram"
	"github.com/lilab-monash/protpeptigram/pepparser"
)

// loadAllSheets parses every worksheet of a legacy Excel workbook against the
// first sheet's header row, the way multi-fraction PEAKS exports are split.
func loadAllSheets(path, layoutName string) ([]pepparser.Peptide, []string, error) {
	parser, err := pepparser.New(layoutName)
	if err != nil {
		return nil, nil, err
	}

	spreadsheet, err := xls.Open(protpeptigram.ExpandHome(path), "utf-8")
	if err != nil {
		return nil, nil, err
	}

	var cols pepparser.Columns
	var out []pepparser.Peptide

	sheetCount := spreadsheet.NumSheets()
	for sheetID := 0; sheetID < sheetCount; sheetID++ {

		sheet := spreadsheet.GetSheet(sheetID)

		log.Printf("Parsing sheet %d\n", sheetID)

		if sheet == nil {
			return nil, nil, fmt.Errorf("sheet %d was nil", sheetID)
		}

		for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
			row := sheet.Row(rowID)
			if row == nil {
				continue
			}

			cells := make([]string, 0, row.LastCol()+1)
			for colID := 0; colID <= row.LastCol(); colID++ {
				cells = append(cells, strings.TrimSpace(row.Col(colID)))
			}

			if rowID == 0 {
				if sheetID == 0 {
					cols, err = parser.ResolveColumns(cells)
					if err != nil {
						return nil, nil, err
					}
				}
				// Skip the header row, except the first time
				continue
			}

			pep, err := parser.ParseRow(cols, cells)
			if err != nil {
				return nil, nil, fmt.Errorf("sheet %d row %d: %w", sheetID, rowID+1, err)
			}
			if pep.Naked == "" {
				continue
			}

			out = append(out, pep)
		}
	}

	return out, cols.SampleNames(), nil
}
