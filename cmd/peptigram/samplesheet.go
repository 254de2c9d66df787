package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"

	"github.com/lilab-monash/protpeptigram"
	"github.com/lilab-monash/protpeptigram/immunoviz"
)

// SampleSheetRow is one line of the optional sample sheet. SampleID must
// match an intensity column name from the peptide table. Date is free-form
// and only needs to be something dateparse understands.
type SampleSheetRow struct {
	SampleID    string `csv:"sample_id"`
	DisplayName string `csv:"display_name"`
	Color       string `csv:"color"`
	SortOrder   int    `csv:"sort_order"`
	Date        string `csv:"date"`
}

// loadSampleSheet converts a sample sheet into the figure package's sample
// map. Rows without an explicit sort order keep sheet order.
func loadSampleSheet(path string) (immunoviz.SampleMap, error) {
	fileBytes, err := protpeptigram.OpenFileOrURL(path, client)
	if err != nil {
		return nil, err
	}

	// Tell gocsv to use the sheet's own delimiter so both .csv and .tsv
	// sheets work
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = protpeptigram.DetermineDelimiterBytes(fileBytes)
		r.LazyQuotes = true
		return r
	})

	records := []*SampleSheetRow{}
	if err := gocsv.UnmarshalBytes(fileBytes, &records); err != nil {
		return nil, err
	}

	out := make(immunoviz.SampleMap, len(records))
	for i, rec := range records {
		if rec.SampleID == "" {
			return nil, fmt.Errorf("sample sheet row %d has no sample_id", i+2)
		}

		if rec.Date != "" {
			when, err := dateparse.ParseAny(rec.Date)
			if err != nil {
				return nil, fmt.Errorf("sample sheet row %d: unparseable date %q: %w", i+2, rec.Date, err)
			}
			log.Println("Sample", rec.SampleID, "was acquired", when.Format("2006-01-02"))
		}

		order := rec.SortOrder
		if order == 0 {
			order = i
		}

		out[rec.SampleID] = immunoviz.Sample{
			DisplayName: rec.DisplayName,
			Color:       strings.ToLower(rec.Color),
			SortOrder:   order,
		}
	}

	return out, nil
}
