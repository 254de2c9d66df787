// peaks2csv normalizes a search engine peptide table into tidy long-format
// CSV: one row per (peptide, protein, sample) observation.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gocarina/gocsv"

	"github.com/lilab-monash/protpeptigram"
	_ "github.com/lilab-monash/protpeptigram/buildinfoprint"
	"github.com/lilab-monash/protpeptigram/pepparser"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

// Safe for concurrent use by multiple goroutines so we'll make this a global
var client *storage.Client

// TidyRow is one (peptide, protein, sample) observation. RT and Mass stay
// strings so that missing cells round-trip as blanks rather than zeros.
type TidyRow struct {
	Peptide   string  `csv:"peptide"`
	Naked     string  `csv:"naked"`
	Protein   string  `csv:"protein"`
	Sample    string  `csv:"sample"`
	Intensity float64 `csv:"intensity"`
	RT        string  `csv:"rt"`
	Mass      string  `csv:"mass"`
}

func main() {
	defer STDOUT.Flush()

	var (
		input  string
		layout string
		output string
	)

	flag.StringVar(&input, "input", "", "Path to the peptide table (.csv, .tsv, .gz, or .xls; local, http(s)://, or gs://)")
	flag.StringVar(&layout, "layout", "PEAKS", fmt.Sprint("Layout of your peptide table. Currently, options include: ", pepparser.LayoutNames()))
	flag.StringVar(&output, "output", "", "Optional: write the tidy CSV here instead of stdout")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --input")
	}

	// Initialize the Google Storage client, but only if our input indicates
	// that we are pointing to a Google Storage path.
	if strings.HasPrefix(input, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	var peptides []pepparser.Peptide
	var sampleNames []string
	var err error
	if strings.HasSuffix(strings.ToLower(input), ".xls") {
		peptides, sampleNames, err = loadAllSheets(input, layout)
	} else {
		peptides, sampleNames, err = pepparser.LoadTable(input, layout, client)
	}
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(peptides), "peptide rows quantified across", len(sampleNames), "samples")

	rows := tidy(peptides, sampleNames)

	if output == "" {
		if err := gocsv.Marshal(&rows, STDOUT); err != nil {
			log.Fatalln(err)
		}
		return
	}

	f, err := os.Create(protpeptigram.ExpandHome(output))
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", len(rows), "tidy rows to", output)
}

// tidy explodes the wide per-sample intensity columns into long format. A
// peptide mapping to several proteins yields one block of rows per protein.
func tidy(peptides []pepparser.Peptide, sampleNames []string) []*TidyRow {
	rows := make([]*TidyRow, 0, len(peptides))

	for _, pep := range peptides {
		rt, mass := "", ""
		if pep.RT.Valid {
			rt = strconv.FormatFloat(pep.RT.Float64, 'f', -1, 64)
		}
		if pep.Mass.Valid {
			mass = strconv.FormatFloat(pep.Mass.Float64, 'f', -1, 64)
		}

		for _, protein := range pep.Proteins {
			for _, sample := range sampleNames {
				x, exists := pep.Intensity[sample]
				if !exists {
					continue
				}

				rows = append(rows, &TidyRow{
					Peptide:   pep.Sequence,
					Naked:     pep.Naked,
					Protein:   protein,
					Sample:    sample,
					Intensity: x,
					RT:        rt,
					Mass:      mass,
				})
			}
		}
	}

	return rows
}
