// pep2prot maps peptides onto proteins and emits every placement as a
// tab-delimited table, optionally with per-protein coverage run lengths, a
// SQLite copy of the placements, or hash-based peptide deduplication.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/lilab-monash/protpeptigram"
	_ "github.com/lilab-monash/protpeptigram/buildinfoprint"
	"github.com/lilab-monash/protpeptigram/fasta"
	"github.com/lilab-monash/protpeptigram/pepmap"
	"github.com/lilab-monash/protpeptigram/pepparser"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

// Safe for concurrent use by multiple goroutines so we'll make this a global
var client *storage.Client

func main() {
	defer STDOUT.Flush()

	var (
		fastaPath     string
		peptidePath   string
		layout        string
		maxMismatches int
		rle           bool
		dbPath        string
		dedupe        bool
	)

	flag.StringVar(&fastaPath, "fasta", "", "Path to the protein FASTA (local, http(s)://, or gs://)")
	flag.StringVar(&peptidePath, "peptides", "", "Path to the peptides: a text list or a search engine table (see --layout)")
	flag.StringVar(&layout, "layout", "LIST", fmt.Sprint("Layout of --peptides. LIST means one peptide per line; table options include: ", pepparser.LayoutNames()))
	flag.IntVar(&maxMismatches, "max-mismatches", 0, "Maximum residue mismatches permitted when placing a peptide")
	flag.BoolVar(&rle, "rle", false, "Append per-protein coverage lines, run-length encoded")
	flag.StringVar(&dbPath, "db", "", "Optional: also write the placements into this SQLite database (table pepmatch)")
	flag.BoolVar(&dedupe, "dedupe", false, "Collapse duplicate peptides before mapping")
	flag.Parse()

	if fastaPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --fasta")
	}

	if peptidePath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --peptides")
	}

	// Initialize the Google Storage client, but only if one of our inputs
	// indicates that we are pointing to a Google Storage path.
	if strings.HasPrefix(fastaPath, "gs://") || strings.HasPrefix(peptidePath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	peptides, err := loadPeptideStrings(peptidePath, layout)
	if err != nil {
		log.Fatalln(err)
	}

	if dedupe {
		fs := NewFastSlice()
		for _, pep := range peptides {
			fs.Add(pep)
		}
		log.Println("Deduplication kept", len(fs.Slice()), "of", len(peptides), "peptides")
		peptides = fs.Slice()
	}

	proteins, proteinOrder, err := fasta.ReadAll(fastaPath, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(proteins), "proteins and", len(peptides), "peptides")

	seqs := make(map[string]string, len(proteins))
	for id, rec := range proteins {
		seqs[id] = rec.Seq
	}

	matches := pepmap.Map(seqs, peptides, maxMismatches, runtime.NumCPU())

	// Header
	fmt.Printf("peptide\tprotein\tstart\tend\tmismatches\tmatched\n")

	for _, id := range proteinOrder {
		for _, m := range matches[id] {
			fmt.Fprintf(STDOUT, "%s\t%s\t%d\t%d\t%d\t%s\n", m.Peptide, m.Protein, m.Start, m.End, m.Mismatches, m.Matched)
		}
	}

	if rle {
		for _, id := range proteinOrder {
			ms := matches[id]
			if len(ms) == 0 {
				continue
			}
			// The run-length encoding is binary, so hex it for the TSV
			fmt.Fprintf(STDOUT, "#coverage\t%s\t%X\n", id, pepmap.CoverageRLE(ms, len(proteins[id].Seq)))
		}
	}

	if dbPath != "" {
		n, err := writeDB(dbPath, matches, proteinOrder)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", n, "placements to", dbPath)
	}
}

// loadPeptideStrings returns naked peptide sequences from either a
// peptide-per-line list or a search engine table.
func loadPeptideStrings(path, layout string) ([]string, error) {
	if layout == "LIST" {
		list, err := protpeptigram.OpenPeptideList(path)
		if err != nil {
			return nil, err
		}
		defer list.Close()

		return list.ReadAll()
	}

	var peps []pepparser.Peptide
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".xls") {
		peps, _, err = pepparser.LoadXLS(path, layout)
	} else {
		peps, _, err = pepparser.LoadTable(path, layout, client)
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(peps))
	for _, pep := range peps {
		out = append(out, pep.Naked)
	}

	return out, nil
}
