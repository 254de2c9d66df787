// corewindows extracts high-density core windows from peptide placement
// profiles and reports them as TSV, optionally comparing two samples by
// per-window Fisher tests and profile correlation.
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
	"github.com/gonum/stat"

	_ "github.com/lilab-monash/protpeptigram/buildinfoprint"
	"github.com/lilab-monash/protpeptigram/density"
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
		peptidePath   string
		fastaPath     string
		layout        string
		maxMismatches int
		smooth        int
		lowpass       float64
		quantile      float64
		minWindow     int
		compare       string
		bins          int
	)

	flag.StringVar(&peptidePath, "peptides", "", "Path to the peptide table (.csv, .tsv, .gz, or .xls; local, http(s)://, or gs://)")
	flag.StringVar(&fastaPath, "fasta", "", "Path to the protein FASTA (local, http(s)://, or gs://)")
	flag.StringVar(&layout, "layout", "PEAKS", fmt.Sprint("Layout of your peptide table. Currently, options include: ", pepparser.LayoutNames()))
	flag.IntVar(&maxMismatches, "max-mismatches", 0, "Maximum residue mismatches permitted when placing a peptide")
	flag.IntVar(&smooth, "smooth", density.DefaultOptions.Smooth, "Half-width of the trimmed-median smoothing window; 0 disables smoothing")
	flag.Float64Var(&lowpass, "lowpass", 0, "Optional: Butterworth low-pass cutoff (0,0.5) applied to the density before window extraction")
	flag.Float64Var(&quantile, "quantile", density.DefaultOptions.Quantile, "Density quantile (over covered residues) a residue must reach to join a core window")
	flag.IntVar(&minWindow, "min-window", density.DefaultOptions.MinWindow, "Core windows spanning fewer residues than this are dropped")
	flag.StringVar(&compare, "compare", "", "Optional: two comma-delimited sample names to compare (per-window Fisher tests plus per-protein profile correlation)")
	flag.IntVar(&bins, "bins", 0, "Optional: print a terminal histogram of window scores with this many bins")
	flag.Parse()

	if peptidePath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --peptides")
	}

	if fastaPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --fasta")
	}

	// Initialize the Google Storage client, but only if one of our inputs
	// indicates that we are pointing to a Google Storage path.
	if strings.HasPrefix(peptidePath, "gs://") || strings.HasPrefix(fastaPath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	var peptides []pepparser.Peptide
	var sampleNames []string
	var err error
	if strings.HasSuffix(strings.ToLower(peptidePath), ".xls") {
		peptides, sampleNames, err = pepparser.LoadXLS(peptidePath, layout)
	} else {
		peptides, sampleNames, err = pepparser.LoadTable(peptidePath, layout, client)
	}
	if err != nil {
		log.Fatalln(err)
	}

	proteins, proteinOrder, err := fasta.ReadAll(fastaPath, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(proteins), "proteins and", len(peptides), "peptide rows")

	seqs := make(map[string]string, len(proteins))
	lengths := make(map[string]int, len(proteins))
	for id, rec := range proteins {
		seqs[id] = rec.Seq
		lengths[id] = len(rec.Seq)
	}

	nakeds := make([]string, 0, len(peptides))
	for _, pep := range peptides {
		nakeds = append(nakeds, pep.Naked)
	}

	matches := pepmap.Map(seqs, nakeds, maxMismatches, runtime.NumCPU())

	profiles := density.Profiles(matches, peptides, lengths, true)

	opts := density.Options{
		Smooth:    smooth,
		Lowpass:   lowpass,
		Quantile:  quantile,
		MinWindow: minWindow,
	}

	var windows []density.Window
	for _, p := range profiles {
		ws, err := density.CoreWindows(p, opts)
		if err != nil {
			log.Fatalln(err)
		}
		windows = append(windows, ws...)
	}

	// Header
	fmt.Printf("protein\tsample\tstart\tend\tscore\tp\n")

	for _, w := range windows {
		fmt.Fprintf(STDOUT, "%s\t%s\t%d\t%d\t%g\t%g\n", w.Protein, w.Sample, w.Start, w.End, w.Score, w.P)
	}

	scoresBySample := make(map[string][]float64)
	for _, w := range windows {
		scoresBySample[w.Sample] = append(scoresBySample[w.Sample], w.Score)
	}
	for _, name := range sampleNames {
		scores := scoresBySample[name]
		if len(scores) == 0 {
			continue
		}
		m, s := stat.MeanStdDev(scores, nil)
		log.Println("Sample", name+":", len(scores), "windows. Score mean:", m, "SD:", s)
	}

	if bins > 0 {
		printScoreHistogram(windows, bins)
	}

	if compare != "" {
		parts := strings.Split(compare, ",")
		if x := len(parts); x != 2 {
			log.Fatalf("--compare expects exactly 2 comma-delimited sample names, but %d were given\n", x)
		}
		comparePair(parts[0], parts[1], proteinOrder, matches, profiles, windows, peptides)
	}
}
