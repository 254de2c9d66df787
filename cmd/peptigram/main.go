// peptigram renders per-protein peptide coverage maps from mass spectrometry
// peptide tables: packed peptide bars over the protein track, per-sample
// density traces, and shaded core windows, plus a core window TSV on stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aybabtme/uniplot/histogram"

	"github.com/lilab-monash/protpeptigram"
	_ "github.com/lilab-monash/protpeptigram/buildinfoprint"
	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/fasta"
	"github.com/lilab-monash/protpeptigram/immunoviz"
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
		customLayout  string
		samplesPath   string
		configPath    string
		outputDir     string
		contaminants  string
		maxMismatches int
		minSamples    int
		smooth        int
		lowpass       float64
		quantile      float64
		minWindow     int
		unweighted    bool
		hist          bool
		gifOut        bool
		profilesOut   bool
		heatmapOut    bool
	)

	defaults := immunoviz.DefaultConfig()
	format := defaults.Format
	widthMM := defaults.WidthMM
	heightMM := defaults.HeightMM
	resolution := defaults.Resolution
	labelPeptides := defaults.LabelPeptides
	legend := defaults.ShowLegend
	title := defaults.ShowTitle

	flag.StringVar(&peptidePath, "peptides", "", "Path to the peptide table (.csv, .tsv, .gz, or .xls; local, http(s)://, or gs://). A gs:// prefix ending in / loads every table below it.")
	flag.StringVar(&fastaPath, "fasta", "", "Path to the protein FASTA (local, http(s)://, or gs://)")
	flag.StringVar(&layout, "layout", "PEAKS", fmt.Sprint("Layout of your peptide table. Currently, options include: ", pepparser.LayoutNames()))
	flag.StringVar(&customLayout, "custom-layout", "", "Optional: a tab-delimited table layout given as 6 comma-delimited header fields: Peptide,Accession,RT,Mass,IntensityPrefix,AccessionSep. Use - for an RT or Mass column your table lacks.")
	flag.StringVar(&samplesPath, "samples", "", "Optional: path to a sample sheet (sample_id, display_name, color, sort_order, date) naming and coloring the intensity columns")
	flag.StringVar(&configPath, "config", "", "Optional: path to a figure config JSON. When provided, it supersedes the figure flags (--format, --width, --height, --resolution, --max-mismatches, --label-peptides, --legend, --title).")
	flag.StringVar(&outputDir, "output", ".", "Directory where the per-protein figures will be written")
	flag.StringVar(&format, "format", format, "Figure format: png, jpg, pdf, or svg")
	flag.Float64Var(&widthMM, "width", widthMM, "Figure width in millimeters")
	flag.Float64Var(&heightMM, "height", heightMM, "Figure height in millimeters")
	flag.Float64Var(&resolution, "resolution", resolution, "Raster resolution in pixels per millimeter")
	flag.IntVar(&maxMismatches, "max-mismatches", defaults.MaxMismatches, "Maximum residue mismatches permitted when placing a peptide on a protein")
	flag.IntVar(&minSamples, "min-samples", 1, "Peptides quantified in fewer than this many samples are dropped")
	flag.StringVar(&contaminants, "contaminants", "", fmt.Sprint("Comma-delimited accession patterns to treat as contaminants. Defaults to the built-in patterns (", strings.Join(pepparser.DefaultContaminantPatterns, ", "), "); pass NONE to keep everything."))
	flag.IntVar(&smooth, "smooth", density.DefaultOptions.Smooth, "Half-width of the trimmed-median smoothing window for core window extraction; 0 disables smoothing")
	flag.Float64Var(&lowpass, "lowpass", 0, "Optional: Butterworth low-pass cutoff (0,0.5) applied to the density before window extraction")
	flag.Float64Var(&quantile, "quantile", density.DefaultOptions.Quantile, "Density quantile (over covered residues) a residue must reach to join a core window")
	flag.IntVar(&minWindow, "min-window", density.DefaultOptions.MinWindow, "Core windows spanning fewer residues than this are dropped")
	flag.BoolVar(&unweighted, "unweighted", false, "Count each covering peptide as 1 instead of spreading its intensity over its span")
	flag.BoolVar(&hist, "hist", false, "Print a terminal histogram of log10 peptide intensities")
	flag.BoolVar(&gifOut, "gif", false, "Also write an animated GIF per protein, cycling through the samples")
	flag.BoolVar(&profilesOut, "profiles", false, "Also write a sparkline PNG per (protein, sample) density profile")
	flag.BoolVar(&heatmapOut, "heatmap", false, "Also write a sample-by-residue heatmap PNG per protein")
	flag.BoolVar(&labelPeptides, "label-peptides", labelPeptides, "Draw the peptide sequence next to each bar")
	flag.BoolVar(&legend, "legend", legend, "Draw the legend")
	flag.BoolVar(&title, "title", title, "Draw the protein name above the plot instead of on the track")
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
	if strings.HasPrefix(peptidePath, "gs://") ||
		strings.HasPrefix(fastaPath, "gs://") ||
		strings.HasPrefix(samplesPath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	if customLayout != "" {
		layout = "CUSTOM"

		parts := strings.Split(customLayout, ",")
		if x := len(parts); x != 6 {
			log.Fatalf("--custom-layout was toggled; 6 comma-delimited header fields were expected, but %d were given\n", x)
		}
		for i := range parts {
			if parts[i] == "-" {
				parts[i] = ""
			}
		}
		if parts[0] == "" || parts[1] == "" || parts[4] == "" || parts[5] == "" {
			log.Fatalln("--custom-layout fields 1, 2, 5, and 6 (peptide, accession, intensity prefix, accession separator) may not be blank")
		}

		parseRule := func(layout *pepparser.Layout, cols pepparser.Columns, row []string) (pepparser.Peptide, error) {
			p, err := pepparser.DefaultParseRow(layout, cols, row)
			if err != nil {
				return p, err
			}

			// ... remove FASTA-style '>' prefixes from the accession column
			for i, acc := range p.Proteins {
				p.Proteins[i] = strings.TrimPrefix(acc, ">")
			}

			return p, err
		}

		udf := pepparser.Layout{
			Delimiter:         '\t', // TODO: make this configurable
			Comment:           '#',  // TODO: make this configurable
			HeaderPeptide:     parts[0],
			HeaderAccession:   parts[1],
			HeaderRT:          parts[2],
			HeaderMass:        parts[3],
			IntensityPrefixes: []string{parts[4]},
			AccessionSep:      parts[5],
			Parser:            &parseRule,
		}

		log.Println("Using custom parser:")
		fmt.Fprintf(os.Stderr, "%+v\n", udf)

		pepparser.Layouts["CUSTOM"] = udf
	}

	cfg := defaults
	cfg.Format = format
	cfg.WidthMM = widthMM
	cfg.HeightMM = heightMM
	cfg.Resolution = resolution
	cfg.MaxMismatches = maxMismatches
	cfg.LabelPeptides = labelPeptides
	cfg.ShowLegend = legend
	cfg.ShowTitle = title

	if configPath != "" {
		var err error
		cfg, err = immunoviz.ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Figure flags are superseded by", configPath)
	}

	peptides, sampleNames, err := loadPeptides(peptidePath, layout)
	if err != nil {
		log.Fatalln(err)
	}

	proteins, proteinOrder, err := fasta.ReadAll(fastaPath, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(proteins), "proteins and", len(peptides), "peptide rows")

	if !strings.EqualFold(contaminants, "NONE") {
		var patterns []string // nil applies the built-in patterns
		if contaminants != "" {
			patterns = strings.Split(contaminants, ",")
		}

		before := len(peptides)
		peptides = pepparser.FilterContaminants(peptides, patterns)
		log.Println("Contaminant filtering removed", before-len(peptides), "of", before, "peptide rows")
	}

	if minSamples > 1 {
		kept := make([]pepparser.Peptide, 0, len(peptides))
		for _, pep := range peptides {
			quantified := 0
			for _, x := range pep.Intensity {
				if x > 0 {
					quantified++
				}
			}
			if quantified >= minSamples {
				kept = append(kept, pep)
			}
		}
		log.Println("Dropped", len(peptides)-len(kept), "peptides quantified in fewer than", minSamples, "samples")
		peptides = kept
	}

	stats := pepparser.RunningIntensityStats(peptides)
	for _, name := range sampleNames {
		stat, exists := stats[name]
		if !exists {
			continue
		}
		log.Println("Sample", name, "based on", stat.N, "quantified peptides. Min/max:", stat.Min, stat.Max, "Mean:", stat.Mean(), "Std:", stat.StandardDeviation())
	}

	if hist {
		logIntensities := make([]float64, 0, len(peptides))
		for _, pep := range peptides {
			for _, x := range pep.Intensity {
				if x > 0 {
					logIntensities = append(logIntensities, math.Log10(x))
				}
			}
		}

		if len(logIntensities) > 0 {
			fmt.Fprintln(os.Stderr, "log10 intensity distribution:")
			h := histogram.Hist(25, logIntensities)
			if err := histogram.Fprint(os.Stderr, h, histogram.Linear(5)); err != nil {
				log.Fatalln(err)
			}
		}
	}

	if samplesPath != "" {
		sheet, err := loadSampleSheet(samplesPath)
		if err != nil {
			log.Fatalln(err)
		}
		cfg.Samples = sheet
	}

	if len(cfg.Samples) > 0 && !cfg.Samples.Valid() {
		log.Fatalln("Sample display names must be unique; please fix the sample sheet or config")
	}

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

	matches := pepmap.Map(seqs, nakeds, cfg.MaxMismatches, runtime.NumCPU())

	placements := 0
	for _, ms := range matches {
		placements += len(ms)
	}
	log.Println("Placed peptides on", len(matches), "of", len(proteins), "proteins (", placements, "placements )")

	profiles := density.Profiles(matches, peptides, lengths, !unweighted)

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
	fmt.Printf("protein\tsample\tstart\tend\tlength\tscore\tp\n")

	for _, w := range windows {
		fmt.Fprintf(STDOUT, "%s\t%s\t%d\t%d\t%d\t%g\t%g\n", w.Protein, w.Sample, w.Start, w.End, w.Len(), w.Score, w.P)
	}

	rendered := 0
	for _, id := range proteinOrder {
		ms, exists := matches[id]
		if !exists || len(ms) == 0 {
			log.Println("Protein", id, "has no peptide placements; skipping")
			continue
		}
		log.Println("Protein", id, "has", len(ms), "peptide placements")

		data := immunoviz.CollectPlotData(id, lengths[id], matches, profiles, windows)

		outName := filepath.Join(outputDir, safeFileName(id)+"_peptigram."+cfg.Format)
		if err := immunoviz.WriteFigure(data, cfg, outName); err != nil {
			log.Fatalln(err)
		}
		rendered++

		if gifOut {
			g, err := immunoviz.AnimateSamples(data, cfg)
			if err != nil {
				log.Fatalln(err)
			}
			if err := immunoviz.SaveGIF(g, filepath.Join(outputDir, safeFileName(id)+"_peptigram.gif")); err != nil {
				log.Fatalln(err)
			}
		}

		if heatmapOut {
			img, err := immunoviz.Heatmap(data, cfg)
			if err != nil {
				log.Fatalln(err)
			}
			if err := immunoviz.SavePNG(img, filepath.Join(outputDir, safeFileName(id)+"_heatmap.png")); err != nil {
				log.Fatalln(err)
			}
		}
	}

	if profilesOut {
		for _, p := range profiles {
			png, err := immunoviz.ProfilePNG(p, 0, 0)
			if err != nil {
				log.Fatalln(err)
			}

			outName := filepath.Join(outputDir, safeFileName(p.Protein)+"_"+safeFileName(p.Sample)+"_profile.png")
			if err := os.WriteFile(outName, png, 0600); err != nil {
				log.Fatalln(err)
			}
		}
		log.Println("Wrote", len(profiles), "profile sparklines")
	}

	log.Println("Rendered", rendered, "peptigrams into", outputDir)
}

// loadPeptides dispatches on the input path: a gs:// prefix ending in / is a
// batch of tables, an .xls suffix is a legacy Excel workbook, and anything
// else is delimited text.
func loadPeptides(path, layout string) ([]pepparser.Peptide, []string, error) {
	if strings.HasPrefix(path, "gs://") && strings.HasSuffix(path, "/") {
		tables, err := protpeptigram.ListFromGoogleStorage(path, client)
		if err != nil {
			return nil, nil, err
		}
		if len(tables) == 0 {
			return nil, nil, fmt.Errorf("no tables found under %s", path)
		}

		var out []pepparser.Peptide
		var samples []string
		seen := make(map[string]struct{})
		for _, table := range tables {
			peps, names, err := pepparser.LoadTable(table, layout, client)
			if err != nil {
				return nil, nil, err
			}
			log.Println("Loaded", len(peps), "peptide rows from", table)

			out = append(out, peps...)
			for _, name := range names {
				if _, exists := seen[name]; exists {
					continue
				}
				seen[name] = struct{}{}
				samples = append(samples, name)
			}
		}

		return out, samples, nil
	}

	if strings.HasSuffix(strings.ToLower(path), ".xls") {
		return pepparser.LoadXLS(path, layout)
	}

	return pepparser.LoadTable(path, layout, client)
}

// safeFileName keeps UniProt-style accessions (sp|P01903|DRA_HUMAN) from
// scattering output across directories.
func safeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return strings.ReplaceAll(name, "|", "_")
}
