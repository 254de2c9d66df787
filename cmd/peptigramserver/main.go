// peptigramserver serves peptide coverage maps over HTTP. The peptide table
// and FASTA are parsed once at startup; figures, density charts, and
// thumbnails are rendered on demand and memoized.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"runtime"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/lilab-monash/protpeptigram"
	_ "github.com/lilab-monash/protpeptigram/buildinfoprint"
	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/fasta"
	"github.com/lilab-monash/protpeptigram/immunoviz"
	"github.com/lilab-monash/protpeptigram/pepmap"
	"github.com/lilab-monash/protpeptigram/pepparser"
	"github.com/lilab-monash/protpeptigram/ramcsv"
)

var global *Global

func init() {
	// Prevent seed re-use
	rand.Seed(int64(time.Now().Nanosecond()))
}

func main() {
	errors := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig,
		os.Interrupt,
		os.Kill,
		syscall.SIGTERM,
		syscall.SIGUSR1,
	)

	var peptidePath, fastaPath, layout, configPath string
	var maxMismatches, port, pageSize int
	flag.StringVar(&peptidePath, "peptides", "", "Path to the peptide table (.csv, .tsv, .gz, or .xls; local, http(s)://, or gs://). A gs:// prefix ending in / loads every table below it.")
	flag.StringVar(&fastaPath, "fasta", "", "Path to the protein FASTA (local, http(s)://, or gs://)")
	flag.StringVar(&layout, "layout", "PEAKS", fmt.Sprint("Layout of your peptide table. Currently, options include: ", pepparser.LayoutNames()))
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a figure config JSON controlling sizes, colors, and sample display names.")
	flag.IntVar(&maxMismatches, "max-mismatches", 0, "Residue mismatches tolerated when placing a peptide on a protein")
	flag.IntVar(&port, "port", 9019, "Port for HTTP server")
	flag.IntVar(&pageSize, "page-size", 50, "Rows per page in the raw table browser")
	flag.Parse()

	if peptidePath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --peptides")
	}
	if fastaPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --fasta")
	}

	var sclient *storage.Client
	var err error

	if strings.HasPrefix(peptidePath, "gs://") || strings.HasPrefix(fastaPath, "gs://") {
		sclient, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	cfg := immunoviz.DefaultConfig()
	if configPath != "" {
		cfg, err = immunoviz.ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}
	cfg.MaxMismatches = maxMismatches
	// Every figure sits on a page that already names the protein
	cfg.ShowTitle = false

	global = &Global{
		Site:          "ProtPeptigram",
		log:           log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),
		storageClient: sclient,

		PeptidePath: peptidePath,
		FastaPath:   fastaPath,
		PageSize:    pageSize,
		cfg:         cfg,
	}

	if err := loadResults(global, layout); err != nil {
		log.Fatalln(err)
	}

	global.log.Println("Launching", global.Site)

	whoami, err := user.Current()
	if err != nil {
		log.Fatalln(err)
	}
	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalln(err)
	}

	global.log.Println("Locally, you should now run:")
	global.log.Printf("gcloud compute ssh %s@%s -- -NnT -L %d:localhost:%d\n", whoami.Username, hostname, port, port)

	go func() {
		global.log.Println("Starting HTTP server on port", port)

		routing, err := router(global)
		if err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}

		if err := http.ListenAndServe(fmt.Sprintf(`:%d`, port), routing); err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}
	}()

Outer:
	for {
		select {
		case sigl := <-sig:

			if sigl == syscall.SIGUSR1 {
				SigStatus()
				continue
			}

			// By default, exit
			global.log.Printf("\nExit: %s\n", sigl.String())

			break Outer

		case err := <-errors:
			if err == nil {
				global.log.Println("Finished")
				break Outer
			}

			// Return a status code indicating failure
			global.log.Println("Exiting due to error", err)
			os.Exit(1)
		}
	}
}

func SigStatus() {
	global.log.Println("There are", runtime.NumGoroutine(), "goroutines running")
}

// loadResults parses the inputs and precomputes everything the handlers
// serve: placements, density profiles, and core windows.
func loadResults(g *Global, layout string) error {
	peptides, sampleNames, err := loadPeptides(g.PeptidePath, layout, g.storageClient)
	if err != nil {
		return err
	}

	proteins, proteinOrder, err := fasta.ReadAll(g.FastaPath, g.storageClient)
	if err != nil {
		return err
	}

	g.log.Println("Loaded", len(proteins), "proteins and", len(peptides), "peptide rows")

	if len(g.cfg.Samples) == 0 {
		g.cfg.Samples = immunoviz.SampleMapFromNames(sampleNames)
	} else if !g.cfg.Samples.Valid() {
		return fmt.Errorf("sample display names in %s are not unique", g.cfg.ConfigPath)
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

	matches := pepmap.Map(seqs, nakeds, g.cfg.MaxMismatches, runtime.NumCPU())

	placements := 0
	for _, ms := range matches {
		placements += len(ms)
	}
	g.log.Println("Placed peptides at", placements, "protein positions")

	profiles := density.Profiles(matches, peptides, lengths, true)

	windows := make([]density.Window, 0)
	for _, p := range profiles {
		ws, err := density.CoreWindows(p, density.DefaultOptions)
		if err != nil {
			return err
		}
		windows = append(windows, ws...)
	}
	g.log.Println("Extracted", len(windows), "core windows")

	g.proteins = proteins
	g.proteinOrder = proteinOrder
	g.lengths = lengths
	g.peptides = peptides
	g.sampleNames = sampleNames
	g.matches = matches
	g.profiles = profiles
	g.windows = windows
	g.LoadedAt = time.Now()

	// The raw-row browser re-reads the table file by byte offset, so it is
	// only wired up for a local uncompressed delimited file.
	if !strings.HasPrefix(g.PeptidePath, "gs://") &&
		!strings.HasSuffix(strings.ToLower(g.PeptidePath), ".xls") &&
		!strings.HasSuffix(strings.ToLower(g.PeptidePath), ".gz") {
		f, err := os.Open(protpeptigram.ExpandHome(g.PeptidePath))
		if err != nil {
			return pfx.Err(err)
		}

		rdr := csv.NewReader(f)
		rdr.Comma = protpeptigram.DetermineDelimiter(f)
		rdr.LazyQuotes = true
		rdr.FieldsPerRecord = -1

		g.rows, err = ramcsv.New(f, rdr)
		if err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}

func loadPeptides(path, layout string, client *storage.Client) ([]pepparser.Peptide, []string, error) {
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
