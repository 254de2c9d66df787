package main

import (
	"sync"
	"time"

	"cloud.google.com/go/storage"

	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/fasta"
	"github.com/lilab-monash/protpeptigram/immunoviz"
	"github.com/lilab-monash/protpeptigram/pepmap"
	"github.com/lilab-monash/protpeptigram/pepparser"
	"github.com/lilab-monash/protpeptigram/ramcsv"
)

type Global struct {
	log           logger
	storageClient *storage.Client

	Site string

	PeptidePath string
	FastaPath   string
	PageSize    int
	LoadedAt    time.Time

	cfg immunoviz.JSONConfig

	// Parsed once at startup; read-only afterwards
	proteins     map[string]fasta.Record
	proteinOrder []string
	lengths      map[string]int
	peptides     []pepparser.Peptide
	sampleNames  []string
	matches      pepmap.ProteinMatches
	profiles     []density.Profile
	windows      []density.Window
	rows         *ramcsv.Table

	// Mutex protected values
	m      sync.RWMutex
	images map[string][]byte
}

// CachedImage returns the rendered figure for one protein, if any request
// has drawn it before.
func (g *Global) CachedImage(protein string) ([]byte, bool) {
	g.m.RLock()
	defer g.m.RUnlock()

	img, ok := g.images[protein]

	return img, ok
}

func (g *Global) CacheImage(protein string, png []byte) {
	g.m.Lock()
	defer g.m.Unlock()

	if g.images == nil {
		g.images = make(map[string][]byte)
	}

	g.images[protein] = png
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
