// uniprotxml2fasta converts UniProtKB XML into FASTA so that proteome subsets
// downloaded as XML can feed the peptide mapping tools directly.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/net/html/charset"

	"github.com/lilab-monash/protpeptigram"
	_ "github.com/lilab-monash/protpeptigram/buildinfoprint"
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
		input              string
		includeDescription bool
	)

	flag.StringVar(&input, "input", "", "Path to the UniProtKB XML (local, http(s)://, or gs://)")
	flag.BoolVar(&includeDescription, "include-description", true, "Append the protein name and organism to each FASTA header")
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

	data, err := protpeptigram.OpenFileOrURL(input, client)
	if err != nil {
		log.Fatalln(err)
	}

	// Because UniProt downloads are not guaranteed to be UTF-8, we need to
	// use the charset.NewReaderLabel
	var doc UniProtXML
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&doc); err != nil {
		log.Fatalln(err)
	}

	written := 0
	for _, entry := range doc.Entries {
		if len(entry.Accession) == 0 || len(entry.Name) == 0 {
			log.Println("Skipping an entry with no accession or name")
			continue
		}

		seq := cleanSequence(entry.Sequence.Text)
		if seq == "" {
			log.Println("Skipping", entry.Accession[0], "with an empty sequence")
			continue
		}

		fmt.Fprintln(STDOUT, ">"+fastaHeader(entry, includeDescription))
		for _, line := range wrap(seq, 60) {
			fmt.Fprintln(STDOUT, line)
		}
		written++
	}

	log.Println("Wrote", written, "of", len(doc.Entries), "entries as FASTA")
}
