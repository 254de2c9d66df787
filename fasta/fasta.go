// Package fasta reads protein sequences from FASTA files, whether local,
// http(s)://, or gs:// hosted, with transparent decompression.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/lilab-monash/protpeptigram"
)

// Record is one protein: the ID is the first whitespace-delimited token of
// the header line, the Description is the remainder.
type Record struct {
	ID          string
	Description string
	Seq         string
}

type Reader struct {
	path    string
	scanner *bufio.Scanner

	// Pending header carried between Read calls
	nextID   string
	nextDesc string
	done     bool
	sawAny   bool

	err error
}

// Open prepares a FASTA reader over a local path.
func Open(path string) (*Reader, error) {
	return OpenWithClient(path, nil)
}

// OpenWithClient additionally permits gs:// and http(s):// paths.
func OpenWithClient(path string, client *storage.Client) (*Reader, error) {
	data, err := protpeptigram.OpenFileOrURL(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r := &Reader{
		path:    path,
		scanner: bufio.NewScanner(bytes.NewReader(data)),
	}

	// Sequence lines can be very long when exported unwrapped.
	buf := make([]byte, 64*1024)
	r.scanner.Buffer(buf, 64*1024*1024)

	return r, nil
}

func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}

	return r.scanner.Err()
}

// Read returns the next record, or nil when the file is exhausted. Records
// with empty sequences are skipped.
func (r *Reader) Read() *Record {
	for {
		rec := r.readOne()
		if rec == nil {
			return nil
		}
		if rec.Seq == "" {
			continue
		}
		return rec
	}
}

func (r *Reader) readOne() *Record {
	if r.done {
		return nil
	}

	var seq strings.Builder
	id, desc := r.nextID, r.nextDesc

	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			nextID, nextDesc := splitHeader(line[1:])

			if id == "" && seq.Len() == 0 {
				// First header of the file
				id, desc = nextID, nextDesc
				r.sawAny = true
				continue
			}

			r.nextID, r.nextDesc = nextID, nextDesc
			return &Record{ID: id, Description: desc, Seq: cleanSequence(seq.String())}
		}

		if id == "" {
			r.err = fmt.Errorf("%s: sequence data before any FASTA header", r.path)
			return nil
		}

		seq.WriteString(line)
	}

	r.done = true

	if !r.sawAny {
		r.err = fmt.Errorf("%s: no FASTA records found", r.path)
		return nil
	}

	if id == "" {
		return nil
	}

	return &Record{ID: id, Description: desc, Seq: cleanSequence(seq.String())}
}

// ReadAll loads the whole file into a map keyed by record ID, preserving the
// input order of the IDs separately, since map iteration order would
// otherwise scramble batch outputs run-to-run.
func ReadAll(path string, client *storage.Client) (map[string]Record, []string, error) {
	r, err := OpenWithClient(path, client)
	if err != nil {
		return nil, nil, err
	}

	records := make(map[string]Record)
	order := make([]string, 0)

	for {
		rec := r.Read()
		if rec == nil {
			break
		}
		if _, exists := records[rec.ID]; exists {
			return nil, nil, fmt.Errorf("%s: duplicate FASTA ID %s", path, rec.ID)
		}
		records[rec.ID] = *rec
		order = append(order, rec.ID)
	}
	if err := r.Err(); err != nil {
		return nil, nil, err
	}

	return records, order, nil
}

func splitHeader(header string) (id, desc string) {
	header = strings.TrimSpace(header)
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		return header[:i], strings.TrimSpace(header[i+1:])
	}

	return header, ""
}

// cleanSequence uppercases and drops a trailing stop codon marker.
func cleanSequence(seq string) string {
	seq = strings.ToUpper(seq)
	seq = strings.TrimSuffix(seq, "*")

	return seq
}
