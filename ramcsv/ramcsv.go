// Package ramcsv indexes a delimited file by byte offset so that individual
// rows can be re-read on demand without holding the whole table in memory.
// The result browser uses it to page through peptide tables of arbitrary
// size.
package ramcsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
)

type locator struct {
	Offset int64
	Length int
}

type Table struct {
	m    []locator   // maps row numbers (key) to Offset and Length (value)
	rdr  *csv.Reader // to store settings
	file *os.File
}

// New scans the file once to record each row's offset and length. The
// csv.Reader is never read from; it only carries the parser settings applied
// when rows are fetched.
func New(file *os.File, rdr *csv.Reader) (*Table, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	t := Table{
		m:    make([]locator, 0),
		rdr:  rdr,
		file: file,
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 64*1024*1024)
	scanner.Split(scanRowsNondestructive)

	var offset int64
	for scanner.Scan() {
		b := scanner.Bytes()

		t.m = append(t.m, locator{
			Offset: offset,
			Length: len(b),
		})

		offset += int64(len(b))
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return &t, nil
}

// Len reports the number of rows, including any header row.
func (t *Table) Len() int {
	return len(t.m)
}

// Read fetches and parses one row by number.
func (t *Table) Read(row int) ([]string, error) {
	if row < 0 || row >= len(t.m) {
		return nil, fmt.Errorf("row %d is outside the table (%d rows)", row, len(t.m))
	}

	val := make([]byte, t.m[row].Length)
	if _, err := t.file.ReadAt(val, t.m[row].Offset); err != nil {
		return nil, pfx.Err(err)
	}

	csvr := csv.NewReader(bytes.NewBuffer(val))
	csvr.Comma = t.rdr.Comma
	csvr.Comment = t.rdr.Comment
	csvr.FieldsPerRecord = t.rdr.FieldsPerRecord
	csvr.LazyQuotes = t.rdr.LazyQuotes
	csvr.ReuseRecord = t.rdr.ReuseRecord
	csvr.TrimLeadingSpace = t.rdr.TrimLeadingSpace

	return csvr.Read()
}

// ReadRange fetches up to count rows starting at from, clamping at the end
// of the table.
func (t *Table) ReadRange(from, count int) ([][]string, error) {
	if from < 0 || from >= len(t.m) {
		return nil, fmt.Errorf("row %d is outside the table (%d rows)", from, len(t.m))
	}

	end := from + count
	if end > len(t.m) {
		end = len(t.m)
	}

	out := make([][]string, 0, end-from)
	for row := from; row < end; row++ {
		fields, err := t.Read(row)
		if err != nil {
			return nil, err
		}
		out = append(out, fields)
	}

	return out, nil
}

// scanRowsNondestructive does not destroy the \n or the possible \r\n from a
// line, so that offsets stay byte-accurate.
func scanRowsNondestructive(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		// We have a full newline-terminated line.
		return i + 1, data[0 : i+1], nil
	}
	// If we're at EOF, we have a final, non-terminated line. Return it.
	if atEOF {
		return len(data), data, nil
	}
	// Request more data.
	return 0, nil, nil
}
