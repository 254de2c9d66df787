package pepparser

import (
	"bufio"
	"io"
	"strings"
)

// QuoteFixReader transparently replaces the invalid \" escape that some
// table exporters emit with the "" doubling that encoding/csv expects.
type QuoteFixReader struct {
	r        *bufio.Reader
	leftover *strings.Reader
	err      error
}

func NewQuoteFixReader(r io.Reader) *QuoteFixReader {
	return &QuoteFixReader{r: bufio.NewReader(r), leftover: &strings.Reader{}}
}

func (m *QuoteFixReader) Read(p []byte) (n int, err error) {
	if m.leftover.Len() == 0 {
		if m.err != nil {
			return 0, m.err
		}

		line, err := m.r.ReadString('\n')
		line = strings.ReplaceAll(line, "\\\"", "\"\"")
		if err != nil {
			// Hold the error until any final unterminated line has
			// been delivered
			m.err = err
			if line == "" {
				return 0, err
			}
		}
		m.leftover = strings.NewReader(line)
	}

	return m.leftover.Read(p)
}
