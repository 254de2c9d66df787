package protpeptigram

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// The 20 standard residues plus the ambiguity codes B, J, X, Z and U/O
// (selenocysteine/pyrrolysine), which do appear in search-engine output.
const residueAlphabet = "ACDEFGHIKLMNPQRSTVWYBJXZUO"

// PeptideList reads peptide-per-line text files of the kind produced by
// exporting a sequence column from a search engine.
type PeptideList struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

func OpenPeptideList(path string) (*PeptideList, error) {
	pl := &PeptideList{
		path: path,
	}

	file, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, err
	}
	pl.file = file
	pl.scanner = bufio.NewScanner(file)

	return pl, nil
}

func (p *PeptideList) Close() error {
	return p.file.Close()
}

func (p *PeptideList) Err() error {
	if p.err != nil {
		return p.err
	}

	return p.scanner.Err()
}

// Read returns the next non-blank peptide, uppercased, or "" when the list is
// exhausted or invalid input was seen (check Err).
func (p *PeptideList) Read() string {
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" {
			continue
		}

		peptide := strings.ToUpper(line)
		if err := ValidatePeptide(peptide); err != nil {
			p.err = err
			return ""
		}

		return peptide
	}

	return ""
}

// ReadAll consumes the remainder of the list.
func (p *PeptideList) ReadAll() ([]string, error) {
	out := make([]string, 0)
	for {
		peptide := p.Read()
		if peptide == "" {
			break
		}
		out = append(out, peptide)
	}

	return out, p.Err()
}

// ValidatePeptide confirms that every character is a plausible residue code.
func ValidatePeptide(peptide string) error {
	if peptide == "" {
		return fmt.Errorf("empty peptide")
	}

	for i := 0; i < len(peptide); i++ {
		if !strings.ContainsRune(residueAlphabet, rune(peptide[i])) {
			return fmt.Errorf("peptide %q: character %q at position %d is not a residue code", peptide, peptide[i], i+1)
		}
	}

	return nil
}
