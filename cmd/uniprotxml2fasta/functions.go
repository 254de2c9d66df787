package main

import "strings"

// fastaHeader renders the conventional UniProt FASTA header:
// db|ACCESSION|ENTRY_NAME Protein name OS=Organism
func fastaHeader(entry UniProtEntry, includeDescription bool) string {
	db := "tr"
	if strings.EqualFold(entry.Dataset, "Swiss-Prot") {
		db = "sp"
	}

	header := db + "|" + entry.Accession[0] + "|" + entry.Name[0]

	if !includeDescription {
		return header
	}

	if name := proteinName(entry); name != "" {
		header += " " + name
	}

	if organism := scientificName(entry); organism != "" {
		header += " OS=" + organism
	}

	return header
}

// proteinName prefers the recommended name, falling back to the first
// submitted name.
func proteinName(entry UniProtEntry) string {
	if name := strings.TrimSpace(entry.Protein.RecommendedName.FullName); name != "" {
		return name
	}

	for _, sub := range entry.Protein.SubmittedName {
		if name := strings.TrimSpace(sub.FullName); name != "" {
			return name
		}
	}

	return ""
}

func scientificName(entry UniProtEntry) string {
	for _, name := range entry.Organism.Names {
		if name.Type == "scientific" {
			return strings.TrimSpace(name.Text)
		}
	}

	return ""
}

// cleanSequence removes the whitespace UniProt wraps sequences with.
func cleanSequence(seq string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, strings.ToUpper(seq))
}

// wrap splits seq into width-character lines.
func wrap(seq string, width int) []string {
	out := make([]string, 0, 1+len(seq)/width)
	for start := 0; start < len(seq); start += width {
		end := start + width
		if end > len(seq) {
			end = len(seq)
		}
		out = append(out, seq[start:end])
	}

	return out
}
