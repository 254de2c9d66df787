package main

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"golang.org/x/net/html/charset"
)

const entryXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<uniprot xmlns="http://uniprot.org/uniprot">
  <entry dataset="Swiss-Prot">
    <accession>P01903</accession>
    <accession>Q29847</accession>
    <name>DRA_HUMAN</name>
    <protein>
      <recommendedName>
        <fullName>HLA class II histocompatibility antigen, DR alpha chain</fullName>
      </recommendedName>
    </protein>
    <organism>
      <name type="scientific">Homo sapiens</name>
      <name type="common">Human</name>
    </organism>
    <sequence length="24">MAISGVPVLG
FFIIAVLMSA QESW</sequence>
  </entry>
</uniprot>`

func decodeFixture(t *testing.T) UniProtXML {
	t.Helper()

	var doc UniProtXML
	decoder := xml.NewDecoder(bytes.NewReader([]byte(entryXML)))
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&doc); err != nil {
		t.Fatalf("Decoding fixture: %v", err)
	}

	return doc
}

func TestFastaHeader(t *testing.T) {
	doc := decodeFixture(t)
	if len(doc.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(doc.Entries))
	}
	entry := doc.Entries[0]

	full := fastaHeader(entry, true)
	want := "sp|P01903|DRA_HUMAN HLA class II histocompatibility antigen, DR alpha chain OS=Homo sapiens"
	if full != want {
		t.Errorf("Expected %q, got %q", want, full)
	}

	bare := fastaHeader(entry, false)
	if bare != "sp|P01903|DRA_HUMAN" {
		t.Errorf("Expected bare header, got %q", bare)
	}
}

func TestFastaHeaderTrEMBL(t *testing.T) {
	doc := decodeFixture(t)
	entry := doc.Entries[0]
	entry.Dataset = "TrEMBL"
	entry.Protein.RecommendedName.FullName = ""
	entry.Protein.SubmittedName = []struct {
		FullName string `xml:"fullName"`
	}{{FullName: "Uncharacterized protein"}}

	got := fastaHeader(entry, true)
	want := "tr|P01903|DRA_HUMAN Uncharacterized protein OS=Homo sapiens"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCleanSequenceAndWrap(t *testing.T) {
	doc := decodeFixture(t)
	seq := cleanSequence(doc.Entries[0].Sequence.Text)
	if seq != "MAISGVPVLGFFIIAVLMSAQESW" {
		t.Errorf("Unexpected cleaned sequence: %q", seq)
	}

	lines := wrap(seq, 10)
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "MAISGVPVLG" || lines[2] != "QESW" {
		t.Errorf("Unexpected wrapping: %v", lines)
	}
	if strings.Join(lines, "") != seq {
		t.Error("Wrapping lost residues")
	}
}
