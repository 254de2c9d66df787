package pepparser

import (
	"io"
	"strings"
	"testing"
)

func TestLoadPEAKSTable(t *testing.T) {
	table := `Peptide,RT,Mass,Protein Accession,Intensity Tumor,Intensity Normal
K.LSEPAELTDAVK.H,28.44,1272.65,P01903,1.5e6,2e5
NLVPMVATV,41.2,942.51,P06725:P01903,-,3e4
(+42.01),10.0,100.0,P99999,1,1
`

	parser, err := New("PEAKS")
	if err != nil {
		t.Fatal(err)
	}

	peptides, samples, err := parser.Load(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}

	if len(samples) != 2 || samples[0] != "Tumor" || samples[1] != "Normal" {
		t.Errorf("samples = %v", samples)
	}

	// The annotation-only row has no residues and is skipped
	if len(peptides) != 2 {
		t.Fatalf("expected 2 peptides, got %d", len(peptides))
	}

	if peptides[0].Naked != "LSEPAELTDAVK" {
		t.Errorf("first naked = %q", peptides[0].Naked)
	}
	if peptides[1].Intensity["Normal"] != 3e4 {
		t.Errorf("second Normal intensity = %v", peptides[1].Intensity["Normal"])
	}
	if _, ok := peptides[1].Intensity["Tumor"]; ok {
		t.Error("dash intensity should be absent")
	}
}

func TestLoadRepairsBackslashQuotes(t *testing.T) {
	table := "Peptide,Protein Accession,Intensity A\n" +
		"\"K.SIINFEKL.R\",\"sp|P01903|\\\"DRA\\\"\",5\n"

	parser, err := New("PEAKS")
	if err != nil {
		t.Fatal(err)
	}

	peptides, _, err := parser.Load(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}

	if len(peptides) != 1 {
		t.Fatalf("expected 1 peptide, got %d", len(peptides))
	}
	if peptides[0].Proteins[0] != `sp|P01903|"DRA"` {
		t.Errorf("accession = %q", peptides[0].Proteins[0])
	}
}

func TestQuoteFixReaderStreams(t *testing.T) {
	in := "a,\\\"b\\\"\nplain line\nno trailing newline \\\""
	want := "a,\"\"b\"\"\nplain line\nno trailing newline \"\""

	got, err := io.ReadAll(NewQuoteFixReader(strings.NewReader(in)))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilterContaminants(t *testing.T) {
	peptides := []Peptide{
		{Naked: "AAAA", Proteins: []string{"P01903", "CON__P02533"}},
		{Naked: "CCCC", Proteins: []string{"CON__P02533"}},
		{Naked: "DDDD", Proteins: []string{"sp|P13645|K1C10_HUMAN Keratin"}},
		{Naked: "EEEE", Proteins: []string{"P06725"}},
	}

	out := FilterContaminants(peptides, nil)

	if len(out) != 2 {
		t.Fatalf("expected 2 peptides after filtering, got %d", len(out))
	}
	if out[0].Naked != "AAAA" || len(out[0].Proteins) != 1 || out[0].Proteins[0] != "P01903" {
		t.Errorf("first survivor = %+v", out[0])
	}
	if out[1].Naked != "EEEE" {
		t.Errorf("second survivor = %+v", out[1])
	}

	// Custom patterns override the defaults entirely
	out = FilterContaminants(peptides, []string{"P06725"})
	if len(out) != 3 {
		t.Errorf("custom patterns: expected 3 peptides, got %d", len(out))
	}
}

func TestRunningIntensityStats(t *testing.T) {
	peptides := []Peptide{
		{Intensity: map[string]float64{"A": 2, "B": 10}},
		{Intensity: map[string]float64{"A": 4}},
		{Intensity: map[string]float64{"A": 6}},
	}

	stats := RunningIntensityStats(peptides)

	a, ok := stats["A"]
	if !ok {
		t.Fatal("no stats for sample A")
	}
	if a.Mean() != 4 {
		t.Errorf("A mean = %v", a.Mean())
	}
	if a.Min != 2 || a.Max != 6 {
		t.Errorf("A min/max = %v/%v", a.Min, a.Max)
	}

	if b := stats["B"]; b.Mean() != 10 {
		t.Errorf("B mean = %v", b.Mean())
	}
}
