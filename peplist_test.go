package protpeptigram

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPeptideListSkipsBlanksAndUppercases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peptides.txt")
	if err := os.WriteFile(path, []byte("SIINFEKL\n\n  \nglctlvaml\nNLVPMVATV"), 0600); err != nil {
		t.Fatal(err)
	}

	pl, err := OpenPeptideList(path)
	if err != nil {
		t.Fatal(err)
	}
	defer pl.Close()

	got, err := pl.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"SIINFEKL", "GLCTLVAML", "NLVPMVATV"}
	if len(got) != len(want) {
		t.Fatalf("read %d peptides, expected %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("peptide %d: got %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestPeptideListRejectsNonResidues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peptides.txt")
	if err := os.WriteFile(path, []byte("SIINFEKL\nSIINF3KL\n"), 0600); err != nil {
		t.Fatal(err)
	}

	pl, err := OpenPeptideList(path)
	if err != nil {
		t.Fatal(err)
	}
	defer pl.Close()

	if _, err := pl.ReadAll(); err == nil {
		t.Fatal("expected an error for the digit in SIINF3KL")
	}
}

func TestValidatePeptide(t *testing.T) {
	for _, v := range []struct {
		peptide string
		ok      bool
	}{
		{"SIINFEKL", true},
		{"ACDEFGHIKLMNPQRSTVWY", true},
		{"PEPTIDEX", true}, // X is a valid ambiguity code
		{"", false},
		{"SIINFEKL1", false},
		{"SIINF*KL", false},
	} {
		err := ValidatePeptide(v.peptide)
		if v.ok && err != nil {
			t.Errorf("ValidatePeptide(%q): unexpected error %v", v.peptide, err)
		}
		if !v.ok && err == nil {
			t.Errorf("ValidatePeptide(%q): expected an error", v.peptide)
		}
	}
}
