package density

import (
	"testing"
)

func hotProfile() Profile {
	// 60 residues, density concentrated on 20..34 (0-based)
	values := make([]float64, 60)
	for i := 20; i < 35; i++ {
		values[i] = 10
	}
	// Scattered low-level background
	values[2] = 1
	values[50] = 1

	return Profile{Protein: "P1", Sample: "S1", Values: values}
}

func TestCoreWindowsFindsHotRegion(t *testing.T) {
	windows, err := CoreWindows(hotProfile(), Options{Smooth: 1, Quantile: 0.5, MinWindow: 5})
	if err != nil {
		t.Fatal(err)
	}

	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d: %+v", len(windows), windows)
	}

	w := windows[0]
	if w.Protein != "P1" || w.Sample != "S1" {
		t.Errorf("window identity = %s/%s", w.Protein, w.Sample)
	}
	if w.Start != 21 || w.End != 35 {
		t.Errorf("window span = [%d, %d], want [21, 35]", w.Start, w.End)
	}
	if w.Score <= 0 {
		t.Errorf("score = %v", w.Score)
	}
	if w.P >= 0.05 {
		t.Errorf("enrichment P = %v, expected a small probability", w.P)
	}
}

func TestCoreWindowsMinWindow(t *testing.T) {
	windows, err := CoreWindows(hotProfile(), Options{Smooth: 0, Quantile: 0, MinWindow: 5})
	if err != nil {
		t.Fatal(err)
	}

	// Quantile 0 keeps every covered residue, but the two isolated
	// single-residue runs fall below MinWindow
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d: %+v", len(windows), windows)
	}
	if windows[0].Start != 21 || windows[0].End != 35 {
		t.Errorf("window span = [%d, %d]", windows[0].Start, windows[0].End)
	}
}

func TestCoreWindowsEmptyProfiles(t *testing.T) {
	empty := Profile{Protein: "P", Values: nil}
	if windows, err := CoreWindows(empty, DefaultOptions); err != nil || windows != nil {
		t.Errorf("empty profile: windows=%v err=%v", windows, err)
	}

	zero := Profile{Protein: "P", Values: make([]float64, 100)}
	if windows, err := CoreWindows(zero, DefaultOptions); err != nil || windows != nil {
		t.Errorf("all-zero profile: windows=%v err=%v", windows, err)
	}
}

func TestChiSquareEnrichment(t *testing.T) {
	// A window holding a quarter of the mass in a tenth of the length
	p := ChiSquareEnrichment(25, 100, 10, 100)
	if p <= 0 || p >= 0.05 {
		t.Errorf("enriched window P = %v, want small nonzero probability", p)
	}

	// A window at exactly its expected share is not enriched
	if p := ChiSquareEnrichment(10, 100, 10, 100); p != 1 {
		t.Errorf("expected-share window P = %v, want 1", p)
	}

	// Depleted windows are not enrichment
	if p := ChiSquareEnrichment(1, 100, 10, 100); p != 1 {
		t.Errorf("depleted window P = %v, want 1", p)
	}

	if p := ChiSquareEnrichment(0, 0, 10, 100); p != 1 {
		t.Errorf("no-mass P = %v, want 1", p)
	}
}

func TestFisherWindowTest(t *testing.T) {
	// Identical contingency rows cannot be distinguished
	p := FisherWindowTest(10, 90, 10, 90)
	if p < 0.99 {
		t.Errorf("identical samples P = %v, want ~1", p)
	}

	// Strongly different coverage
	p = FisherWindowTest(40, 60, 2, 98)
	if p >= 0.01 {
		t.Errorf("divergent samples P = %v, want small", p)
	}
}
