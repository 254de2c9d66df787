package density

import (
	"math"
	"testing"
)

func TestSmoothFlattensSpike(t *testing.T) {
	values := []float64{1, 1, 1, 50, 1, 1, 1}

	smoothed, err := Smooth(values, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Median of {1, 1, 50} at the spike is 1
	if smoothed[3] != 1 {
		t.Errorf("spike smoothed to %v, want 1", smoothed[3])
	}
	if len(smoothed) != len(values) {
		t.Errorf("length changed: %d -> %d", len(values), len(smoothed))
	}
}

func TestSmoothDoesNotWrap(t *testing.T) {
	// A hot C-terminus must not bleed into the N-terminus via the ring
	values := []float64{0, 0, 0, 0, 100, 100, 100}

	smoothed, err := Smooth(values, 2, 0)
	if err != nil {
		t.Fatal(err)
	}

	if smoothed[0] != 0 {
		t.Errorf("first residue = %v, want 0 (no wraparound)", smoothed[0])
	}
	if smoothed[len(smoothed)-1] != 100 {
		t.Errorf("last residue = %v, want 100", smoothed[len(smoothed)-1])
	}
}

func TestSmoothDiscardExtremes(t *testing.T) {
	values := []float64{5, 5, 1000, 5, 5}

	// Window of 2 per side, dropping the most extreme value on each end:
	// at the center the window is the whole slice, trimmed of 1000 and one 5
	smoothed, err := Smooth(values, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	if smoothed[2] != 5 {
		t.Errorf("center = %v, want 5 after trimming", smoothed[2])
	}
}

func TestSmoothEmptyAndErrors(t *testing.T) {
	if out, err := Smooth(nil, 2, 0); err != nil || out != nil {
		t.Errorf("nil input: out=%v err=%v", out, err)
	}
	if _, err := Smooth([]float64{1, 2}, -1, 0); err == nil {
		t.Error("expected error for negative window")
	}
}

func TestLowpassAttenuates(t *testing.T) {
	values := make([]float64, 64)
	for i := range values {
		// Residue-to-residue alternation is the highest frequency a
		// profile can carry
		if i%2 == 0 {
			values[i] = 1
		}
	}

	out, err := Lowpass(values, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	var swing float64
	for i := 32; i < len(out); i++ {
		if d := math.Abs(out[i] - out[i-1]); d > swing {
			swing = d
		}
	}
	if swing > 0.5 {
		t.Errorf("post-filter swing = %v, expected attenuation below 0.5", swing)
	}

	if _, err := Lowpass(values, 0); err == nil {
		t.Error("expected error for out-of-range cutoff")
	}
}
