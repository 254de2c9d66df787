package immunoviz

import (
	"image/color"
	"testing"
)

func TestColorForMismatches(t *testing.T) {
	pal := DefaultPalette()

	for _, v := range []struct {
		Mismatches int
		Max        int
		Gradient   bool
		Want       color.RGBA
	}{
		{0, 3, true, color.RGBA{0xdd, 0x22, 0x22, 0xff}},
		{0, 0, false, color.RGBA{0xdd, 0x22, 0x22, 0xff}},
		{2, 3, false, color.RGBA{0xff, 0xaa, 0x22, 0xff}},
		{1, 2, true, color.RGBA{0xff, 0x77, 0x22, 0xff}},
		{3, 3, true, color.RGBA{0xff, 0xaa, 0x22, 0xff}},
		{5, 3, true, color.RGBA{0xff, 0xaa, 0x22, 0xff}},
	} {
		got, err := ColorForMismatches(v.Mismatches, v.Max, v.Gradient, pal)
		if err != nil {
			t.Fatal(err)
		}
		if got != v.Want {
			t.Errorf("ColorForMismatches(%d, %d, %t): got %+v, want %+v", v.Mismatches, v.Max, v.Gradient, got, v.Want)
		}
	}
}

func TestColorForMismatchesRejectsBadHex(t *testing.T) {
	pal := DefaultPalette()
	pal.ExactMatch = "notacolor"

	if _, err := ColorForMismatches(0, 3, true, pal); err == nil {
		t.Error("expected error for malformed hex color")
	}
}

func TestLerpRGBAEndpoints(t *testing.T) {
	a := color.RGBA{0x00, 0x00, 0x00, 0xff}
	b := color.RGBA{0xff, 0xff, 0xff, 0xff}

	if got := lerpRGBA(a, b, 0); got != a {
		t.Errorf("t=0: got %+v, want %+v", got, a)
	}
	if got := lerpRGBA(a, b, 1); got != b {
		t.Errorf("t=1: got %+v, want %+v", got, b)
	}

	mid := lerpRGBA(a, b, 0.5)
	if mid.R != 0x80 || mid.G != 0x80 || mid.B != 0x80 {
		t.Errorf("t=0.5: got %+v", mid)
	}
}

func TestSampleColorFallsBackByPosition(t *testing.T) {
	got, err := sampleColor(Sample{Sample: "T1"}, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := color.RGBA{0x1f, 0x77, 0xb4, 0xff}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
