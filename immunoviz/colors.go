package immunoviz

import (
	"image/color"
	"math"
	"strings"

	"github.com/icza/gox/imagex/colorx"
)

// Palette holds the figure's fixed colors as RGB hex strings.
type Palette struct {
	Background   string `json:"background"`
	ProteinTrack string `json:"protein_track"`
	ProteinEdge  string `json:"protein_edge"`
	ExactMatch   string `json:"exact_match"`
	MutatedMid   string `json:"mutated_mid"`
	Mutated      string `json:"mutated"`
	Text         string `json:"text"`
	Axis         string `json:"axis"`
	Window       string `json:"window"`
}

// DefaultPalette carries the publication colors: a light pink protein track,
// red exact-match bars, and an orange ramp for mutated matches.
func DefaultPalette() Palette {
	return Palette{
		Background:   "#ffffff",
		ProteinTrack: "#ffe6e6",
		ProteinEdge:  "#ffcccc",
		ExactMatch:   "#dd2222",
		MutatedMid:   "#ff7722",
		Mutated:      "#ffaa22",
		Text:         "#333333",
		Axis:         "#999999",
		Window:       "#dd2222",
	}
}

func (p Palette) lowercased() Palette {
	p.Background = strings.ToLower(p.Background)
	p.ProteinTrack = strings.ToLower(p.ProteinTrack)
	p.ProteinEdge = strings.ToLower(p.ProteinEdge)
	p.ExactMatch = strings.ToLower(p.ExactMatch)
	p.MutatedMid = strings.ToLower(p.MutatedMid)
	p.Mutated = strings.ToLower(p.Mutated)
	p.Text = strings.ToLower(p.Text)
	p.Axis = strings.ToLower(p.Axis)
	p.Window = strings.ToLower(p.Window)

	return p
}

// DefaultSampleColors cycle across density traces when a sample has no
// configured color.
var DefaultSampleColors = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// ColorForMismatches picks the bar color for a match. Exact matches use the
// palette's red. When gradient is set, mismatch counts ramp from the exact
// color through the midpoint to the mutated color; otherwise every inexact
// match shares the mutated color.
func ColorForMismatches(mismatches, maxMismatches int, gradient bool, pal Palette) (color.RGBA, error) {
	if mismatches < 1 {
		return colorx.ParseHexColor(pal.ExactMatch)
	}

	if !gradient || maxMismatches < 1 {
		return colorx.ParseHexColor(pal.Mutated)
	}

	lo, err := colorx.ParseHexColor(pal.ExactMatch)
	if err != nil {
		return color.RGBA{}, err
	}
	mid, err := colorx.ParseHexColor(pal.MutatedMid)
	if err != nil {
		return color.RGBA{}, err
	}
	hi, err := colorx.ParseHexColor(pal.Mutated)
	if err != nil {
		return color.RGBA{}, err
	}

	t := float64(mismatches) / float64(maxMismatches)
	if t > 1 {
		t = 1
	}

	// Two-segment ramp through the midpoint
	if t <= 0.5 {
		return lerpRGBA(lo, mid, 2*t), nil
	}

	return lerpRGBA(mid, hi, 2*t-1), nil
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}

	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 255,
	}
}

// sampleColor resolves a sample's configured color, falling back to the
// default cycle by position.
func sampleColor(s Sample, position int) (color.RGBA, error) {
	code := s.Color
	if code == "" {
		code = DefaultSampleColors[position%len(DefaultSampleColors)]
	}

	return colorx.ParseHexColor(code)
}

// withAlpha returns the color at the given opacity.
func withAlpha(c color.RGBA, alpha uint8) color.RGBA {
	c.A = alpha

	return c
}
