package immunoviz

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/pepmap"
)

func testPlotData() PlotData {
	values := make([]float64, 50)
	for i := 8; i < 16; i++ {
		values[i] = float64(i % 5)
	}

	others := make([]float64, 50)
	for i := 30; i < 40; i++ {
		others[i] = 2
	}

	return PlotData{
		Protein: "sp|P01903|DRA_HUMAN",
		Length:  50,
		Matches: []pepmap.Match{
			{Peptide: "SIINFEKL", Protein: "sp|P01903|DRA_HUMAN", Start: 9, End: 16},
			{Peptide: "NLVPMVATV", Protein: "sp|P01903|DRA_HUMAN", Start: 31, End: 39, Mismatches: 1},
		},
		Profiles: []density.Profile{
			{Protein: "sp|P01903|DRA_HUMAN", Sample: "T1_norm", Values: values},
			{Protein: "sp|P01903|DRA_HUMAN", Sample: "T2_norm", Values: others},
		},
		Windows: []density.Window{
			{Protein: "sp|P01903|DRA_HUMAN", Start: 9, End: 16, Score: 2, P: 0.01},
		},
	}
}

func TestRenderImageDimensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 2

	img, err := RenderImage(testPlotData(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 360 || img.Bounds().Dy() != 240 {
		t.Errorf("got %v, want 360x240", img.Bounds())
	}
}

func TestRenderImageRejectsEmptyProtein(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := RenderImage(PlotData{Protein: "sp|P01903|DRA_HUMAN"}, cfg); err == nil {
		t.Error("expected error for zero-length protein")
	}
}

func TestRenderImageWithoutProfiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 2

	data := testPlotData()
	data.Profiles = nil
	data.Windows = nil

	if _, err := RenderImage(data, cfg); err != nil {
		t.Fatal(err)
	}
}

func TestWriteFigurePNG(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 2

	out := filepath.Join(t.TempDir(), "figure.png")
	if err := WriteFigure(testPlotData(), cfg, out); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestWriteFigureSVG(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 2

	out := filepath.Join(t.TempDir(), "figure.svg")
	if err := WriteFigure(testPlotData(), cfg, out); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("<svg")) {
		t.Error("output is not an SVG")
	}
}

func TestWriteFigureRejectsUnknownExtension(t *testing.T) {
	cfg := DefaultConfig()

	err := WriteFigure(testPlotData(), cfg, filepath.Join(t.TempDir(), "figure.tiff"))
	if err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestHeatmapDimensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 2

	img, err := Heatmap(testPlotData(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 360 {
		t.Errorf("got width %d, want 360", img.Bounds().Dx())
	}
}

func TestHeatmapRequiresProfiles(t *testing.T) {
	cfg := DefaultConfig()

	data := testPlotData()
	data.Profiles = nil

	if _, err := Heatmap(data, cfg); err == nil {
		t.Error("expected error without profiles")
	}
}

func TestProfilePNG(t *testing.T) {
	data := testPlotData()

	b, err := ProfilePNG(data.Profiles[0], 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestMakeGIF(t *testing.T) {
	frames := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 10, 10)),
		image.NewRGBA(image.Rect(0, 0, 10, 10)),
	}

	g, err := MakeGIF(frames, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Image) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(g.Image))
	}
	for _, d := range g.Delay {
		if d != 5 {
			t.Errorf("expected delay 5, got %d", d)
		}
	}
}

func TestAnimateSamples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 1

	g, err := AnimateSamples(testPlotData(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// One frame per sample
	if len(g.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(g.Image))
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))

	small := Thumbnail(img, 100)
	if small.Bounds().Dx() != 100 || small.Bounds().Dy() != 50 {
		t.Errorf("got %v, want 100x50", small.Bounds())
	}

	same := Thumbnail(img, 400)
	if same.Bounds().Dx() != 200 {
		t.Errorf("upscaling should be a no-op, got %v", same.Bounds())
	}
}
