package immunoviz

import (
	"fmt"
	"image"
	"math"

	"github.com/carbocation/pfx"
	"github.com/fogleman/gg"
)

// Heatmap renders one protein as a samples-by-residues grid. Cell color
// ramps from the background to the sample's trace color with pooled
// intensity, so row-to-row comparisons share a scale.
func Heatmap(data PlotData, cfg JSONConfig) (image.Image, error) {
	if data.Length < 1 {
		return nil, pfx.Err(fmt.Errorf("protein %s has no length", data.Protein))
	}
	if len(data.Profiles) == 0 {
		return nil, pfx.Err(fmt.Errorf("protein %s has no density profiles to draw", data.Protein))
	}

	unit := cfg.Resolution
	if unit <= 0 {
		return nil, pfx.Err(fmt.Errorf("resolution must be positive, got %g", unit))
	}

	cols, err := parseFigureColors(cfg.Colors)
	if err != nil {
		return nil, err
	}

	samples := cfg.Samples
	if len(samples) == 0 {
		names := make([]string, 0, len(data.Profiles))
		for _, p := range data.Profiles {
			names = append(names, p.Sample)
		}
		samples = SampleMapFromNames(names)
	}
	tracks := samples.Sorted()

	rowH := 7 * unit
	rowGap := 0.8 * unit
	top := 4 * unit
	if cfg.ShowTitle {
		top += 7 * unit
	}
	left := 28 * unit
	gridH := float64(len(tracks))*rowH + float64(len(tracks)-1)*rowGap

	width := int(math.Round(cfg.WidthMM * unit))
	height := int(math.Round(top + gridH + 9*unit + 3*unit))
	if width < 1 {
		return nil, pfx.Err(fmt.Errorf("figure width %gmm is empty", cfg.WidthMM))
	}

	right := float64(width) - 8*unit
	plotW := right - left
	if plotW <= 0 {
		return nil, pfx.Err(fmt.Errorf("figure width %gmm leaves no plot area", cfg.WidthMM))
	}

	sx := plotW / float64(data.Length)
	xOf := func(residue float64) float64 { return left + residue*sx }

	maxV := 0.0
	for _, p := range data.Profiles {
		for _, v := range p.Values {
			if v > maxV {
				maxV = v
			}
		}
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(cols.background)
	dc.Clear()

	labelFace, err := fontFace(3.0*unit, false)
	if err != nil {
		return nil, err
	}

	for i, s := range tracks {
		rowTop := top + float64(i)*(rowH+rowGap)
		rowMid := rowTop + rowH/2

		trace, err := sampleColor(s, i)
		if err != nil {
			return nil, pfx.Err(err)
		}

		dc.SetFontFace(labelFace)
		dc.SetColor(cols.text)
		dc.DrawStringAnchored(s.Title(), left-1.5*unit, rowMid, 1, 0.4)

		values := data.SampleProfile(s.Sample)
		for r, v := range values {
			if v <= 0 || maxV <= 0 {
				continue
			}

			t := v / maxV
			dc.SetColor(lerpRGBA(cols.background, trace, t))
			dc.DrawRectangle(xOf(float64(r)), rowTop, sx, rowH)
			dc.Fill()
		}

		// Row outline keeps empty stretches visible
		dc.SetColor(cols.trackEdge)
		dc.SetLineWidth(0.15 * unit)
		dc.DrawRectangle(left, rowTop, plotW, rowH)
		dc.Stroke()
	}

	if err := drawAxis(dc, data.Length, cols, unit, left, right, top+gridH+0.8*unit, xOf); err != nil {
		return nil, err
	}

	if cfg.ShowTitle {
		titleFace, err := fontFace(4.2*unit, false)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(titleFace)
		dc.SetColor(cols.text)
		dc.DrawStringAnchored(data.Protein, (left+right)/2, top-3.5*unit, 0.5, 0.4)
	}

	return dc.Image(), nil
}
