package immunoviz

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/fogleman/gg"
	"github.com/icza/gox/imagex/colorx"
	"github.com/tdewolff/canvas"
)

// Bar and row geometry in track units: the protein track spans 0-1, each
// peptide row is 0.7 tall with a 0.4-tall bar, and 0.2 of padding caps both
// ends.
const (
	trackUnits   = 1.0
	rowPitch     = 0.7
	barUnits     = 0.4
	rowBase      = 1.2
	unitsPadding = 0.2
)

type figureColors struct {
	background color.RGBA
	track      color.RGBA
	trackEdge  color.RGBA
	text       color.RGBA
	axis       color.RGBA
	window     color.RGBA
}

func parseFigureColors(pal Palette) (figureColors, error) {
	var out figureColors
	var err error

	if out.background, err = colorx.ParseHexColor(pal.Background); err != nil {
		return out, pfx.Err(err)
	}
	if out.track, err = colorx.ParseHexColor(pal.ProteinTrack); err != nil {
		return out, pfx.Err(err)
	}
	if out.trackEdge, err = colorx.ParseHexColor(pal.ProteinEdge); err != nil {
		return out, pfx.Err(err)
	}
	if out.text, err = colorx.ParseHexColor(pal.Text); err != nil {
		return out, pfx.Err(err)
	}
	if out.axis, err = colorx.ParseHexColor(pal.Axis); err != nil {
		return out, pfx.Err(err)
	}
	if out.window, err = colorx.ParseHexColor(pal.Window); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}

// RenderImage draws one protein's figure at cfg.Resolution pixels per
// millimeter: per-sample intensity traces on top, then the packed peptide
// bars, the protein track, and the residue axis.
func RenderImage(data PlotData, cfg JSONConfig) (image.Image, error) {
	if data.Length < 1 {
		return nil, pfx.Err(fmt.Errorf("protein %s has no length", data.Protein))
	}

	unit := cfg.Resolution
	if unit <= 0 {
		return nil, pfx.Err(fmt.Errorf("resolution must be positive, got %g", unit))
	}

	width := int(math.Round(cfg.WidthMM * unit))
	height := int(math.Round(cfg.HeightMM * unit))
	if width < 1 || height < 1 {
		return nil, pfx.Err(fmt.Errorf("figure size %gx%gmm is empty", cfg.WidthMM, cfg.HeightMM))
	}

	cols, err := parseFigureColors(cfg.Colors)
	if err != nil {
		return nil, err
	}

	maxRows := cfg.MaxRows
	if maxRows < 1 {
		maxRows = 2
	}

	// Samples come from the config when present, otherwise from whatever
	// profiles were computed.
	samples := cfg.Samples
	if len(samples) == 0 {
		names := make([]string, 0, len(data.Profiles))
		for _, p := range data.Profiles {
			names = append(names, p.Sample)
		}
		samples = SampleMapFromNames(names)
	}
	tracks := samples.Sorted()
	if len(data.Profiles) == 0 {
		tracks = nil
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(cols.background)
	dc.Clear()

	// Plot box
	left := 16 * unit
	right := float64(width) - 8*unit
	top := 4 * unit
	if cfg.ShowTitle {
		top += 7 * unit
	}
	axisBlock := 9 * unit
	bottom := float64(height) - 3*unit - axisBlock

	plotW := right - left
	plotH := bottom - top
	if plotW <= 0 || plotH <= 0 {
		return nil, pfx.Err(fmt.Errorf("figure size %gx%gmm leaves no plot area", cfg.WidthMM, cfg.HeightMM))
	}

	sx := plotW / float64(data.Length)
	xOf := func(residue float64) float64 { return left + residue*sx }

	// The density tracks take the upper portion of the plot; the peptide
	// rows and protein track share the rest in track units.
	densityH := 0.0
	if len(tracks) > 0 {
		densityH = 0.55 * plotH
	}
	pepH := plotH - densityH

	units := unitsPadding + rowBase + rowPitch*float64(maxRows) + unitsPadding
	uscale := pepH / units
	uy := func(u float64) float64 { return bottom - (u+unitsPadding)*uscale }

	// Core window shading sits behind everything else in the plot box
	for _, w := range data.Windows {
		x0 := xOf(float64(w.Start - 1))
		x1 := xOf(float64(w.End))
		dc.SetColor(withAlpha(cols.window, 28))
		dc.DrawRectangle(x0, top, x1-x0, bottom-top)
		dc.Fill()
	}

	if err := drawDensityTracks(dc, data, tracks, cols, unit, left, right, top, densityH, xOf); err != nil {
		return nil, err
	}

	// Peptide bars
	labelFace, err := fontFace(2.8*unit, false)
	if err != nil {
		return nil, err
	}

	rows := PackRows(data.Matches, maxRows, cfg.RowGapResidues)
	for rowIdx, rowMatches := range rows {
		rowY := rowBase + rowPitch*float64(rowIdx)

		for _, m := range rowMatches {
			barColor, err := ColorForMismatches(m.Mismatches, cfg.MaxMismatches, cfg.ColorByMismatches, cfg.Colors)
			if err != nil {
				return nil, pfx.Err(err)
			}

			dc.SetColor(barColor)
			dc.DrawRectangle(xOf(float64(m.Start-1)), uy(rowY+barUnits), float64(m.Len())*sx, barUnits*uscale)
			dc.Fill()

			if !cfg.LabelPeptides {
				continue
			}

			label := m.Peptide
			if m.Mismatches > 0 {
				label += fmt.Sprintf(" (%d mut)", m.Mismatches)
			}
			label += fmt.Sprintf(" [%d-%d]", m.Start, m.End)

			dc.SetFontFace(labelFace)
			dc.SetColor(cols.text)
			dc.DrawStringAnchored(label, xOf(float64(m.End)+5), uy(rowY+barUnits/2), 0, 0.4)
		}
	}

	// Protein track
	dc.SetColor(cols.track)
	dc.DrawRectangle(left, uy(trackUnits), plotW, trackUnits*uscale)
	dc.FillPreserve()
	dc.SetColor(cols.trackEdge)
	dc.SetLineWidth(0.2 * unit)
	dc.Stroke()

	// Protein name: a title above the plot, or centered on the track itself
	if cfg.ShowTitle {
		titleFace, err := fontFace(4.2*unit, false)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(titleFace)
		dc.SetColor(cols.text)
		dc.DrawStringAnchored(data.Protein, (left+right)/2, top-3.5*unit, 0.5, 0.4)
	} else {
		nameFace, err := fontFace(3.5*unit, true)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(nameFace)
		dc.SetColor(cols.text)
		dc.DrawStringAnchored(data.Protein, (left+right)/2, uy(0.4), 0.5, 0.4)
	}

	if err := drawAxis(dc, data.Length, cols, unit, left, right, uy(0), xOf); err != nil {
		return nil, err
	}

	if err := drawSideLabels(dc, cols, unit, left, top, densityH, uy, maxRows, len(tracks) > 0); err != nil {
		return nil, err
	}

	if cfg.ShowLegend {
		if err := drawLegend(dc, data, cfg, tracks, cols, unit, right, top); err != nil {
			return nil, err
		}
	}

	return dc.Image(), nil
}

// drawDensityTracks stacks one intensity trace per sample, all sharing a
// y-scale so the tracks are comparable.
func drawDensityTracks(dc *gg.Context, data PlotData, tracks []Sample, cols figureColors, unit, left, right, top, densityH float64, xOf func(float64) float64) error {
	if len(tracks) == 0 {
		return nil
	}

	maxV := 0.0
	for _, p := range data.Profiles {
		for _, v := range p.Values {
			if v > maxV {
				maxV = v
			}
		}
	}

	labelFace, err := fontFace(3.0*unit, false)
	if err != nil {
		return err
	}

	trackH := densityH / float64(len(tracks))
	for i, s := range tracks {
		trackTop := top + float64(i)*trackH
		base := trackTop + trackH - 1.5*unit
		traceH := base - trackTop - 1.0*unit

		trace, err := sampleColor(s, i)
		if err != nil {
			return pfx.Err(err)
		}

		dc.SetColor(cols.axis)
		dc.SetLineWidth(0.2 * unit)
		dc.DrawLine(left, base, right, base)
		dc.Stroke()

		dc.SetFontFace(labelFace)
		dc.SetColor(trace)
		dc.DrawStringAnchored(s.Title(), left+1.5*unit, trackTop+1.2*unit, 0, 0.4)

		values := data.SampleProfile(s.Sample)
		if len(values) == 0 || maxV <= 0 {
			continue
		}

		dc.MoveTo(xOf(0), base)
		for r, v := range values {
			dc.LineTo(xOf(float64(r)+0.5), base-(v/maxV)*traceH)
		}
		dc.LineTo(xOf(float64(len(values))), base)
		dc.ClosePath()

		dc.SetColor(withAlpha(trace, 150))
		dc.FillPreserve()
		dc.SetColor(trace)
		dc.SetLineWidth(0.25 * unit)
		dc.Stroke()
	}

	return nil
}

func drawAxis(dc *gg.Context, length int, cols figureColors, unit, left, right, axisY float64, xOf func(float64) float64) error {
	dc.SetColor(cols.axis)
	dc.SetLineWidth(0.2 * unit)
	dc.DrawLine(left, axisY, right, axisY)
	dc.Stroke()

	tickFace, err := fontFace(3.0*unit, false)
	if err != nil {
		return err
	}
	axisFace, err := fontFace(3.5*unit, false)
	if err != nil {
		return err
	}

	step := length / 10
	if step < 1 {
		step = 1
	}

	for pos := 0; pos <= length; pos += step {
		tx := xOf(float64(pos))

		dc.SetColor(cols.axis)
		dc.DrawLine(tx, axisY, tx, axisY+1.2*unit)
		dc.Stroke()

		dc.SetFontFace(tickFace)
		dc.SetColor(cols.text)
		dc.DrawStringAnchored(strconv.Itoa(pos), tx, axisY+1.6*unit, 0.5, 1)
	}

	dc.SetFontFace(axisFace)
	dc.SetColor(cols.text)
	dc.DrawStringAnchored("Amino Acid Position", (left+right)/2, axisY+5.6*unit, 0.5, 1)

	return nil
}

func drawSideLabels(dc *gg.Context, cols figureColors, unit, left, top, densityH float64, uy func(float64) float64, maxRows int, hasTracks bool) error {
	face, err := fontFace(3.5*unit, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(cols.text)

	lx := left - 4*unit

	if maxRows >= 2 {
		ly := uy(1.5 + rowPitch*float64(maxRows)/2)
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), lx, ly)
		dc.DrawStringAnchored("Peptides", lx, ly, 0.5, 0.4)
		dc.Pop()
	}

	if hasTracks {
		ly := top + densityH/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), lx, ly)
		dc.DrawStringAnchored("Intensity", lx, ly, 0.5, 0.4)
		dc.Pop()
	}

	return nil
}

type legendEntry struct {
	color color.RGBA
	label string
}

// drawLegend sits frameless in the upper right of the plot box. With density
// tracks it names the samples; without them it explains the bar colors.
func drawLegend(dc *gg.Context, data PlotData, cfg JSONConfig, tracks []Sample, cols figureColors, unit, right, top float64) error {
	var entries []legendEntry

	if len(tracks) > 0 {
		for i, s := range tracks {
			c, err := sampleColor(s, i)
			if err != nil {
				return pfx.Err(err)
			}
			entries = append(entries, legendEntry{color: c, label: s.Title()})
		}
	} else {
		exact, err := ColorForMismatches(0, cfg.MaxMismatches, cfg.ColorByMismatches, cfg.Colors)
		if err != nil {
			return pfx.Err(err)
		}
		entries = append(entries, legendEntry{color: exact, label: "Exact Match"})

		switch {
		case cfg.MaxMismatches > 0 && cfg.ColorByMismatches:
			for i := 1; i <= cfg.MaxMismatches; i++ {
				c, err := ColorForMismatches(i, cfg.MaxMismatches, true, cfg.Colors)
				if err != nil {
					return pfx.Err(err)
				}
				plural := ""
				if i > 1 {
					plural = "s"
				}
				entries = append(entries, legendEntry{color: c, label: fmt.Sprintf("%d Mutation%s", i, plural)})
			}
		case cfg.MaxMismatches > 0:
			c, err := ColorForMismatches(1, cfg.MaxMismatches, false, cfg.Colors)
			if err != nil {
				return pfx.Err(err)
			}
			entries = append(entries, legendEntry{color: c, label: "With Mutations"})
		}
	}

	if len(entries) == 0 {
		return nil
	}

	face, err := fontFace(3.2*unit, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	widest := 0.0
	for _, e := range entries {
		if w, _ := dc.MeasureString(e.label); w > widest {
			widest = w
		}
	}

	swatch := 3 * unit
	pitch := 4.5 * unit
	x0 := right - widest - swatch - 3*unit

	for i, e := range entries {
		y := top + 1.5*unit + float64(i)*pitch

		dc.SetColor(e.color)
		dc.DrawRectangle(x0, y, swatch, swatch)
		dc.Fill()

		dc.SetColor(cols.text)
		dc.DrawStringAnchored(e.label, x0+swatch+1.5*unit, y+swatch/2, 0, 0.4)
	}

	return nil
}

// Render wraps the rasterized figure in a millimeter-sized canvas so vector
// backends can embed it at the correct physical size.
func Render(data PlotData, cfg JSONConfig) (*canvas.Canvas, error) {
	img, err := RenderImage(data, cfg)
	if err != nil {
		return nil, err
	}

	c := canvas.New(cfg.WidthMM, cfg.HeightMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.DrawImage(0, ctx.Height(), img, canvas.Resolution(cfg.Resolution))
	ctx.Close()

	return c, nil
}
