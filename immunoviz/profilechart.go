package immunoviz

import (
	"bytes"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/lilab-monash/protpeptigram/density"
)

// ProfilePNG renders a single density profile as a quick-look line chart,
// returning the encoded PNG. It is meant for eyeballing one sample's trace,
// not for the composed figure.
func ProfilePNG(p density.Profile, width, height int) ([]byte, error) {
	if width < 1 {
		width = 512
	}
	if height < 1 {
		height = 256
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: residueSeq(len(p.Values)),
				YValues: p.Values,
			},
		},
	}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, pfx.Err(err)
	}

	return buffer.Bytes(), nil
}

// residueSeq yields 1-based residue positions for the chart's x values.
func residueSeq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}

	return out
}
