package immunoviz

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/lilab-monash/protpeptigram"
)

type JSONConfig struct {
	ConfigPath string

	OutputPath        string    `json:"output_path"`
	Format            string    `json:"format"`
	WidthMM           float64   `json:"width_mm"`
	HeightMM          float64   `json:"height_mm"`
	Resolution        float64   `json:"resolution"`
	MaxRows           int       `json:"max_rows"`
	RowGapResidues    int       `json:"row_gap_residues"`
	MaxMismatches     int       `json:"max_mismatches"`
	ColorByMismatches bool      `json:"color_by_mismatches"`
	LabelPeptides     bool      `json:"label_peptides"`
	ShowLegend        bool      `json:"show_legend"`
	ShowTitle         bool      `json:"show_title"`
	GIFDelay          int       `json:"gif_delay"`
	Samples           SampleMap `json:"samples"`
	Colors            Palette   `json:"colors"`
}

// DefaultConfig sets the figure parameters that apply when a field is left
// out of the JSON file. Resolution is in pixels per millimeter; GIFDelay is
// in hundredths of a second between frames.
func DefaultConfig() JSONConfig {
	return JSONConfig{
		Format:            "png",
		WidthMM:           180,
		HeightMM:          120,
		Resolution:        5,
		MaxRows:           2,
		RowGapResidues:    10,
		MaxMismatches:     3,
		ColorByMismatches: true,
		LabelPeptides:     true,
		ShowLegend:        true,
		ShowTitle:         true,
		GIFDelay:          100,
		Samples:           SampleMap{},
		Colors:            DefaultPalette(),
	}
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := DefaultConfig()
	out.ConfigPath = path

	f, err := os.Open(protpeptigram.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
			return out, pfx.Err(err)
		}

		return out, pfx.Err(err)
	}

	// Internally, go uses lower case for all colors, so we will too (while
	// permitting the user to use mixed case)
	for k, v := range out.Samples {
		v.Color = strings.ToLower(out.Samples[k].Color)
		out.Samples[k] = v
	}
	out.Colors = out.Colors.lowercased()

	// Interpret ~ if present
	out.ConfigPath = protpeptigram.ExpandHome(out.ConfigPath)
	out.OutputPath = protpeptigram.ExpandHome(out.OutputPath)

	return out, pfx.Err(err)
}
