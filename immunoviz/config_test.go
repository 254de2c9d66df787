package immunoviz

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestParseJSONConfigFromPath(t *testing.T) {
	path := writeConfig(t, `{
		"output_path": "figures",
		"format": "svg",
		"max_rows": 3,
		"samples": {"T1_norm": {"display_name": "Tumor 1", "color": "#FF0000"}},
		"colors": {"exact_match": "#AA0000"}
	}`)

	cfg, err := ParseJSONConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Format != "svg" || cfg.MaxRows != 3 || cfg.OutputPath != "figures" {
		t.Errorf("Mismatch: %+v", cfg)
	}

	// Untouched fields keep their defaults
	if cfg.WidthMM != 180 || cfg.GIFDelay != 100 || !cfg.ColorByMismatches {
		t.Errorf("defaults not preserved: %+v", cfg)
	}

	// Colors normalize to lower case
	if cfg.Samples["T1_norm"].Color != "#ff0000" {
		t.Errorf("sample color not lowercased: %q", cfg.Samples["T1_norm"].Color)
	}
	if cfg.Colors.ExactMatch != "#aa0000" {
		t.Errorf("palette color not lowercased: %q", cfg.Colors.ExactMatch)
	}
	if cfg.Colors.Mutated != "#ffaa22" {
		t.Errorf("unset palette field lost its default: %q", cfg.Colors.Mutated)
	}
}

func TestParseJSONConfigEmptyObject(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := ParseJSONConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	if cfg.Format != want.Format || cfg.MaxRows != want.MaxRows || cfg.WidthMM != want.WidthMM || cfg.HeightMM != want.HeightMM {
		t.Errorf("Mismatch: %+v", cfg)
	}
}

func TestParseJSONConfigSyntaxError(t *testing.T) {
	path := writeConfig(t, `{"format": "png"`)

	if _, err := ParseJSONConfigFromPath(path); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	if _, err := ParseJSONConfigFromPath(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
