package pepparser

import (
	"testing"
)

func TestPEAKSLayout(t *testing.T) {
	header := []string{"Peptide", "-10lgP", "Mass", "Length", "ppm", "RT", "Protein Accession", "Intensity Tumor_1", "Intensity Normal_1"}
	row := []string{"K.LSEPAELTDAVK.H", "35.10", "1272.65", "12", "1.2", "28.44", "P01903:P04439", "1.5e6", "-"}

	parser, err := New("PEAKS")
	if err != nil {
		t.Error(err)
	}

	cols, err := parser.ResolveColumns(header)
	if err != nil {
		t.Error(err)
	}
	if cols.Peptide != 0 || cols.Accession != 6 || cols.RT != 5 || cols.Mass != 2 {
		t.Errorf("resolved columns mismatch: %+v", cols)
	}
	if samples := cols.SampleNames(); len(samples) != 2 || samples[0] != "Tumor_1" || samples[1] != "Normal_1" {
		t.Errorf("sample names mismatch: %v", cols.SampleNames())
	}

	pep, err := parser.ParseRow(cols, row)
	if err != nil {
		t.Error(err)
	}
	if pep.Naked != "LSEPAELTDAVK" ||
		len(pep.Proteins) != 2 ||
		pep.Proteins[0] != "P01903" ||
		pep.Proteins[1] != "P04439" ||
		!pep.RT.Valid || pep.RT.Float64 != 28.44 ||
		!pep.Mass.Valid || pep.Mass.Float64 != 1272.65 {
		t.Errorf("Mismatch: %+v", pep)
	}

	if x, ok := pep.Intensity["Tumor_1"]; !ok || x != 1.5e6 {
		t.Errorf("Tumor_1 intensity = %v (present %v)", x, ok)
	}
	if _, ok := pep.Intensity["Normal_1"]; ok {
		t.Error("dash cell should parse as absent, not zero")
	}
}

func TestMaxQuantLayout(t *testing.T) {
	header := []string{"Sequence", "Proteins", "Retention time", "Mass", "Intensity S1"}
	row := []string{"NLVPMVATV", "P06725;Q9UQ35", "41.2", "942.51", "0"}

	parser, err := New("MAXQUANT")
	if err != nil {
		t.Error(err)
	}

	cols, err := parser.ResolveColumns(header)
	if err != nil {
		t.Error(err)
	}

	pep, err := parser.ParseRow(cols, row)
	if err != nil {
		t.Error(err)
	}
	if pep.Naked != "NLVPMVATV" ||
		len(pep.Proteins) != 2 ||
		pep.Proteins[1] != "Q9UQ35" ||
		!pep.RT.Valid || pep.RT.Float64 != 41.2 {
		t.Errorf("Mismatch: %+v", pep)
	}
	if x, ok := pep.Intensity["S1"]; !ok || x != 0 {
		t.Error("explicit zero intensity should be retained")
	}
}

func TestResolveColumnsRequiresCoreHeaders(t *testing.T) {
	parser, err := New("PEAKS")
	if err != nil {
		t.Error(err)
	}

	if _, err := parser.ResolveColumns([]string{"Protein Accession", "Intensity A"}); err == nil {
		t.Error("expected error for missing peptide column")
	}
	if _, err := parser.ResolveColumns([]string{"Peptide", "Intensity A"}); err == nil {
		t.Error("expected error for missing accession column")
	}
	if _, err := parser.ResolveColumns([]string{"Peptide", "Protein Accession"}); err == nil {
		t.Error("expected error for missing intensity columns")
	}
}

func TestUnknownLayoutName(t *testing.T) {
	if _, err := New("SPECTRONAUT"); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestRuntimeLayoutRegistration(t *testing.T) {
	custom := Layouts["PEAKS"]
	custom.HeaderAccession = "Accession"
	Layouts["CUSTOMTEST"] = custom
	defer delete(Layouts, "CUSTOMTEST")

	parser, err := New("CUSTOMTEST")
	if err != nil {
		t.Error(err)
	}

	if _, err := parser.ResolveColumns([]string{"Peptide", "Accession", "Area X"}); err != nil {
		t.Error(err)
	}
}
