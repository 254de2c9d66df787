package pepparser

import "testing"

func TestNakedSequence(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"LSEPAELTDAVK", "LSEPAELTDAVK"},
		{"K.LSEPAELTDAVK.H", "LSEPAELTDAVK"},
		{"-.MAISGVPVLG.F", "MAISGVPVLG"},
		{"M(+15.99)PSEKTFK", "MPSEKTFK"},
		{"K.N(-.98)LVPM(+15.99)VATV.R", "NLVPMVATV"},
		{"C[+57.02]AGHLDR", "CAGHLDR"},
		{"siinfekl", "SIINFEKL"},
		{" SIINFEKL ", "SIINFEKL"},
		{"", ""},
		{"(+42.01)", ""},
	} {
		if got := NakedSequence(tc.in); got != tc.want {
			t.Errorf("NakedSequence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIntensityHelpers(t *testing.T) {
	pep := Peptide{Intensity: map[string]float64{"A": 5, "B": 2, "C": 0}}

	if got := pep.MaxIntensity(); got != 5 {
		t.Errorf("MaxIntensity = %v", got)
	}
	if got := pep.TotalIntensity(); got != 7 {
		t.Errorf("TotalIntensity = %v", got)
	}

	empty := Peptide{}
	if got := empty.MaxIntensity(); got != 0 {
		t.Errorf("MaxIntensity on unquantified peptide = %v", got)
	}
}
