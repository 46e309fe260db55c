package normalize

import (
	"testing"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

func newDateNormalizer(lang string) *dateNormalizer {
	return &dateNormalizer{cfg: config.Default(), lang: lang}
}

func TestNormalizeDateRange_YearRange(t *testing.T) {
	n := newDateNormalizer("en")

	r := n.NormalizeDateRange("2020 - 2022")

	if r.Start == nil || r.Start.Year != 2020 {
		t.Fatalf("expected start year 2020, got %+v", r.Start)
	}
	if r.End == nil || r.End.Year != 2022 {
		t.Fatalf("expected end year 2022, got %+v", r.End)
	}
	if r.Start.Precision != model.PrecisionYear || r.Start.Confidence != 0.8 {
		t.Errorf("expected year precision at 0.8, got %s / %v", r.Start.Precision, r.Start.Confidence)
	}
	if r.Ongoing() {
		t.Error("expected a closed range")
	}
}

func TestNormalizeDateRange_Ongoing(t *testing.T) {
	n := newDateNormalizer("en")

	r := n.NormalizeDateRange("2020 - Present")

	if r.Start == nil || r.Start.Year != 2020 {
		t.Fatalf("expected start year 2020, got %+v", r.Start)
	}
	if !r.Ongoing() {
		t.Fatal("expected an ongoing range")
	}
	if r.End.Precision != model.PrecisionOngoing || r.End.Date != nil {
		t.Errorf("expected a calendar-free ongoing end, got %+v", r.End)
	}
}

func TestNormalizeDateRange_InvertedIsSwapped(t *testing.T) {
	n := newDateNormalizer("en")

	r := n.NormalizeDateRange("2022 - 2020")

	if r.Start == nil || r.End == nil {
		t.Fatal("expected both ends resolved")
	}
	if r.Start.Year != 2020 || r.End.Year != 2022 {
		t.Errorf("expected the inverted range swapped, got %d - %d", r.Start.Year, r.End.Year)
	}
}

func TestNormalizeDateRange_FrenchOngoing(t *testing.T) {
	n := newDateNormalizer("fr")

	r := n.NormalizeDateRange("2019 - aujourd'hui")

	if !r.Ongoing() {
		t.Error("expected the French ongoing keyword recognized")
	}
}

func TestNormalizeDate(t *testing.T) {
	n := newDateNormalizer("en")
	tests := []struct {
		raw        string
		year       int
		month      int
		precision  model.DatePrecision
		confidence float64
	}{
		{"2019", 2019, 0, model.PrecisionYear, 0.8},
		{"05/2019", 2019, 5, model.PrecisionMonth, 0.9},
		{"2019-05", 2019, 5, model.PrecisionMonth, 0.9},
		{"March 2021", 2021, 3, model.PrecisionMonth, 0.85},
		{"janvier 2020", 2020, 1, model.PrecisionMonth, 0.85},
	}
	for _, tt := range tests {
		d := n.NormalizeDate(tt.raw)
		if d.Year != tt.year || d.Month != tt.month {
			t.Errorf("%q: expected %d-%d, got %d-%d", tt.raw, tt.year, tt.month, d.Year, d.Month)
		}
		if d.Precision != tt.precision {
			t.Errorf("%q: expected precision %s, got %s", tt.raw, tt.precision, d.Precision)
		}
		if d.Confidence != tt.confidence {
			t.Errorf("%q: expected confidence %v, got %v", tt.raw, tt.confidence, d.Confidence)
		}
	}
}

func TestNormalizeDate_Unparseable(t *testing.T) {
	n := newDateNormalizer("en")

	d := n.NormalizeDate("garbage text")

	if d.Precision != model.PrecisionUnknown {
		t.Errorf("expected unknown precision, got %s", d.Precision)
	}
	if d.Confidence != 0.1 {
		t.Errorf("expected confidence 0.1, got %v", d.Confidence)
	}
	if d.Raw != "garbage text" {
		t.Errorf("expected the raw input preserved, got %q", d.Raw)
	}
}

func TestNormalizeDate_EmbeddedYear(t *testing.T) {
	n := newDateNormalizer("en")

	d := n.NormalizeDate("since 2018 roughly")

	if d.Year != 2018 || d.Precision != model.PrecisionYear {
		t.Errorf("expected the embedded year salvaged, got %+v", d)
	}
	if d.Confidence != 0.6 {
		t.Errorf("expected reduced confidence 0.6, got %v", d.Confidence)
	}
}
