package normalize

import (
	"testing"

	"github.com/Kojynth/cvmatch-sub004/config"
)

func newLocationNormalizer() *locationNormalizer {
	return &locationNormalizer{cfg: config.Default()}
}

func TestNormalizeLocation_CityCountry(t *testing.T) {
	n := newLocationNormalizer()

	loc := n.NormalizeLocation("Paris, France")

	if loc.City != "Paris" {
		t.Errorf("expected city %q, got %q", "Paris", loc.City)
	}
	if loc.CountryISO != "FR" {
		t.Errorf("expected ISO code FR, got %q", loc.CountryISO)
	}
	if loc.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", loc.Confidence)
	}
}

func TestNormalizeLocation_Aliases(t *testing.T) {
	n := newLocationNormalizer()

	loc := n.NormalizeLocation("NYC, USA")

	if loc.City != "New York" {
		t.Errorf("expected the city alias resolved, got %q", loc.City)
	}
	if loc.CountryISO != "US" {
		t.Errorf("expected ISO code US, got %q", loc.CountryISO)
	}
}

func TestNormalizeLocation_CityOnly(t *testing.T) {
	n := newLocationNormalizer()

	loc := n.NormalizeLocation("Berlin")

	if loc.City != "Berlin" {
		t.Errorf("expected city %q, got %q", "Berlin", loc.City)
	}
	if loc.Country != "" || loc.CountryISO != "" {
		t.Errorf("expected no country, got %q / %q", loc.Country, loc.CountryISO)
	}
	if loc.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", loc.Confidence)
	}
}

func TestNormalizeLocation_CountryOnly(t *testing.T) {
	n := newLocationNormalizer()

	loc := n.NormalizeLocation("Germany")

	if loc.City != "" {
		t.Errorf("expected no city for a bare country, got %q", loc.City)
	}
	if loc.CountryISO != "DE" {
		t.Errorf("expected ISO code DE, got %q", loc.CountryISO)
	}
	if loc.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", loc.Confidence)
	}
}

func TestNormalizeLocation_UnresolvedCountry(t *testing.T) {
	n := newLocationNormalizer()

	loc := n.NormalizeLocation("Atlantis City, Atlantis")

	if loc.CountryISO != "" {
		t.Errorf("expected no ISO code, got %q", loc.CountryISO)
	}
	if loc.Country != "Atlantis" {
		t.Errorf("expected the raw country kept title-cased, got %q", loc.Country)
	}
	if loc.Confidence != 0.4 {
		t.Errorf("expected confidence 0.4, got %v", loc.Confidence)
	}
}

func TestNormalizeLocation_ParenForm(t *testing.T) {
	n := newLocationNormalizer()

	loc := n.NormalizeLocation("Lyon (France)")

	if loc.City != "Lyon" || loc.CountryISO != "FR" {
		t.Errorf("expected Lyon / FR, got %q / %q", loc.City, loc.CountryISO)
	}
}

func TestNormalizeLocation_Empty(t *testing.T) {
	n := newLocationNormalizer()

	loc := n.NormalizeLocation("   ")

	if loc.Confidence != 0.1 {
		t.Errorf("expected low confidence for empty input, got %v", loc.Confidence)
	}
}
