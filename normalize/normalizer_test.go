package normalize

import (
	"testing"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

func TestNormalize_NilData(t *testing.T) {
	n := NewNormalizer(config.Default())

	out := n.Normalize(nil)

	if out == nil {
		t.Fatal("expected non-nil output")
	}
	if len(out.Experiences) != 0 {
		t.Error("expected empty output for nil data")
	}
}

func TestNormalize_Experience(t *testing.T) {
	n := NewNormalizer(config.Default())
	data := &model.ExtractedData{
		Experiences: []model.ExtractedExperience{{
			Title:        "Senior Software Engineer",
			Organization: "Acme Corp",
			Location:     "Paris, France",
			DateRange:    "2020 - Present",
			Confidence:   0.9,
		}},
	}

	out := n.NormalizeForLanguage(data, "en")

	if len(out.Experiences) != 1 {
		t.Fatalf("expected 1 experience, got %d", len(out.Experiences))
	}
	rec := out.Experiences[0]
	if rec.Title == nil || rec.Title.Seniority != model.SenioritySenior {
		t.Errorf("expected a classified title, got %+v", rec.Title)
	}
	if rec.Location == nil || rec.Location.CountryISO != "FR" {
		t.Errorf("expected a resolved location, got %+v", rec.Location)
	}
	if rec.DateRange == nil || !rec.DateRange.Ongoing() {
		t.Errorf("expected an ongoing date range, got %+v", rec.DateRange)
	}
	if rec.Organization != "Acme Corp" || rec.Confidence != 0.9 {
		t.Errorf("expected organization and confidence carried over, got %+v", rec)
	}
}

func TestNormalize_PersonalInfo(t *testing.T) {
	n := NewNormalizer(config.Default())
	n.DefaultPhoneRegion = "FR"
	data := &model.ExtractedData{
		PersonalInfo: model.ExtractedPersonalInfo{
			Name:  "  Jane Doe ",
			Email: "jane@example.com",
			Phone: "06 12 34 56 78",
		},
	}

	out := n.Normalize(data)

	info := out.PersonalInfo
	if info.Name != "Jane Doe" {
		t.Errorf("expected the name trimmed, got %q", info.Name)
	}
	if !info.Contact.EmailValid || info.Contact.Email != "jane@example.com" {
		t.Errorf("expected a valid email, got %+v", info.Contact)
	}
	if !info.Contact.PhoneValid || info.Contact.PhoneE164 != "+33612345678" {
		t.Errorf("expected the phone in E.164 form, got %+v", info.Contact)
	}
	if info.Contact.Phone != "06 12 34 56 78" {
		t.Errorf("expected the raw phone preserved, got %q", info.Contact.Phone)
	}
}

func TestNormalize_CertificationsMerge(t *testing.T) {
	n := NewNormalizer(config.Default())
	data := &model.ExtractedData{
		Certifications: []model.ExtractedCertification{
			{Name: "AWS Certified  Solutions Architect", Confidence: 0.7},
			{Name: "AWS Certified Solutions Architect,", Issuer: "aws", Year: 2021, Confidence: 0.8},
			{Name: "Scrum Master", Year: 2019, Confidence: 0.7},
		},
	}

	out := n.Normalize(data)

	if len(out.Certifications) != 2 {
		t.Fatalf("expected the duplicate merged, got %d records", len(out.Certifications))
	}
	// Sorted year descending.
	first := out.Certifications[0]
	if first.Name != "AWS Certified Solutions Architect" {
		t.Errorf("expected the canonical name, got %q", first.Name)
	}
	if first.Confidence != 0.8 {
		t.Errorf("expected the maximum confidence kept, got %v", first.Confidence)
	}
	if first.Issuer != "aws" || first.Year != 2021 {
		t.Errorf("expected issuer and year filled from the duplicate, got %+v", first)
	}
	if out.Certifications[1].Name != "Scrum Master" {
		t.Errorf("expected Scrum Master second, got %q", out.Certifications[1].Name)
	}
}

func TestNormalize_SkillsPassThrough(t *testing.T) {
	n := NewNormalizer(config.Default())
	data := &model.ExtractedData{
		Skills: []model.ExtractedSkill{{Name: "Go", Confidence: 0.7}},
	}

	out := n.Normalize(data)

	if len(out.Skills) != 1 || out.Skills[0].Name != "Go" {
		t.Errorf("expected skills carried through untouched, got %+v", out.Skills)
	}
}
