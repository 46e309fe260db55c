package normalize

import (
	"testing"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

func newTitleNormalizer() *titleNormalizer {
	return &titleNormalizer{cfg: config.Default()}
}

func TestNormalizeJobTitle_SeniorDeveloper(t *testing.T) {
	n := newTitleNormalizer()

	title := n.NormalizeJobTitle("senior software engineer")

	if title.Seniority != model.SenioritySenior {
		t.Errorf("expected senior, got %s", title.Seniority)
	}
	if title.Category != model.CategoryDevelopment {
		t.Errorf("expected development, got %s", title.Category)
	}
	if title.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", title.Confidence)
	}
	if title.Normalized != "Senior Software Engineer" {
		t.Errorf("expected title case, got %q", title.Normalized)
	}
}

func TestNormalizeJobTitle_ExecutiveFallsBackToManagement(t *testing.T) {
	n := newTitleNormalizer()

	title := n.NormalizeJobTitle("CTO")

	if title.Seniority != model.SeniorityLead {
		t.Errorf("expected lead, got %s", title.Seniority)
	}
	if title.Category != model.CategoryManagement {
		t.Errorf("expected the management fallback, got %s", title.Category)
	}
	if title.Normalized != "CTO" {
		t.Errorf("expected the acronym preserved, got %q", title.Normalized)
	}
}

func TestNormalizeJobTitle_Unclassified(t *testing.T) {
	n := newTitleNormalizer()

	title := n.NormalizeJobTitle("Plumber")

	if title.Seniority != model.SeniorityMid {
		t.Errorf("expected the mid default, got %s", title.Seniority)
	}
	if title.Category != model.CategoryOther {
		t.Errorf("expected the other default, got %s", title.Category)
	}
	if title.Confidence != 0.5 {
		t.Errorf("expected base confidence 0.5, got %v", title.Confidence)
	}
}

func TestNormalizeJobTitle_NoPartialWordMatch(t *testing.T) {
	n := newTitleNormalizer()

	// "juniority" must not match "junior", "engineers" must not match
	// "engineer".
	title := n.NormalizeJobTitle("juniority engineers")

	if title.Seniority != model.SeniorityMid || title.Category != model.CategoryOther {
		t.Errorf("expected no partial-word matches, got %s / %s", title.Seniority, title.Category)
	}
}

func TestNormalizeJobTitle_MixedVocabularyPrefersLead(t *testing.T) {
	n := newTitleNormalizer()

	title := n.NormalizeJobTitle("Senior Engineering Lead")

	if title.Seniority != model.SeniorityLead {
		t.Errorf("expected lead to win over senior, got %s", title.Seniority)
	}
}
