package normalize

import (
	"testing"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

func newLanguageNormalizer() *languageNormalizer {
	return &languageNormalizer{cfg: config.Default()}
}

func TestNormalizeLanguage_CertificationScore(t *testing.T) {
	n := newLanguageNormalizer()

	skill := n.NormalizeLanguage(model.ExtractedLanguage{Name: "TOEIC", RawLevel: "TOEIC 950"})

	if skill.Language != "English" {
		t.Errorf("expected the certification mapped to English, got %q", skill.Language)
	}
	if skill.CanonicalName != "TOEIC" {
		t.Errorf("expected canonical name TOEIC, got %q", skill.CanonicalName)
	}
	if skill.Score != 950 || !skill.ScoreValid {
		t.Errorf("expected a valid score 950, got %v / %v", skill.Score, skill.ScoreValid)
	}
	if skill.Level != model.LevelAdvanced {
		t.Errorf("expected advanced from the score grid, got %s", skill.Level)
	}
	if skill.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", skill.Confidence)
	}
}

func TestNormalizeLanguage_ScoreOutOfRange(t *testing.T) {
	n := newLanguageNormalizer()

	skill := n.NormalizeLanguage(model.ExtractedLanguage{Name: "TOEIC", RawLevel: "TOEIC 9999"})

	if skill.ScoreValid {
		t.Error("expected the score flagged invalid")
	}
	if skill.Confidence != 0.5 {
		t.Errorf("expected reduced confidence 0.5, got %v", skill.Confidence)
	}
}

func TestNormalizeLanguage_MultipleCertificationsEarliestWins(t *testing.T) {
	n := newLanguageNormalizer()
	entry := model.ExtractedLanguage{Name: "TOEIC", RawLevel: "TOEIC 950 TOEFL 100"}

	first := n.NormalizeLanguage(entry)
	if first.CanonicalName != "TOEIC" {
		t.Errorf("expected the earliest certification TOEIC, got %q", first.CanonicalName)
	}
	if first.Score != 950 {
		t.Errorf("expected the TOEIC score 950, got %v", first.Score)
	}
	for i := 0; i < 50; i++ {
		got := n.NormalizeLanguage(entry)
		if got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestNormalizeLanguage_PhraseTable(t *testing.T) {
	n := newLanguageNormalizer()

	skill := n.NormalizeLanguage(model.ExtractedLanguage{Name: "English", RawLevel: "fluent"})

	if skill.Level != model.LevelAdvanced {
		t.Errorf("expected fluent mapped to advanced, got %s", skill.Level)
	}
	if skill.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", skill.Confidence)
	}
}

func TestNormalizeLanguage_LevelPassthrough(t *testing.T) {
	n := newLanguageNormalizer()

	skill := n.NormalizeLanguage(model.ExtractedLanguage{Name: "Spanish", RawLevel: "native"})

	if skill.Level != model.LevelNative {
		t.Errorf("expected the valid level code trusted, got %s", skill.Level)
	}
	if skill.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", skill.Confidence)
	}
}

func TestNormalizeLanguage_CEFRCode(t *testing.T) {
	n := newLanguageNormalizer()

	skill := n.NormalizeLanguage(model.ExtractedLanguage{Name: "German", RawLevel: "B2"})

	if skill.Level != model.LevelUpperIntermediate {
		t.Errorf("expected B2 mapped to upper_intermediate, got %s", skill.Level)
	}
	if skill.Confidence != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", skill.Confidence)
	}
}

func TestNormalizeLanguage_SubstringFallback(t *testing.T) {
	n := newLanguageNormalizer()

	skill := n.NormalizeLanguage(model.ExtractedLanguage{Name: "Italian", RawLevel: "fluently spoken"})

	if skill.Level != model.LevelAdvanced {
		t.Errorf("expected the substring rule applied, got %s", skill.Level)
	}
	if skill.Confidence != 0.75 {
		t.Errorf("expected confidence 0.75, got %v", skill.Confidence)
	}
}

func TestNormalizeLanguage_UnknownLevel(t *testing.T) {
	n := newLanguageNormalizer()

	skill := n.NormalizeLanguage(model.ExtractedLanguage{Name: "Japanese", RawLevel: "some exposure"})

	if skill.Level != model.LevelIntermediate {
		t.Errorf("expected the intermediate default, got %s", skill.Level)
	}
	if skill.Confidence != 0.3 {
		t.Errorf("expected confidence 0.3, got %v", skill.Confidence)
	}
	if skill.Language != "Japanese" {
		t.Errorf("expected language name kept, got %q", skill.Language)
	}
}
