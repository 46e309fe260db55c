package quality

import (
	"strings"
	"testing"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

func resolvedRange(raw string, startYear int, ongoing bool) *model.NormalizedDateRange {
	r := &model.NormalizedDateRange{
		Raw:   raw,
		Start: &model.NormalizedDate{Year: startYear, Precision: model.PrecisionYear, Confidence: 0.8},
	}
	if ongoing {
		r.End = &model.NormalizedDate{Ongoing: true, Precision: model.PrecisionOngoing, Confidence: 0.9}
	}
	return r
}

func richNormalizedData() *model.NormalizedData {
	return &model.NormalizedData{
		PersonalInfo: model.NormalizedPersonalInfo{
			Name: "Jane Doe",
			Contact: model.NormalizedContact{
				Email:      "jane.doe@example.com",
				EmailValid: true,
				Phone:      "+33 6 12 34 56 78",
				PhoneValid: true,
			},
		},
		Experiences: []model.NormalizedExperience{{
			Title:        &model.NormalizedJobTitle{Normalized: "Senior Software Engineer"},
			Organization: "Acme Corp",
			DateRange:    resolvedRange("2020 - Present", 2020, true),
			Description:  "Led a team of five engineers building payment infrastructure.",
			Confidence:   0.9,
			FragmentIDs:  []string{"frag-1"},
		}},
		Education: []model.NormalizedEducation{{
			Degree:      "Master of Science in Computer Science",
			Institution: "Stanford University",
			DateRange:   resolvedRange("2014 - 2016", 2014, false),
			Confidence:  0.9,
		}},
		Skills: []model.ExtractedSkill{
			{Name: "Go"}, {Name: "Python"}, {Name: "Rust"},
		},
		Languages: []model.NormalizedLanguageSkill{{
			Language:   "English",
			Level:      model.LevelAdvanced,
			Raw:        "English fluent",
			Confidence: 0.9,
		}},
	}
}

func TestScore_EmptyInput(t *testing.T) {
	s := NewScorer(config.Default())

	m := s.Score(nil, nil, nil, nil)

	if m == nil {
		t.Fatal("expected non-nil metrics")
	}
	if len(m.Sections) != 0 {
		t.Errorf("expected no section metrics, got %d", len(m.Sections))
	}
	if m.GlobalScore != 0 {
		t.Errorf("expected zero global score, got %v", m.GlobalScore)
	}
	// Nothing checkable scores perfect rather than failing.
	if m.Extraction.DateAccuracy != 1 || m.Extraction.EntityAccuracy != 1 {
		t.Errorf("expected accuracy 1 with nothing to check, got %v / %v",
			m.Extraction.DateAccuracy, m.Extraction.EntityAccuracy)
	}
	if m.Extraction.OCRQuality != nil {
		t.Error("expected no OCR quality without OCR metadata")
	}
}

func TestScore_RichDocument(t *testing.T) {
	s := NewScorer(config.Default())
	normalized := richNormalizedData()

	m := s.Score(model.NewExtractedData(), &model.LayoutAnalysis{Confidence: 0.8}, nil, normalized)

	if m.GlobalScore <= 0 || m.GlobalScore > 1 {
		t.Errorf("global score out of range: %v", m.GlobalScore)
	}
	if m.Extraction.DateAccuracy != 1 {
		t.Errorf("expected date accuracy 1 with resolved ranges, got %v", m.Extraction.DateAccuracy)
	}
	if m.Extraction.EntityAccuracy != 1 {
		t.Errorf("expected entity accuracy 1, got %v", m.Extraction.EntityAccuracy)
	}
	if m.Extraction.LayoutAccuracy != 0.8 {
		t.Errorf("expected layout accuracy from the layout stage, got %v", m.Extraction.LayoutAccuracy)
	}
	for _, section := range []model.SectionType{
		model.SectionPersonalInfo, model.SectionExperience,
		model.SectionEducation, model.SectionSkills, model.SectionLanguages,
	} {
		sec, ok := m.Sections[section]
		if !ok {
			t.Errorf("expected metrics for section %s", section)
			continue
		}
		if sec.Confidence <= 0 || sec.Confidence > 1 {
			t.Errorf("section %s confidence out of range: %v", section, sec.Confidence)
		}
		if sec.Completeness < 0 || sec.Completeness > 1 {
			t.Errorf("section %s completeness out of range: %v", section, sec.Completeness)
		}
	}
	for _, w := range m.Warnings {
		if strings.Contains(w, "date parsing accuracy") {
			t.Errorf("unexpected date warning: %q", w)
		}
	}
}

func TestScore_UnresolvedDatesWarn(t *testing.T) {
	s := NewScorer(config.Default())
	normalized := &model.NormalizedData{
		Experiences: []model.NormalizedExperience{{
			Organization: "Acme Corp",
			DateRange: &model.NormalizedDateRange{
				Raw:   "sometime",
				Start: &model.NormalizedDate{Precision: model.PrecisionUnknown, Confidence: 0.1},
			},
		}},
	}

	m := s.Score(model.NewExtractedData(), nil, nil, normalized)

	if m.Extraction.DateAccuracy != 0 {
		t.Errorf("expected date accuracy 0, got %v", m.Extraction.DateAccuracy)
	}
	found := false
	for _, w := range m.Warnings {
		if strings.Contains(w, "date parsing accuracy") {
			found = true
		}
	}
	if !found {
		t.Error("expected a date accuracy warning")
	}
}

func TestScore_OCRQualityPointer(t *testing.T) {
	s := NewScorer(config.Default())
	data := model.NewExtractedData()
	q := 0.8
	data.OCRQuality = &q

	m := s.Score(data, nil, nil, richNormalizedData())

	if m.Extraction.OCRQuality == nil {
		t.Fatal("expected OCR quality present")
	}
	if *m.Extraction.OCRQuality != 0.8 {
		t.Errorf("expected OCR quality 0.8, got %v", *m.Extraction.OCRQuality)
	}
}

func TestScore_ZeroValueDataNoOCRScore(t *testing.T) {
	s := NewScorer(config.Default())

	m := s.Score(&model.ExtractedData{}, nil, nil, richNormalizedData())

	if m.Extraction.OCRQuality != nil {
		t.Errorf("expected no OCR sub-score without metadata, got %v", *m.Extraction.OCRQuality)
	}
}

func TestScore_SectionBoundaryPenalty(t *testing.T) {
	s := NewScorer(config.Default())
	mapping := &model.SectionMapping{
		Risks: []model.ContaminationRisk{
			{Kind: model.RiskSpatialConflict, Level: 0.8},
			{Kind: model.RiskSpatialConflict, Level: 0.9},
			{Kind: model.RiskLowConfidence, Level: 1.0},
		},
	}

	m := s.Score(model.NewExtractedData(), nil, mapping, richNormalizedData())

	// Two high spatial conflicts, 0.1 penalty each.
	if m.Extraction.SectionBoundary != 0.8 {
		t.Errorf("expected section boundary 0.8, got %v", m.Extraction.SectionBoundary)
	}
}

func TestScore_ContactValuesMasked(t *testing.T) {
	s := NewScorer(config.Default())

	m := s.Score(model.NewExtractedData(), nil, nil, richNormalizedData())

	sec, ok := m.Sections[model.SectionPersonalInfo]
	if !ok {
		t.Fatal("expected personal info metrics")
	}
	for _, f := range sec.Fields {
		if strings.Contains(f.MaskedValue, "@") {
			t.Errorf("field %s leaks the email: %q", f.Field, f.MaskedValue)
		}
		if strings.Contains(f.MaskedValue, "12 34 56 78") {
			t.Errorf("field %s leaks the phone: %q", f.Field, f.MaskedValue)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := NewScorer(config.Default())

	first := s.Score(model.NewExtractedData(), &model.LayoutAnalysis{Confidence: 0.7}, nil, richNormalizedData())
	second := s.Score(model.NewExtractedData(), &model.LayoutAnalysis{Confidence: 0.7}, nil, richNormalizedData())

	if first.GlobalScore != second.GlobalScore || first.Completeness != second.Completeness {
		t.Errorf("scores changed between runs: %v/%v vs %v/%v",
			first.GlobalScore, first.Completeness, second.GlobalScore, second.Completeness)
	}
	if len(first.Warnings) != len(second.Warnings) {
		t.Errorf("warnings changed between runs: %d vs %d", len(first.Warnings), len(second.Warnings))
	}
	if len(first.Log) != len(second.Log) {
		t.Errorf("log length changed between runs: %d vs %d", len(first.Log), len(second.Log))
	}
}

func TestScore_LogEntries(t *testing.T) {
	s := NewScorer(config.Default())

	m := s.Score(model.NewExtractedData(), &model.LayoutAnalysis{}, &model.SectionMapping{}, richNormalizedData())

	if len(m.Log) != 5 {
		t.Fatalf("expected 5 log entries with all stages present, got %d", len(m.Log))
	}
	stages := []string{"layout", "section", "extract", "normalize", "quality"}
	for i, want := range stages {
		if m.Log[i].Stage != want {
			t.Errorf("log entry %d: expected stage %q, got %q", i, want, m.Log[i].Stage)
		}
	}
}
