package extract

import (
	"math"
	"testing"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

func makeFragment(txt string, top float64, order int) *model.TextFragment {
	f := model.NewTextFragment(txt, model.NewBBox(72, top, 540, top+12), 0)
	f.ReadingOrder = order
	return f
}

func makeMapping(sections map[model.SectionType][]*model.TextFragment) *model.SectionMapping {
	m := &model.SectionMapping{
		Sections:          sections,
		SectionConfidence: make(map[model.SectionType]float64),
	}
	for section, frags := range sections {
		for _, f := range frags {
			f.Section = section
		}
	}
	return m
}

func makeFragmentAt(txt string, left, top, right, bottom float64) *model.TextFragment {
	return model.NewTextFragment(txt, model.NewBBox(left, top, right, bottom), 0)
}

func TestExtract_NilMapping(t *testing.T) {
	e := NewExtractor(config.Default())

	data := e.Extract(nil, nil)

	if data == nil {
		t.Fatal("expected non-nil data")
	}
	if len(data.Experiences) != 0 || len(data.Skills) != 0 {
		t.Error("expected empty extraction for nil mapping")
	}
}

func TestExtract_ExperienceRecord(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionExperience: {
			makeFragment("Senior Software Engineer | Acme Corp | 2020 - Present", 100, 0),
			makeFragment("Led a team of five engineers.", 130, 1),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Experiences) != 1 {
		t.Fatalf("expected 1 experience record, got %d", len(data.Experiences))
	}
	rec := data.Experiences[0]
	if rec.Title != "Senior Software Engineer" {
		t.Errorf("expected title %q, got %q", "Senior Software Engineer", rec.Title)
	}
	if rec.Organization != "Acme Corp" {
		t.Errorf("expected organization %q, got %q", "Acme Corp", rec.Organization)
	}
	if rec.DateRange != "2020 - Present" {
		t.Errorf("expected date range %q, got %q", "2020 - Present", rec.DateRange)
	}
	if rec.Description != "Led a team of five engineers." {
		t.Errorf("expected description from the untyped fragment, got %q", rec.Description)
	}
	// Title, organization, date, and description weights present.
	if math.Abs(rec.Confidence-0.9) > 1e-9 {
		t.Errorf("expected confidence 0.9, got %v", rec.Confidence)
	}
	if len(rec.FragmentIDs) != 2 {
		t.Errorf("expected both source fragments recorded, got %v", rec.FragmentIDs)
	}
}

func TestExtract_ExperiencesMostRecentFirst(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionExperience: {
			makeFragment("Developer | Initech Inc | 2016 - 2019", 100, 0),
			makeFragment("Senior Software Engineer | Acme Corp | 2020 - Present", 300, 1),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Experiences) != 2 {
		t.Fatalf("expected 2 experience records, got %d", len(data.Experiences))
	}
	if data.Experiences[0].Organization != "Acme Corp" {
		t.Errorf("expected the 2020 record first, got %q", data.Experiences[0].Organization)
	}
	if data.Experiences[1].Organization != "Initech Inc" {
		t.Errorf("expected the 2016 record second, got %q", data.Experiences[1].Organization)
	}
}

func TestExtract_TableRowsGroupBySharedDateOffset(t *testing.T) {
	e := NewExtractor(config.Default())
	// Two rows only 40 units apart: banding would merge them into one
	// record, row grouping keeps them separate.
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionExperience: {
			makeFragmentAt("2020 - 2021", 72, 100, 150, 112),
			makeFragmentAt("Senior Software Engineer | Acme Corp", 200, 100, 540, 112),
			makeFragmentAt("2016 - 2019", 72, 140, 150, 152),
			makeFragmentAt("Junior Developer | Initech Inc", 200, 140, 540, 152),
		},
	})
	la := &model.LayoutAnalysis{Language: "en", ColumnCount: 2}

	data := e.Extract(mapping, la)

	if len(data.Experiences) != 2 {
		t.Fatalf("expected 2 experience records, got %d", len(data.Experiences))
	}
	first := data.Experiences[0]
	if first.Title != "Senior Software Engineer" || first.Organization != "Acme Corp" {
		t.Errorf("unexpected first row %q / %q", first.Title, first.Organization)
	}
	if first.DateRange != "2020 - 2021" {
		t.Errorf("expected the first row's own date range, got %q", first.DateRange)
	}
	second := data.Experiences[1]
	if second.Title != "Junior Developer" || second.DateRange != "2016 - 2019" {
		t.Errorf("unexpected second row %q / %q", second.Title, second.DateRange)
	}
	if math.Abs(first.Confidence-0.8) > 1e-9 {
		t.Errorf("expected confidence 0.8, got %v", first.Confidence)
	}
}

func TestExtract_SidebarAttachesThreeNearest(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionExperience: {
			makeFragmentAt("2020 - 2021", 60, 100, 140, 112),
			makeFragmentAt("Senior Software Engineer", 140, 100, 220, 112),
			makeFragmentAt("Acme Corp", 140, 130, 220, 142),
			makeFragmentAt("Led a team of five engineers.", 100, 170, 220, 182),
			makeFragmentAt("Paris, France", 140, 160, 220, 172),
		},
	})
	la := &model.LayoutAnalysis{
		Language:      "en",
		ColumnCount:   2,
		HasSidebar:    true,
		SidebarSide:   model.SidebarLeft,
		SidebarColumn: 0,
		Columns: []*model.Column{
			{ID: 0, BBox: model.NewBBox(60, 100, 140, 400)},
			{ID: 1, BBox: model.NewBBox(140, 100, 540, 400)},
		},
	}

	data := e.Extract(mapping, la)

	if len(data.Experiences) != 1 {
		t.Fatalf("expected 1 experience record, got %d", len(data.Experiences))
	}
	rec := data.Experiences[0]
	if rec.Title != "Senior Software Engineer" || rec.Organization != "Acme Corp" {
		t.Errorf("unexpected record %q / %q", rec.Title, rec.Organization)
	}
	if rec.DateRange != "2020 - 2021" {
		t.Errorf("expected the sidebar date anchored, got %q", rec.DateRange)
	}
	if rec.Description != "Led a team of five engineers." {
		t.Errorf("expected the description attached, got %q", rec.Description)
	}
	// The location is the fourth-nearest content component and stays
	// outside the group.
	if rec.Location != "" {
		t.Errorf("expected at most three attached components, got location %q", rec.Location)
	}
	if math.Abs(rec.Confidence-0.9) > 1e-9 {
		t.Errorf("expected confidence 0.9, got %v", rec.Confidence)
	}
}

func TestExtract_Education(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionEducation: {
			makeFragment("Master of Science in Computer Science", 100, 0),
			makeFragment("Stanford University", 130, 1),
			makeFragment("2014 - 2016", 160, 2),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Education) != 1 {
		t.Fatalf("expected 1 education record, got %d", len(data.Education))
	}
	rec := data.Education[0]
	if rec.Degree != "Master of Science in Computer Science" {
		t.Errorf("unexpected degree %q", rec.Degree)
	}
	if rec.Institution != "Stanford University" {
		t.Errorf("unexpected institution %q", rec.Institution)
	}
	if rec.DateRange != "2014 - 2016" {
		t.Errorf("unexpected date range %q", rec.DateRange)
	}
	if math.Abs(rec.Confidence-0.9) > 1e-9 {
		t.Errorf("expected confidence 0.9, got %v", rec.Confidence)
	}
}

func TestExtract_TwoEducationRecords(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionEducation: {
			makeFragment("Master of Science in Computer Science", 100, 0),
			makeFragment("Bachelor of Arts in Mathematics", 160, 1),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Education) != 2 {
		t.Fatalf("expected a second degree line to open a new record, got %d", len(data.Education))
	}
}

func TestExtract_SkillsWithLevelAnnotation(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionSkills: {
			makeFragment("Go, Python, Rust (advanced)", 100, 0),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Skills) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(data.Skills))
	}
	if data.Skills[0].Name != "Go" || data.Skills[1].Name != "Python" {
		t.Errorf("unexpected skill names %q, %q", data.Skills[0].Name, data.Skills[1].Name)
	}
	if data.Skills[2].Name != "Rust" || data.Skills[2].RawLevel != "advanced" {
		t.Errorf("expected the level annotation split off, got %q / %q",
			data.Skills[2].Name, data.Skills[2].RawLevel)
	}
}

func TestExtract_LanguagesWithCertScore(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionLanguages: {
			makeFragment("English (fluent), TOEIC 950", 100, 0),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Languages) != 2 {
		t.Fatalf("expected 2 language entries, got %d", len(data.Languages))
	}
	if data.Languages[0].Name != "English" || data.Languages[0].RawLevel != "fluent" {
		t.Errorf("unexpected first entry %q / %q", data.Languages[0].Name, data.Languages[0].RawLevel)
	}
	if data.Languages[1].Name != "TOEIC" || data.Languages[1].RawLevel != "TOEIC 950" {
		t.Errorf("unexpected certification entry %q / %q", data.Languages[1].Name, data.Languages[1].RawLevel)
	}
}

func TestExtract_Certifications(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionCertifications: {
			makeFragment("AWS Certified Solutions Architect, 2021", 100, 0),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Certifications) != 1 {
		t.Fatalf("expected 1 certification, got %d", len(data.Certifications))
	}
	cert := data.Certifications[0]
	if cert.Name != "AWS Certified Solutions Architect" {
		t.Errorf("expected the year stripped from the name, got %q", cert.Name)
	}
	if cert.Year != 2021 {
		t.Errorf("expected year 2021, got %d", cert.Year)
	}
	if cert.Issuer != "aws" {
		t.Errorf("expected issuer %q, got %q", "aws", cert.Issuer)
	}
}

func TestExtract_CertificationsSkipDateLines(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionCertifications: {
			makeFragment("2020 - 2021", 100, 0),
			makeFragment("AWS Certified Solutions Architect, 2021", 130, 1),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.Certifications) != 1 {
		t.Fatalf("expected the date line skipped, got %d certifications", len(data.Certifications))
	}
	if data.Certifications[0].Name != "AWS Certified Solutions Architect" {
		t.Errorf("unexpected certification %q", data.Certifications[0].Name)
	}
}

func TestExtract_PersonalInfoFromUnmapped(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{})
	mapping.Unmapped = []*model.TextFragment{
		makeFragment("Jane Doe", 40, 0),
		makeFragment("jane.doe@example.com", 60, 1),
		makeFragment("+1 202 555 0143", 80, 2),
	}

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	info := data.PersonalInfo
	if info.Name != "Jane Doe" {
		t.Errorf("expected name %q, got %q", "Jane Doe", info.Name)
	}
	if info.Email != "jane.doe@example.com" {
		t.Errorf("expected email captured, got %q", info.Email)
	}
	if info.Phone != "+1 202 555 0143" {
		t.Errorf("expected phone captured, got %q", info.Phone)
	}
	if math.Abs(info.Confidence-1.0) > 1e-9 {
		t.Errorf("expected confidence 1.0 with all three fields, got %v", info.Confidence)
	}
}

func TestExtract_PersonalInfoPhoneIgnoresDateRange(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{})
	// A year range matches the phone shape but must not claim the
	// phone slot ahead of the real number.
	mapping.Unmapped = []*model.TextFragment{
		makeFragment("2016 - 2019", 40, 0),
		makeFragment("+1 202 555 0143", 60, 1),
	}

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if data.PersonalInfo.Phone != "+1 202 555 0143" {
		t.Errorf("expected the real phone number, got %q", data.PersonalInfo.Phone)
	}
	for _, id := range data.PersonalInfo.FragmentIDs {
		if id == mapping.Unmapped[0].ID {
			t.Error("expected the date fragment left out of the personal info sources")
		}
	}
}

func TestExtract_ReferencesSkipPlaceholder(t *testing.T) {
	e := NewExtractor(config.Default())
	mapping := makeMapping(map[model.SectionType][]*model.TextFragment{
		model.SectionReferences: {
			makeFragment("References available upon request", 100, 0),
		},
	})

	data := e.Extract(mapping, &model.LayoutAnalysis{Language: "en"})

	if len(data.References) != 0 {
		t.Errorf("expected the placeholder line skipped, got %v", data.References)
	}
}
