package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Kojynth/cvmatch-sub004/model"
)

// Field score components. A field's score is the sum of a non-empty
// base, a format-validity share, a content-richness share, and a small
// source-traceability bonus, clamped to [0,1].
const (
	nonEmptyBase     = 0.3
	formatWeight     = 0.4
	richnessWeight   = 0.3
	sourceBonus      = 0.1
	richnessWordSat  = 12.0
	richnessItemSat  = 10.0
	maskedValueRunes = 24
)

var urlFormatPattern = regexp.MustCompile(`^(https?://)?[\w.-]+\.[a-z]{2,}(/\S*)?$`)

// fieldCheck is one format-validity verdict contributing to a field's
// score and to the section validation ratio.
type fieldCheck struct {
	name   string
	passed bool
}

// scoreTextField scores a free-text field: format validity here is a
// length-sanity check, richness saturates on word count.
func scoreTextField(name, value string, hasSource bool) model.FieldConfidence {
	value = strings.TrimSpace(value)
	fc := model.FieldConfidence{Field: name, MaskedValue: maskValue(value)}
	if value == "" {
		fc.Rationale = "empty"
		return fc
	}
	score := nonEmptyBase
	sane := utf8.RuneCountInString(value) >= 2 && utf8.RuneCountInString(value) <= 500
	if sane {
		score += formatWeight
		fc.Validations = append(fc.Validations, "length")
	}
	words := float64(len(strings.Fields(value)))
	richness := words / richnessWordSat
	if richness > 1 {
		richness = 1
	}
	score += richnessWeight * richness
	if hasSource {
		score += sourceBonus
	}
	fc.Score = model.ClampScore(score)
	return fc
}

// scoreValidatedField scores a field whose format validity was already
// decided upstream (email, phone, date range).
func scoreValidatedField(name, value string, valid, hasSource bool) model.FieldConfidence {
	value = strings.TrimSpace(value)
	fc := model.FieldConfidence{Field: name, MaskedValue: maskValue(value)}
	if value == "" {
		fc.Rationale = "empty"
		return fc
	}
	score := nonEmptyBase + richnessWeight
	if valid {
		score += formatWeight
		fc.Validations = append(fc.Validations, "format")
	} else {
		fc.Rationale = "format check failed"
	}
	if hasSource {
		score += sourceBonus
	}
	fc.Score = model.ClampScore(score)
	return fc
}

// scoreListField scores a list-valued field; richness saturates on
// item count.
func scoreListField(name string, items int, hasSource bool) model.FieldConfidence {
	fc := model.FieldConfidence{Field: name, MaskedValue: fmt.Sprintf("%d items", items)}
	if items == 0 {
		fc.Rationale = "empty"
		return fc
	}
	richness := float64(items) / richnessItemSat
	if richness > 1 {
		richness = 1
	}
	score := nonEmptyBase + formatWeight + richnessWeight*richness
	if hasSource {
		score += sourceBonus
	}
	fc.Score = model.ClampScore(score)
	return fc
}

// maskValue truncates and redacts a value so field records are safe to
// log: emails and anything phone-like keep only a short prefix.
func maskValue(value string) string {
	if value == "" {
		return ""
	}
	if strings.ContainsRune(value, '@') || looksNumeric(value) {
		r := []rune(value)
		keep := 3
		if len(r) < keep {
			keep = len(r)
		}
		return string(r[:keep]) + "***"
	}
	r := []rune(value)
	if len(r) > maskedValueRunes {
		return string(r[:maskedValueRunes]) + "…"
	}
	return value
}

func looksNumeric(value string) bool {
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 6
}

// sectionMetrics folds a field list into the per-section aggregate:
// confidence is the mean field score, completeness the non-empty
// fraction, density the mean richness, validation the passed fraction
// of explicit checks.
func sectionMetrics(section model.SectionType, fields []model.FieldConfidence, checks []fieldCheck) model.SectionQualityMetrics {
	sec := model.SectionQualityMetrics{Section: section, Fields: fields}
	if len(fields) == 0 {
		return sec
	}
	var confSum, density float64
	nonEmpty := 0
	for _, f := range fields {
		confSum += f.Score
		if f.MaskedValue != "" && f.Rationale != "empty" {
			nonEmpty++
			density += f.Score
		}
	}
	sec.Confidence = model.ClampScore(confSum / float64(len(fields)))
	sec.Completeness = float64(nonEmpty) / float64(len(fields))
	if nonEmpty > 0 {
		sec.DataDensity = model.ClampScore(density / float64(nonEmpty))
	}
	if len(checks) == 0 {
		sec.Validation = 1
	} else {
		passed := 0
		for _, c := range checks {
			if c.passed {
				passed++
			}
		}
		sec.Validation = float64(passed) / float64(len(checks))
	}
	return sec
}

func (s *Scorer) scorePersonalInfo(info model.NormalizedPersonalInfo) (model.SectionQualityMetrics, bool) {
	if info.Name == "" && info.Contact.Email == "" && info.Contact.Phone == "" && info.Location == nil {
		return model.SectionQualityMetrics{}, false
	}
	var fields []model.FieldConfidence
	var checks []fieldCheck

	fields = append(fields, scoreTextField("name", info.Name, true))
	fields = append(fields, scoreValidatedField("email", info.Contact.Email, info.Contact.EmailValid, true))
	if info.Contact.Email != "" {
		checks = append(checks, fieldCheck{name: "email", passed: info.Contact.EmailValid})
	}
	fields = append(fields, scoreValidatedField("phone", info.Contact.Phone, info.Contact.PhoneValid, true))
	if info.Contact.Phone != "" {
		checks = append(checks, fieldCheck{name: "phone", passed: info.Contact.PhoneValid})
	}
	var loc string
	locResolved := false
	if info.Location != nil {
		loc = info.Location.Raw
		locResolved = info.Location.CountryISO != "" || info.Location.City != ""
	}
	fields = append(fields, scoreValidatedField("location", loc, locResolved, true))
	for _, link := range info.Links {
		checks = append(checks, fieldCheck{name: "link", passed: urlFormatPattern.MatchString(strings.ToLower(link))})
	}
	return sectionMetrics(model.SectionPersonalInfo, fields, checks), true
}

func (s *Scorer) scoreExperiences(records []model.NormalizedExperience) (model.SectionQualityMetrics, bool) {
	if len(records) == 0 {
		return model.SectionQualityMetrics{}, false
	}
	var fields []model.FieldConfidence
	var checks []fieldCheck
	for i, rec := range records {
		hasSource := len(rec.FragmentIDs) > 0
		prefix := fmt.Sprintf("experience[%d].", i)

		var title string
		if rec.Title != nil {
			title = rec.Title.Normalized
		}
		fields = append(fields, scoreTextField(prefix+"title", title, hasSource))
		fields = append(fields, scoreTextField(prefix+"organization", rec.Organization, hasSource))
		if rec.Organization != "" {
			checks = append(checks, fieldCheck{name: prefix + "organization", passed: plausibleOrgName(rec.Organization)})
		}
		fields = append(fields, scoreValidatedField(prefix+"dates", rangeRaw(rec.DateRange), rangeResolved(rec.DateRange), hasSource))
		if rec.DateRange != nil {
			checks = append(checks, fieldCheck{name: prefix + "dates", passed: rangeResolved(rec.DateRange)})
		}
		fields = append(fields, scoreTextField(prefix+"description", rec.Description, hasSource))
	}
	return sectionMetrics(model.SectionExperience, fields, checks), true
}

func (s *Scorer) scoreEducation(records []model.NormalizedEducation) (model.SectionQualityMetrics, bool) {
	if len(records) == 0 {
		return model.SectionQualityMetrics{}, false
	}
	var fields []model.FieldConfidence
	var checks []fieldCheck
	for i, rec := range records {
		prefix := fmt.Sprintf("education[%d].", i)
		fields = append(fields, scoreTextField(prefix+"degree", rec.Degree, true))
		fields = append(fields, scoreTextField(prefix+"institution", rec.Institution, true))
		if rec.Institution != "" {
			checks = append(checks, fieldCheck{name: prefix + "institution", passed: plausibleOrgName(rec.Institution)})
		}
		fields = append(fields, scoreValidatedField(prefix+"dates", rangeRaw(rec.DateRange), rangeResolved(rec.DateRange), true))
	}
	return sectionMetrics(model.SectionEducation, fields, checks), true
}

func (s *Scorer) scoreSkills(skills []model.ExtractedSkill) (model.SectionQualityMetrics, bool) {
	if len(skills) == 0 {
		return model.SectionQualityMetrics{}, false
	}
	fields := []model.FieldConfidence{scoreListField("skills", len(skills), true)}
	return sectionMetrics(model.SectionSkills, fields, nil), true
}

func (s *Scorer) scoreLanguages(langs []model.NormalizedLanguageSkill) (model.SectionQualityMetrics, bool) {
	if len(langs) == 0 {
		return model.SectionQualityMetrics{}, false
	}
	var fields []model.FieldConfidence
	var checks []fieldCheck
	for i, l := range langs {
		name := fmt.Sprintf("language[%d]", i)
		valid := model.ValidProficiencyLevel(string(l.Level))
		fields = append(fields, scoreValidatedField(name, l.Raw, valid, true))
		checks = append(checks, fieldCheck{name: name, passed: valid})
		if l.CanonicalName != "" {
			checks = append(checks, fieldCheck{name: name + ".score", passed: l.ScoreValid})
		}
	}
	return sectionMetrics(model.SectionLanguages, fields, checks), true
}

func (s *Scorer) scoreProjects(projects []model.ExtractedProject) (model.SectionQualityMetrics, bool) {
	if len(projects) == 0 {
		return model.SectionQualityMetrics{}, false
	}
	var fields []model.FieldConfidence
	var checks []fieldCheck
	for i, p := range projects {
		prefix := fmt.Sprintf("project[%d].", i)
		hasSource := len(p.FragmentIDs) > 0
		fields = append(fields, scoreTextField(prefix+"name", p.Name, hasSource))
		fields = append(fields, scoreTextField(prefix+"description", p.Description, hasSource))
		if p.URL != "" {
			checks = append(checks, fieldCheck{name: prefix + "url", passed: urlFormatPattern.MatchString(strings.ToLower(p.URL))})
		}
	}
	return sectionMetrics(model.SectionProjects, fields, checks), true
}

func rangeRaw(r *model.NormalizedDateRange) string {
	if r == nil {
		return ""
	}
	return r.Raw
}

// rangeResolved reports whether at least the start of the range parsed
// to a usable precision.
func rangeResolved(r *model.NormalizedDateRange) bool {
	if r == nil || r.Start == nil {
		return false
	}
	return r.Start.Precision != model.PrecisionUnknown
}
