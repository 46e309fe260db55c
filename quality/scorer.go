// Package quality computes per-field, per-section, and global
// confidence metrics for an analyzed document, together with a
// deterministic processing log and advisory warnings.
package quality

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

// Fixed advisory thresholds. They generate text only and never drive
// control flow.
const (
	warnGlobalScore  = 0.6
	warnDateAccuracy = 0.8
	warnSectionScore = 0.5
	warnCompleteness = 0.3
)

// Scorer derives quality metrics from the outputs of the four earlier
// stages. It holds no per-document state.
type Scorer struct {
	cfg *config.Config
}

// NewScorer creates a quality scorer.
func NewScorer(cfg *config.Config) *Scorer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Scorer{cfg: cfg}
}

// Score computes the global quality metrics. All sub-scores are
// clamped to [0,1] and the output is deterministic for identical
// inputs.
func (s *Scorer) Score(data *model.ExtractedData, layout *model.LayoutAnalysis, mapping *model.SectionMapping, normalized *model.NormalizedData) *model.GlobalQualityMetrics {
	metrics := &model.GlobalQualityMetrics{
		Sections: map[model.SectionType]model.SectionQualityMetrics{},
	}
	if normalized == nil {
		normalized = &model.NormalizedData{}
	}
	if data == nil {
		data = model.NewExtractedData()
	}

	if sec, ok := s.scorePersonalInfo(normalized.PersonalInfo); ok {
		metrics.Sections[model.SectionPersonalInfo] = sec
	}
	if sec, ok := s.scoreExperiences(normalized.Experiences); ok {
		metrics.Sections[model.SectionExperience] = sec
	}
	if sec, ok := s.scoreEducation(normalized.Education); ok {
		metrics.Sections[model.SectionEducation] = sec
	}
	if sec, ok := s.scoreSkills(normalized.Skills); ok {
		metrics.Sections[model.SectionSkills] = sec
	}
	if sec, ok := s.scoreLanguages(normalized.Languages); ok {
		metrics.Sections[model.SectionLanguages] = sec
	}
	if sec, ok := s.scoreProjects(normalized.Projects); ok {
		metrics.Sections[model.SectionProjects] = sec
	}

	metrics.GlobalScore = s.globalScore(metrics.Sections)
	metrics.Completeness = s.completeness(metrics.Sections)
	metrics.Extraction = s.extractionQuality(data, layout, mapping, normalized)
	metrics.Warnings, metrics.Recommendations = s.advisories(metrics)
	metrics.Log = s.buildLog(data, layout, mapping, normalized, metrics)
	return metrics
}

// globalScore is the weighted mean across scored sections, normalized
// by the weights actually present so a sparse CV is not punished for
// sections it never had.
func (s *Scorer) globalScore(sections map[model.SectionType]model.SectionQualityMetrics) float64 {
	w := s.cfg.SectionWeights
	weights := map[model.SectionType]float64{
		model.SectionExperience:   w.Experience,
		model.SectionPersonalInfo: w.PersonalInfo,
		model.SectionSkills:       w.Skills,
		model.SectionEducation:    w.Education,
		model.SectionLanguages:    w.Languages,
		model.SectionProjects:     w.Projects,
	}
	var sum, present float64
	for section, weight := range weights {
		sec, ok := sections[section]
		if !ok {
			continue
		}
		sum += weight * sec.Confidence
		present += weight
	}
	if present == 0 {
		return 0
	}
	return model.ClampScore(sum / present)
}

func (s *Scorer) completeness(sections map[model.SectionType]model.SectionQualityMetrics) float64 {
	if len(sections) == 0 {
		return 0
	}
	var sum float64
	for _, sec := range sections {
		sum += sec.Completeness
	}
	return model.ClampScore(sum / float64(len(sections)))
}

func (s *Scorer) extractionQuality(data *model.ExtractedData, layout *model.LayoutAnalysis, mapping *model.SectionMapping, normalized *model.NormalizedData) model.ExtractionQuality {
	eq := model.ExtractionQuality{
		DateAccuracy:   dateAccuracy(normalized),
		EntityAccuracy: entityAccuracy(normalized),
	}
	eq.SectionBoundary = 1.0
	if mapping != nil {
		high := mapping.HighRiskCount(s.cfg.Thresholds.MaxConflictRisk)
		eq.SectionBoundary = model.ClampScore(1 - 0.1*float64(high))
	}
	if layout != nil {
		eq.LayoutAccuracy = model.ClampScore(layout.Confidence)
	}
	if data.OCRQuality != nil {
		ocr := model.ClampScore(*data.OCRQuality)
		eq.OCRQuality = &ocr
	}
	return eq
}

// dateAccuracy is the fraction of date fields that resolved to a
// usable precision. Ongoing counts as resolved; a document with no
// dates scores 1.
func dateAccuracy(normalized *model.NormalizedData) float64 {
	var total, resolved int
	count := func(d *model.NormalizedDate) {
		if d == nil {
			return
		}
		total++
		if d.Ongoing || d.Precision != model.PrecisionUnknown {
			resolved++
		}
	}
	countRange := func(r *model.NormalizedDateRange) {
		if r == nil {
			return
		}
		count(r.Start)
		count(r.End)
	}
	for i := range normalized.Experiences {
		countRange(normalized.Experiences[i].DateRange)
	}
	for i := range normalized.Education {
		countRange(normalized.Education[i].DateRange)
	}
	if total == 0 {
		return 1
	}
	return float64(resolved) / float64(total)
}

// entityAccuracy runs shape heuristics over recognized entities:
// organization names must look like names, the email must have
// validated. A document with no checkable entities scores 1.
func entityAccuracy(normalized *model.NormalizedData) float64 {
	var total, passed int
	for i := range normalized.Experiences {
		org := normalized.Experiences[i].Organization
		if org == "" {
			continue
		}
		total++
		if plausibleOrgName(org) {
			passed++
		}
	}
	for i := range normalized.Education {
		inst := normalized.Education[i].Institution
		if inst == "" {
			continue
		}
		total++
		if plausibleOrgName(inst) {
			passed++
		}
	}
	if normalized.PersonalInfo.Contact.Email != "" {
		total++
		if normalized.PersonalInfo.Contact.EmailValid {
			passed++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(passed) / float64(total)
}

func plausibleOrgName(name string) bool {
	words := strings.Fields(name)
	if len(words) == 0 || len(words) > 8 {
		return false
	}
	r := []rune(words[0])[0]
	return !unicode.IsLetter(r) || unicode.IsUpper(r)
}

func (s *Scorer) advisories(m *model.GlobalQualityMetrics) (warnings, recommendations []string) {
	if m.GlobalScore < warnGlobalScore {
		warnings = append(warnings, fmt.Sprintf("global quality score %.2f is below %.2f", m.GlobalScore, warnGlobalScore))
		recommendations = append(recommendations, "review the source document quality; low overall confidence usually means sparse or poorly segmented input")
	}
	if m.Extraction.DateAccuracy < warnDateAccuracy {
		warnings = append(warnings, fmt.Sprintf("date parsing accuracy %.2f is below %.2f", m.Extraction.DateAccuracy, warnDateAccuracy))
		recommendations = append(recommendations, "check date formats in experience and education entries; unusual separators reduce parse precision")
	}
	for _, section := range model.AllSectionTypes() {
		sec, ok := m.Sections[section]
		if !ok {
			continue
		}
		if sec.Confidence < warnSectionScore {
			warnings = append(warnings, fmt.Sprintf("section %q confidence %.2f is below %.2f", section, sec.Confidence, warnSectionScore))
		}
		if sec.Completeness < warnCompleteness {
			warnings = append(warnings, fmt.Sprintf("section %q completeness %.2f is below %.2f", section, sec.Completeness, warnCompleteness))
			recommendations = append(recommendations, fmt.Sprintf("section %q has mostly empty fields; verify that its fragments were mapped correctly", section))
		}
	}
	return warnings, recommendations
}

func (s *Scorer) buildLog(data *model.ExtractedData, layout *model.LayoutAnalysis, mapping *model.SectionMapping, normalized *model.NormalizedData, m *model.GlobalQualityMetrics) []model.ProcessingLogEntry {
	var log []model.ProcessingLogEntry
	if layout != nil {
		log = append(log, model.ProcessingLogEntry{
			Stage:   "layout",
			Step:    "analyze",
			Message: "layout analysis completed",
			Detail: map[string]any{
				"columns":    layout.ColumnCount,
				"language":   layout.Language,
				"script":     string(layout.Script),
				"rtl":        layout.IsRTLLayout,
				"sidebar":    layout.HasSidebar,
				"confidence": layout.Confidence,
			},
		})
	}
	if mapping != nil {
		sections := make([]string, 0, len(mapping.Sections))
		for section := range mapping.Sections {
			sections = append(sections, string(section))
		}
		sort.Strings(sections)
		log = append(log, model.ProcessingLogEntry{
			Stage:   "section",
			Step:    "map",
			Message: "section mapping completed",
			Detail: map[string]any{
				"sections": sections,
				"unmapped": len(mapping.Unmapped),
				"risks":    len(mapping.Risks),
				"quality":  mapping.Quality,
			},
		})
	}
	log = append(log, model.ProcessingLogEntry{
		Stage:   "extract",
		Step:    "components",
		Message: "component extraction completed",
		Detail: map[string]any{
			"experiences":    len(data.Experiences),
			"education":      len(data.Education),
			"skills":         len(data.Skills),
			"languages":      len(data.Languages),
			"certifications": len(data.Certifications),
			"projects":       len(data.Projects),
		},
	})
	log = append(log, model.ProcessingLogEntry{
		Stage:   "normalize",
		Step:    "fields",
		Message: "field normalization completed",
		Detail: map[string]any{
			"email_valid": normalized.PersonalInfo.Contact.EmailValid,
			"phone_valid": normalized.PersonalInfo.Contact.PhoneValid,
		},
	})
	log = append(log, model.ProcessingLogEntry{
		Stage:   "quality",
		Step:    "score",
		Message: "quality scoring completed",
		Detail: map[string]any{
			"global_score":  m.GlobalScore,
			"completeness":  m.Completeness,
			"date_accuracy": m.Extraction.DateAccuracy,
			"sections":      len(m.Sections),
		},
	})
	return log
}
