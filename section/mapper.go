// Package section assigns each text fragment to one semantic CV
// section using multi-language keyword dictionaries combined with
// spatial anti-contamination guardrails. A fragment whose best
// candidate is rejected stays unmapped; rejection is never an error.
package section

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
	"github.com/Kojynth/cvmatch-sub004/similarity"
)

// scoreNorm divides the raw keyword score before clamping into [0,1].
// Two exact single-word matches (or one exact match on a header-like
// fragment) are enough to clear the default mapping threshold.
const scoreNorm = 2.0

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+|00)?[\d][\d .()\-]{7,}\d`)
	urlPattern   = regexp.MustCompile(`(?i)(https?://|www\.|linkedin\.com/|github\.com/)\S+`)
)

// Mapper maps fragments to sections.
type Mapper struct {
	cfg    *config.Config
	scorer similarity.Scorer
}

// NewMapper creates a mapper using the default similarity scorer.
func NewMapper(cfg *config.Config) *Mapper {
	return &Mapper{cfg: cfg, scorer: similarity.NewScorer()}
}

// NewMapperWithScorer creates a mapper with a custom similarity
// implementation.
func NewMapperWithScorer(cfg *config.Config, s similarity.Scorer) *Mapper {
	return &Mapper{cfg: cfg, scorer: s}
}

// Map assigns each fragment to at most one section. Fragments are
// processed in reading order; every fragment ends up either in exactly
// one section's list or in the unmapped list.
func (m *Mapper) Map(fragments []*model.TextFragment, la *model.LayoutAnalysis) *model.SectionMapping {
	mapping := &model.SectionMapping{
		Sections:          make(map[model.SectionType][]*model.TextFragment),
		SectionConfidence: make(map[model.SectionType]float64),
	}
	if len(fragments) == 0 {
		return mapping
	}

	ordered := append([]*model.TextFragment(nil), fragments...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ReadingOrder < ordered[j].ReadingOrder
	})

	lang := la.Language
	if lang == "" {
		lang = "en"
	}
	medianFont := medianFontSize(ordered)

	var assigned []assignment
	centroids := make(map[model.SectionType]*runningCentroid)

	for _, f := range ordered {
		best := m.bestCandidate(f, lang, medianFont)
		if best == nil || best.Confidence < m.cfg.Thresholds.MinSectionScore {
			level := 1.0
			if best != nil {
				level = 1 - best.Confidence
			}
			mapping.Risks = append(mapping.Risks, model.ContaminationRisk{
				FragmentID:     f.ID,
				Kind:           model.RiskLowConfidence,
				Level:          model.ClampScore(level),
				Details:        "no section candidate reached the mapping threshold",
				Recommendation: "review fragment manually or extend the keyword tables",
			})
			mapping.Unmapped = append(mapping.Unmapped, f)
			continue
		}

		// Spatial conflict guardrail: adjacent fragments already
		// assigned to a different section raise the risk; above the
		// severity threshold the assignment is rejected.
		conflictRisk, conflicts, nearest := m.conflictRisk(f, best.Section, assigned)
		if conflicts > 0 {
			risk := model.ContaminationRisk{
				FragmentID: f.ID,
				Kind:       model.RiskSpatialConflict,
				Level:      conflictRisk,
				Details: fmt.Sprintf("%d adjacent fragment(s) in other sections, nearest at %.0f units",
					conflicts, nearest),
				Recommendation: "verify the section boundary around this fragment",
			}
			mapping.Risks = append(mapping.Risks, risk)
			if conflictRisk > m.cfg.Thresholds.MaxConflictRisk {
				mapping.Unmapped = append(mapping.Unmapped, f)
				continue
			}
		}

		// Dispersion guardrail is informational only: a fragment far
		// from its section's running horizontal centroid is flagged
		// but still assigned.
		if c := centroids[best.Section]; c != nil {
			if dev := absFloat(f.BBox.Center().X - c.mean()); dev > m.cfg.Thresholds.DispersionRadius {
				mapping.Risks = append(mapping.Risks, model.ContaminationRisk{
					FragmentID: f.ID,
					Kind:       model.RiskSectionDispersion,
					Level:      model.ClampScore(dev / (2 * m.cfg.Thresholds.DispersionRadius)),
					Details: fmt.Sprintf("fragment deviates %.0f units from the %s centroid",
						dev, best.Section),
					Recommendation: "check whether the section spans multiple columns",
				})
			}
		}

		f.Section = best.Section
		mapping.Sections[best.Section] = append(mapping.Sections[best.Section], f)
		assigned = append(assigned, assignment{frag: f, candidate: *best})
		if centroids[best.Section] == nil {
			centroids[best.Section] = &runningCentroid{}
		}
		centroids[best.Section].add(f.BBox.Center().X)
	}

	m.aggregate(mapping, assigned, len(ordered))
	return mapping
}

type runningCentroid struct {
	sum   float64
	count int
}

func (c *runningCentroid) add(x float64) {
	c.sum += x
	c.count++
}

func (c *runningCentroid) mean() float64 {
	if c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}

// assignment pairs a mapped fragment with its winning candidate.
type assignment struct {
	frag      *model.TextFragment
	candidate model.SectionCandidate
}

// bestCandidate scores the fragment against every section type and
// returns the strongest candidate, or nil when nothing matched at all.
func (m *Mapper) bestCandidate(f *model.TextFragment, lang string, medianFont float64) *model.SectionCandidate {
	tokens := similarity.Tokens(f.Text)
	if len(tokens) == 0 {
		return nil
	}
	headerLike := isHeaderLike(f, medianFont)

	var best *model.SectionCandidate
	for _, section := range model.AllSectionTypes() {
		cand := m.scoreSection(f, section, lang, tokens, headerLike)
		if cand == nil {
			continue
		}
		if best == nil || cand.Confidence > best.Confidence {
			best = cand
		}
	}
	return best
}

// scoreSection computes the semantic score of one fragment for one
// section: fuzzy keyword matches weighted by phrase length, a x1.2
// bonus for multiple distinct keywords, a x1.5 bonus for header-like
// fragments, plus contact-pattern affinity for personal info.
func (m *Mapper) scoreSection(f *model.TextFragment, section model.SectionType, lang string, tokens []string, headerLike bool) *model.SectionCandidate {
	raw := 0.0
	var matched []string
	for _, keyword := range m.cfg.KeywordsFor(lang, section) {
		sim := similarity.BestPhraseMatch(m.scorer, keyword, tokens)
		if sim < m.cfg.Thresholds.SimilarityMin {
			continue
		}
		raw += sim * float64(len(strings.Fields(keyword)))
		matched = append(matched, keyword)
	}

	if section == model.SectionPersonalInfo {
		if emailPattern.MatchString(f.Text) || urlPattern.MatchString(f.Text) ||
			phonePattern.MatchString(f.Text) {
			raw += 1.2
			matched = append(matched, "<contact pattern>")
		}
	}

	if raw == 0 {
		return nil
	}
	if len(matched) > 1 {
		raw *= 1.2
	}
	rationale := "keyword match"
	if headerLike {
		raw *= 1.5
		rationale = "keyword match on header-like fragment"
	}

	return &model.SectionCandidate{
		FragmentID:      f.ID,
		Section:         section,
		Confidence:      model.ClampScore(raw / scoreNorm),
		MatchedKeywords: matched,
		Rationale:       rationale,
	}
}

// conflictRisk computes the spatial conflict risk of assigning f to
// section, from the distance to and count of adjacent fragments that
// already belong to different sections.
func (m *Mapper) conflictRisk(f *model.TextFragment, section model.SectionType, assigned []assignment) (risk float64, conflicts int, nearest float64) {
	radius := m.cfg.Thresholds.AdjacencyRadius
	center := f.BBox.Center()
	nearest = radius
	for _, a := range assigned {
		if a.frag.Section == section {
			continue
		}
		d := center.Distance(a.frag.BBox.Center())
		if d >= radius {
			continue
		}
		conflicts++
		if d < nearest {
			nearest = d
		}
	}
	if conflicts == 0 {
		return 0, 0, 0
	}
	proximity := 1 - nearest/radius
	risk = model.ClampScore(proximity * (0.6 + 0.2*float64(conflicts)))
	return risk, conflicts, nearest
}

// aggregate fills per-section confidences and the overall mapping
// quality: the mean of mapped fraction, section diversity,
// contamination penalty, and section-size balance.
func (m *Mapper) aggregate(mapping *model.SectionMapping, assigned []assignment, total int) {
	scoreBySection := make(map[model.SectionType][]float64)
	for _, a := range assigned {
		scoreBySection[a.frag.Section] = append(scoreBySection[a.frag.Section], a.candidate.Confidence)
	}
	for section, scores := range scoreBySection {
		// Position-weighted mean: the earliest fragments of a section
		// (usually its header) weigh the most.
		num, den := 0.0, 0.0
		for i, s := range scores {
			w := 1.0 / float64(1+i)
			num += w * s
			den += w
		}
		mapping.SectionConfidence[section] = model.ClampScore(num / den)
	}

	if total == 0 {
		return
	}
	mappedFraction := float64(len(assigned)) / float64(total)

	diversity := float64(len(mapping.Sections)) / 8
	if diversity > 1 {
		diversity = 1
	}

	contamination := 1 - 0.1*float64(mapping.HighRiskCount(m.cfg.Thresholds.MaxConflictRisk))
	if contamination < 0 {
		contamination = 0
	}

	balance := sectionBalance(mapping.Sections)

	mapping.Quality = model.ClampScore((mappedFraction + diversity + contamination + balance) / 4)
}

// sectionBalance is the ratio of mean to max section size: 1 when all
// sections are equally sized, approaching 0 when a single section
// dominates.
func sectionBalance(sections map[model.SectionType][]*model.TextFragment) float64 {
	if len(sections) == 0 {
		return 0
	}
	maxSize, sum := 0, 0
	for _, frags := range sections {
		if len(frags) > maxSize {
			maxSize = len(frags)
		}
		sum += len(frags)
	}
	if maxSize == 0 {
		return 0
	}
	mean := float64(sum) / float64(len(sections))
	return mean / float64(maxSize)
}

// isHeaderLike reports whether a fragment reads like a section header:
// short, without trailing punctuation, and visually prominent (bold,
// larger than the median font, title-cased, or all-caps).
func isHeaderLike(f *model.TextFragment, medianFont float64) bool {
	text := strings.TrimSpace(f.Text)
	if text == "" {
		return false
	}
	if len(strings.Fields(text)) > 4 {
		return false
	}
	if strings.ContainsAny(string(text[len(text)-1]), ".,:;!?") {
		return false
	}
	prominent := f.Bold || (medianFont > 0 && f.FontSize > 1.1*medianFont)
	return prominent || isTitleCased(text) || isAllCaps(text)
}

func isTitleCased(text string) bool {
	words := strings.Fields(text)
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return len(words) > 0
}

func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func medianFontSize(fragments []*model.TextFragment) float64 {
	var sizes []float64
	for _, f := range fragments {
		if f.FontSize > 0 {
			sizes = append(sizes, f.FontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
