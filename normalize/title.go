package normalize

import (
	"strings"
	"unicode"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

// titleNormalizer classifies job titles by seniority and category.
type titleNormalizer struct {
	cfg *config.Config
}

// NormalizeJobTitle classifies a raw job title. It always succeeds:
// at minimum the result carries a title-cased normalized string with
// mid seniority and the "other" category.
func (n *titleNormalizer) NormalizeJobTitle(raw string) *model.NormalizedJobTitle {
	title := &model.NormalizedJobTitle{
		Raw:        raw,
		Normalized: titleCaseKeepAcronyms(raw),
		Seniority:  model.SeniorityMid,
		Category:   model.CategoryOther,
		Confidence: 0.5,
	}
	lower := strings.ToLower(raw)

	// Fixed match order keeps classification deterministic when a title
	// carries vocabulary from more than one class.
	for _, seniority := range []string{"lead", "senior", "junior"} {
		if matchesAny(lower, n.cfg.SeniorityWords[seniority]) {
			title.Seniority = model.Seniority(seniority)
			title.Confidence += 0.2
			break
		}
	}
	for _, category := range []string{"development", "management", "design", "consulting"} {
		if matchesAny(lower, n.cfg.CategoryWords[category]) {
			title.Category = model.TitleCategory(category)
			title.Confidence += 0.2
			break
		}
	}
	// Lead vocabulary doubles as management vocabulary.
	if title.Seniority == model.SeniorityLead && title.Category == model.CategoryOther {
		title.Category = model.CategoryManagement
	}
	title.Confidence = model.ClampScore(title.Confidence)
	return title
}

// titleCaseKeepAcronyms title-cases a string but leaves existing
// all-caps words ("CTO", "UX") untouched.
func titleCaseKeepAcronyms(text string) string {
	words := strings.Fields(strings.TrimSpace(text))
	for i, w := range words {
		if isAllUpper(w) {
			continue
		}
		words[i] = titleCaser.String(strings.ToLower(w))
	}
	return strings.Join(words, " ")
}

func isAllUpper(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func matchesAny(text string, words []string) bool {
	for _, w := range words {
		if containsWholeWord(text, w) {
			return true
		}
	}
	return false
}

// containsWholeWord reports whether text contains w bounded by
// non-letter characters.
func containsWholeWord(text, w string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], w)
		if i < 0 {
			return false
		}
		i += idx
		startOK := i == 0 || !isLetterByte(text[i-1])
		end := i + len(w)
		endOK := end >= len(text) || !isLetterByte(text[end])
		if startOK && endOK {
			return true
		}
		idx = i + len(w)
		if idx >= len(text) {
			return false
		}
	}
}

func isLetterByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
