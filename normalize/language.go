package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

var (
	// cefrCodePattern matches a direct CEFR code such as "B2" or "c1".
	cefrCodePattern = regexp.MustCompile(`(?i)\b([ABC][12])\b`)

	// scorePattern extracts a numeric certification score.
	scorePattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
)

// cefrLevels maps CEFR codes onto the six-level scale.
var cefrLevels = map[string]model.ProficiencyLevel{
	"A1": model.LevelBeginner,
	"A2": model.LevelElementary,
	"B1": model.LevelIntermediate,
	"B2": model.LevelUpperIntermediate,
	"C1": model.LevelAdvanced,
	"C2": model.LevelNative,
}

// languageNormalizer maps free-text proficiency onto the six-level
// CEFR-equivalent scale.
type languageNormalizer struct {
	cfg *config.Config
}

// NormalizeLanguage resolves one extracted language entry. Resolution
// order for the level: certification score grid, valid level code
// passthrough, exact phrase table, ordered substring fallback, direct
// CEFR code. An unresolvable level defaults to intermediate with low
// confidence rather than failing.
func (n *languageNormalizer) NormalizeLanguage(entry model.ExtractedLanguage) model.NormalizedLanguageSkill {
	skill := model.NormalizedLanguageSkill{
		Language: n.canonicalLanguage(entry.Name),
		Raw:      strings.TrimSpace(entry.Name + " " + entry.RawLevel),
	}
	rawLevel := strings.TrimSpace(entry.RawLevel)

	// Certification scores ("TOEIC 950") resolve through the grids.
	if cert, score, ok := n.certificationScore(entry.Name + " " + rawLevel); ok {
		grid := n.cfg.CertScoreGrids[strings.ToLower(cert)]
		skill.CanonicalName = strings.ToUpper(cert)
		skill.Score = score
		skill.ScoreValid = score >= grid.Min && score <= grid.Max
		skill.Level = gridLevel(grid, score)
		if skill.Level == "" {
			skill.Level = model.LevelIntermediate
		}
		skill.Confidence = 0.9
		if !skill.ScoreValid {
			skill.Confidence = 0.5
		}
		return skill
	}

	// An already-valid level code is trusted as-is.
	if model.ValidProficiencyLevel(strings.ToLower(rawLevel)) {
		skill.Level = model.ProficiencyLevel(strings.ToLower(rawLevel))
		skill.Confidence = 1.0
		return skill
	}

	lower := strings.ToLower(rawLevel)
	if level, ok := n.cfg.Proficiency[lower]; ok && model.ValidProficiencyLevel(level) {
		skill.Level = model.ProficiencyLevel(level)
		skill.Confidence = 0.9
		return skill
	}
	for _, rule := range n.cfg.ProficiencySubstrings {
		if rule.Substring != "" && strings.Contains(lower, rule.Substring) &&
			model.ValidProficiencyLevel(rule.Level) {
			skill.Level = model.ProficiencyLevel(rule.Level)
			skill.Confidence = 0.75
			return skill
		}
	}
	if m := cefrCodePattern.FindStringSubmatch(rawLevel); m != nil {
		skill.Level = cefrLevels[strings.ToUpper(m[1])]
		skill.Confidence = 0.85
		return skill
	}

	skill.Level = model.LevelIntermediate
	skill.Confidence = 0.3
	return skill
}

// canonicalLanguage maps a language or certification token onto its
// canonical language cluster ("toeic" -> "English").
func (n *languageNormalizer) canonicalLanguage(name string) string {
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		tok = strings.Trim(tok, ".,:;()-")
		if lang, ok := n.cfg.LanguageNames[tok]; ok {
			return lang
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(name))
}

// certificationScore finds a known certification name plus a numeric
// score in the text. When several certifications are mentioned, the
// one appearing earliest wins, with the name as tie break.
func (n *languageNormalizer) certificationScore(text string) (cert string, score float64, ok bool) {
	lower := strings.ToLower(text)
	bestIdx := -1
	for name := range n.cfg.CertScoreGrids {
		idx := strings.Index(lower, name)
		if idx < 0 {
			continue
		}
		rest := lower[idx+len(name):]
		m := scorePattern.FindString(rest)
		if m == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
		if err != nil {
			continue
		}
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && name < cert) {
			bestIdx = idx
			cert, score, ok = name, value, true
		}
	}
	return cert, score, ok
}

// gridLevel picks the highest band whose minimum the score reaches.
func gridLevel(grid config.ScoreGrid, score float64) model.ProficiencyLevel {
	var level model.ProficiencyLevel
	for _, band := range grid.Bands {
		if score >= band.Min && model.ValidProficiencyLevel(band.Level) {
			level = model.ProficiencyLevel(band.Level)
		}
	}
	return level
}
