// Package extract detects typed sub-components (dates, titles,
// organizations, locations, free text) inside each mapped section and
// pairs them into structured records. The experience section gets the
// full multi-strategy pairing treatment; the remaining sections use
// simpler single-pass extraction.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Kojynth/cvmatch-sub004/config"
)

var (
	// yearPattern matches a plausible CV year.
	yearPattern = regexp.MustCompile(`\b(19[5-9]\d|20\d{2})\b`)

	// numericDatePattern matches MM/YYYY, DD/MM/YYYY, and YYYY-MM
	// style dates.
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2}[/.\-]\d{4}|\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}|\d{4}-\d{2})\b`)

	// rangeSeparatorPattern splits "X - Y" style ranges.
	rangeSeparatorPattern = regexp.MustCompile(`\s*(?:–|—|->|→|~|\bto\b|\bbis\b|\bhasta\b|\bau\b|\ba\b|\bà\b|-)\s*`)

	// segmentSplitPattern splits a fragment into independent segments.
	segmentSplitPattern = regexp.MustCompile(`\s*[|•·]\s*|\s{3,}`)

	// locationCommaPattern matches "City, Country".
	locationCommaPattern = regexp.MustCompile(`^\p{Lu}[\p{L} .'\-]*,\s*\p{Lu}[\p{L} .'\-]*$`)

	// locationParenPattern matches "City (Country)".
	locationParenPattern = regexp.MustCompile(`^(\p{Lu}[\p{L} .'\-]*)\s*\((\p{L}[\p{L} .'\-]*)\)$`)

	// gpaPattern matches "GPA: 3.8/4.0" style grades.
	gpaPattern = regexp.MustCompile(`(?i)\b(gpa|mention|note)\s*:?\s*([\d.,/]+[\d])`)

	// urlPattern matches project and profile links.
	urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+|github\.com/\S+|linkedin\.com/\S+)`)

	// certScorePattern matches "TOEIC 950" style certification scores.
	certScorePattern = regexp.MustCompile(`(?i)\b(toeic|toefl|ielts|hsk|jlpt|topik|delf|dalf|dele)\b[\s:]*(\d+(?:[.,]\d+)?)`)
)

// patterns bundles the per-document pattern state: the config tables
// plus the resolved language.
type patterns struct {
	cfg  *config.Config
	lang string
}

func newPatterns(cfg *config.Config, lang string) *patterns {
	if lang == "" {
		lang = "en"
	}
	return &patterns{cfg: cfg, lang: lang}
}

// isOngoingWord reports whether the word is a "present/current" style
// keyword for the document language (merged with English).
func (p *patterns) isOngoingWord(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	for _, w := range p.cfg.OngoingFor(p.lang) {
		if word == w {
			return true
		}
	}
	return false
}

// isMonthWord reports whether the word is a month name in any
// configured language.
func (p *patterns) isMonthWord(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	for _, months := range p.cfg.MonthNames {
		if _, ok := months[word]; ok {
			return true
		}
	}
	return false
}

// looksLikeDate reports whether a segment reads as a date or date
// range: every token must be a year, month name, numeric date,
// ongoing keyword, or range separator, with at least one year, month,
// or numeric date among them.
func (p *patterns) looksLikeDate(segment string) bool {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return false
	}
	normalized := rangeSeparatorPattern.ReplaceAllString(segment, " ")
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 || len(tokens) > 6 {
		return false
	}
	anchors := 0
	for _, tok := range tokens {
		switch {
		case yearPattern.MatchString(tok), numericDatePattern.MatchString(tok):
			anchors++
		case p.isMonthWord(tok):
			anchors++
		case p.isOngoingWord(tok):
		default:
			return false
		}
	}
	return anchors > 0
}

// looksLikeLocation reports whether a segment matches a "City,
// Country" or "City (Country)" shape.
func (p *patterns) looksLikeLocation(segment string) bool {
	segment = strings.TrimSpace(segment)
	if len(strings.Fields(segment)) > 5 {
		return false
	}
	return locationCommaPattern.MatchString(segment) ||
		locationParenPattern.MatchString(segment)
}

// organizationName extracts an organization from a segment, or "".
// Prefix markers ("at ", "chez ") and legal-entity suffixes both
// qualify a segment as an organization.
func (p *patterns) organizationName(segment string) string {
	segment = strings.TrimSpace(segment)
	lower := strings.ToLower(segment)
	for _, prefix := range p.cfg.OrgPrefixes {
		if strings.HasPrefix(lower, prefix) && len(segment) > len(prefix) {
			return strings.TrimSpace(segment[len(prefix):])
		}
	}
	tokens := strings.Fields(lower)
	if len(tokens) == 0 || len(tokens) > 6 {
		return ""
	}
	last := strings.Trim(tokens[len(tokens)-1], ",")
	for _, suffix := range p.cfg.LegalSuffixes {
		if last == suffix {
			return segment
		}
	}
	return ""
}

// looksLikeTitle reports whether a segment reads as a job title:
// seniority or role vocabulary, or a short capitalized line.
func (p *patterns) looksLikeTitle(segment string) bool {
	segment = strings.TrimSpace(segment)
	words := strings.Fields(segment)
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	lower := strings.ToLower(segment)
	for _, vocab := range p.cfg.SeniorityWords {
		for _, w := range vocab {
			if containsWord(lower, w) {
				return true
			}
		}
	}
	for _, vocab := range p.cfg.CategoryWords {
		for _, w := range vocab {
			if containsWord(lower, w) {
				return true
			}
		}
	}
	return len(words) <= 4 && isCapitalizedLine(words)
}

// containsWord reports whether text contains w as a whole word or
// phrase.
func containsWord(text, w string) bool {
	idx := strings.Index(text, w)
	if idx < 0 {
		return false
	}
	before := idx == 0 || !isWordRune(rune(text[idx-1]))
	afterIdx := idx + len(w)
	after := afterIdx >= len(text) || !isWordRune(rune(text[afterIdx]))
	return before && after
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isCapitalizedLine(words []string) bool {
	capped := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) {
			capped++
		} else if unicode.IsLetter(r) && len(w) > 3 {
			return false
		}
	}
	return capped > 0
}

// firstYear extracts the first four-digit year of a text, or 0.
func firstYear(text string) int {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	return year
}

// splitSegments splits fragment text into independently classifiable
// segments on pipes, bullets, and wide whitespace runs.
func splitSegments(text string) []string {
	parts := segmentSplitPattern.Split(text, -1)
	var segments []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
