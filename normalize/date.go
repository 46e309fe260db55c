// Package normalize canonicalizes raw extracted values: dates to a
// calendar representation with precision and ongoing flag, locations
// to city/country with ISO codes, contact fields to validated
// international formats, language proficiency to a six-level scale,
// and job titles to seniority and category classes. Every normalizer
// is a pure function of its input and the configuration tables;
// parse failures degrade to "unknown" values with reduced confidence
// and never propagate as errors.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

var (
	// rangeSeparators split "X – Y" ranges. Ordered so that longer
	// word separators are tried before the bare hyphen.
	rangeSeparators = []string{"–", "—", "->", "→", "~", " to ", " bis ", " hasta ", " au ", " à ", " a ", "-"}

	bareYearPattern    = regexp.MustCompile(`^\s*(19[5-9]\d|20\d{2})\s*$`)
	monthYearPattern   = regexp.MustCompile(`^\s*(\d{1,2})[/.\-](\d{4})\s*$`)
	yearMonthPattern   = regexp.MustCompile(`^\s*(\d{4})-(\d{1,2})\s*$`)
	wordTokenPattern   = regexp.MustCompile(`[\p{L}']+`)
	anyYearPattern     = regexp.MustCompile(`\b(19[5-9]\d|20\d{2})\b`)
)

// dateNormalizer resolves free-text dates for one document language.
type dateNormalizer struct {
	cfg  *config.Config
	lang string
}

// NormalizeDateRange splits a raw range on the known separators and
// resolves each side. The result always satisfies start <= end when
// both resolve, and an ongoing end carries no calendar date.
func (n *dateNormalizer) NormalizeDateRange(raw string) *model.NormalizedDateRange {
	r := &model.NormalizedDateRange{Raw: raw}
	text := strings.TrimSpace(raw)
	if text == "" {
		return r
	}

	startText, endText, found := splitRange(text)
	if !found {
		if n.isOngoing(text) {
			r.End = ongoingDate(text)
			return r
		}
		r.Start = n.NormalizeDate(text)
		return r
	}

	r.Start = n.NormalizeDate(startText)
	if n.isOngoing(endText) {
		r.End = ongoingDate(endText)
	} else {
		r.End = n.NormalizeDate(endText)
	}

	// Degenerate input can invert the range; swap rather than fail.
	if r.Start != nil && r.End != nil && !r.End.Ongoing &&
		r.Start.Year > 0 && r.End.Year > 0 && r.Start.Year > r.End.Year {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// NormalizeDate resolves one date expression. Resolution is attempted
// in order of decreasing structure: numeric forms, month-name forms,
// bare years, then the locale-tolerant fallback parser. Unparseable
// input yields an unknown-precision placeholder, never an error.
func (n *dateNormalizer) NormalizeDate(raw string) *model.NormalizedDate {
	text := strings.TrimSpace(raw)
	d := &model.NormalizedDate{Raw: raw, Precision: model.PrecisionUnknown, Confidence: 0.1}
	if text == "" {
		return d
	}

	if m := bareYearPattern.FindStringSubmatch(text); m != nil {
		d.Year, _ = strconv.Atoi(m[1])
		d.Precision = model.PrecisionYear
		d.Confidence = 0.8
		return d
	}
	if m := monthYearPattern.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return monthDate(d, year, month, 0.9)
		}
	}
	if m := yearMonthPattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return monthDate(d, year, month, 0.9)
		}
	}

	if month := n.monthOf(text); month > 0 {
		if year := firstYearIn(text); year > 0 {
			return monthDate(d, year, month, 0.85)
		}
	}

	if t, err := dateparse.ParseAny(text); err == nil {
		day := t
		d.Date = &day
		d.Year = t.Year()
		d.Month = int(t.Month())
		d.Precision = model.PrecisionDay
		d.Confidence = 0.75
		return d
	}

	if year := firstYearIn(text); year > 0 {
		d.Year = year
		d.Precision = model.PrecisionYear
		d.Confidence = 0.6
		return d
	}
	return d
}

func monthDate(d *model.NormalizedDate, year, month int, confidence float64) *model.NormalizedDate {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	d.Date = &t
	d.Year = year
	d.Month = month
	d.Precision = model.PrecisionMonth
	d.Confidence = confidence
	return d
}

func ongoingDate(raw string) *model.NormalizedDate {
	return &model.NormalizedDate{
		Ongoing:    true,
		Precision:  model.PrecisionOngoing,
		Raw:        raw,
		Confidence: 0.9,
	}
}

// isOngoing reports whether the text is a "present/current" phrase in
// the document language or English.
func (n *dateNormalizer) isOngoing(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, w := range n.cfg.OngoingFor(n.lang) {
		if lower == w || strings.Contains(lower, w) && len(lower) <= len(w)+4 {
			return true
		}
	}
	return false
}

// monthOf finds the first month-name token of the text across all
// configured languages, returning 0 when none matches.
func (n *dateNormalizer) monthOf(text string) int {
	for _, tok := range wordTokenPattern.FindAllString(strings.ToLower(text), -1) {
		if months, ok := n.cfg.MonthNames[n.lang]; ok {
			if m, ok := months[tok]; ok {
				return m
			}
		}
		for _, months := range n.cfg.MonthNames {
			if m, ok := months[tok]; ok {
				return m
			}
		}
	}
	return 0
}

func firstYearIn(text string) int {
	m := anyYearPattern.FindString(text)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	return year
}

// splitRange splits on the first known range separator that leaves
// non-empty sides.
func splitRange(text string) (start, end string, found bool) {
	for _, sep := range rangeSeparators {
		idx := strings.Index(strings.ToLower(text), strings.ToLower(sep))
		if idx <= 0 {
			continue
		}
		left := strings.TrimSpace(text[:idx])
		right := strings.TrimSpace(text[idx+len(sep):])
		if left != "" && right != "" {
			return left, right, true
		}
	}
	return "", "", false
}
