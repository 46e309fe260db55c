// Package layout analyzes the geometric structure of a CV rendered as
// positioned text fragments: document language and script, column
// grouping, linear reading order, header/footer/sidebar regions, and a
// layout confidence score.
package layout

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Script identifies a writing script family.
type Script string

const (
	ScriptLatin      Script = "latin"
	ScriptCyrillic   Script = "cyrillic"
	ScriptGreek      Script = "greek"
	ScriptArabic     Script = "arabic"
	ScriptHebrew     Script = "hebrew"
	ScriptCJK        Script = "cjk"
	ScriptThai       Script = "thai"
	ScriptDevanagari Script = "devanagari"
	ScriptUnknown    Script = "unknown"
)

// rtlLanguages are ISO 639-1 codes written right to left.
var rtlLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"dv": true, // Dhivehi
	"yi": true, // Yiddish
}

// rtlScripts are the right-to-left script families.
var rtlScripts = map[Script]bool{
	ScriptArabic: true,
	ScriptHebrew: true,
}

// DetectLanguage returns the ISO 639-1 code of the text's language, or
// "" when detection is unreliable.
func DetectLanguage(text string) string {
	if text == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if info.Lang == -1 {
		return ""
	}
	return info.Lang.Iso6391()
}

// CountScripts counts characters by script family. Digits,
// punctuation, whitespace, and symbols are not counted.
func CountScripts(text string) map[Script]int {
	counts := make(map[Script]int)
	for _, r := range text {
		if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		counts[classifyRune(r)]++
	}
	return counts
}

// DominantScript returns the most frequent script in the counts, or
// ScriptUnknown for empty input.
func DominantScript(counts map[Script]int) Script {
	best := ScriptUnknown
	bestN := 0
	for _, s := range []Script{
		ScriptLatin, ScriptCyrillic, ScriptGreek, ScriptArabic,
		ScriptHebrew, ScriptCJK, ScriptThai, ScriptDevanagari,
		ScriptUnknown,
	} {
		if n := counts[s]; n > bestN {
			best = s
			bestN = n
		}
	}
	return best
}

// RTLFraction returns the share of counted characters belonging to a
// right-to-left script.
func RTLFraction(counts map[Script]int) float64 {
	total := 0
	rtl := 0
	for s, n := range counts {
		total += n
		if rtlScripts[s] {
			rtl += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(rtl) / float64(total)
}

func classifyRune(r rune) Script {
	switch {
	case isArabic(r):
		return ScriptArabic
	case isHebrew(r):
		return ScriptHebrew
	case isCyrillic(r):
		return ScriptCyrillic
	case isGreek(r):
		return ScriptGreek
	case isThai(r):
		return ScriptThai
	case isDevanagari(r):
		return ScriptDevanagari
	case isCJK(r):
		return ScriptCJK
	case isLatin(r):
		return ScriptLatin
	}
	return ScriptUnknown
}

// isArabic reports whether r is in an Arabic Unicode block, including
// the supplement and presentation forms.
func isArabic(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0x08A0 && r <= 0x08FF) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// isHebrew reports whether r is in a Hebrew Unicode block.
func isHebrew(r rune) bool {
	return (r >= 0x0590 && r <= 0x05FF) ||
		(r >= 0xFB1D && r <= 0xFB4F)
}

// isLatin reports whether r is in a Latin Unicode block.
func isLatin(r rune) bool {
	return (r >= 0x0041 && r <= 0x007A) ||
		(r >= 0x00C0 && r <= 0x00FF) ||
		(r >= 0x0100 && r <= 0x017F) ||
		(r >= 0x0180 && r <= 0x024F)
}

// isCyrillic reports whether r is in a Cyrillic Unicode block.
func isCyrillic(r rune) bool {
	return (r >= 0x0400 && r <= 0x04FF) ||
		(r >= 0x0500 && r <= 0x052F)
}

// isGreek reports whether r is in a Greek Unicode block.
func isGreek(r rune) bool {
	return (r >= 0x0370 && r <= 0x03FF) ||
		(r >= 0x1F00 && r <= 0x1FFF)
}

// isThai reports whether r is in the Thai Unicode block.
func isThai(r rune) bool {
	return r >= 0x0E00 && r <= 0x0E7F
}

// isDevanagari reports whether r is in the Devanagari Unicode block.
func isDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097F
}

// isCJK reports whether r is in a CJK Unicode block (unified
// ideographs, kana, or hangul).
func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF) ||
		(r >= 0xAC00 && r <= 0xD7AF)
}
