package normalize

import (
	"regexp"
	"strings"

	"github.com/biter777/countries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

var (
	parenLocationPattern = regexp.MustCompile(`^(.*?)\s*\((.+?)\)\s*$`)
	titleCaser           = cases.Title(language.Und)
)

// locationNormalizer canonicalizes free-text places.
type locationNormalizer struct {
	cfg *config.Config
}

// NormalizeLocation resolves "City, Country" / "City (Country)" /
// single-name input into a canonical city and country with an ISO
// 3166-1 alpha-2 code where possible. Unresolvable parts keep their
// title-cased raw form with reduced confidence.
func (n *locationNormalizer) NormalizeLocation(raw string) *model.NormalizedLocation {
	loc := &model.NormalizedLocation{Raw: raw, Confidence: 0.1}
	text := strings.TrimSpace(raw)
	if text == "" {
		return loc
	}

	var cityPart, regionPart, countryPart string
	if m := parenLocationPattern.FindStringSubmatch(text); m != nil {
		cityPart, countryPart = m[1], m[2]
	} else {
		parts := strings.Split(text, ",")
		switch len(parts) {
		case 1:
			cityPart = parts[0]
		case 2:
			cityPart, countryPart = parts[0], parts[1]
		default:
			cityPart = parts[0]
			regionPart = strings.TrimSpace(parts[1])
			countryPart = parts[len(parts)-1]
		}
	}

	loc.City = n.canonicalCity(cityPart)
	loc.Region = regionPart
	loc.Confidence = 0.5

	country, iso := n.resolveCountry(countryPart)
	if country == "" && countryPart == "" {
		// Single-name input may itself be a country ("Germany").
		if c, code := n.resolveCountry(cityPart); c != "" {
			loc.City = ""
			country, iso = c, code
		}
	}
	loc.Country = country
	loc.CountryISO = iso
	if iso != "" {
		loc.Confidence = 0.9
	} else if countryPart != "" {
		// A country was named but not resolved; keep it raw.
		loc.Country = titleCaser.String(strings.ToLower(strings.TrimSpace(countryPart)))
		loc.Confidence = 0.4
	}
	return loc
}

// canonicalCity applies the manual alias table, falling back to title
// case.
func (n *locationNormalizer) canonicalCity(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return ""
	}
	lower := strings.ToLower(city)
	if canonical, ok := n.cfg.CityAliases[lower]; ok {
		return canonical
	}
	return titleCaser.String(lower)
}

// resolveCountry resolves a country name through the alias table and
// the canonical ISO 3166 registry, returning the canonical name and
// alpha-2 code, or empty strings.
func (n *locationNormalizer) resolveCountry(name string) (country, iso string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	if alias, ok := n.cfg.CountryAliases[strings.ToLower(name)]; ok {
		name = alias
	}
	code := countries.ByName(name)
	if code == countries.Unknown {
		return "", ""
	}
	return code.String(), code.Alpha2()
}
