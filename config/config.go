// Package config supplies the static, versioned rule tables the
// pipeline depends on: per-language keyword dictionaries, city and
// country alias tables, proficiency mappings, and the numeric
// thresholds carried over from the reference heuristics. All tables
// are immutable after construction; stages receive the configuration
// at constructor time and multiple concurrent runs may share one
// instance.
package config

import (
	_ "embed"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Kojynth/cvmatch-sub004/model"
)

//go:embed data.yaml
var embeddedData []byte

// Thresholds collects the tunable numeric heuristics. The defaults
// mirror the reference behavior; none of them is a proven optimum and
// callers tuning for unusual document types may override them.
type Thresholds struct {
	// AdjacencyRadius is the max center distance for two fragments to
	// count as spatially adjacent.
	AdjacencyRadius float64 `yaml:"adjacency_radius"`

	// MinSectionScore rejects mapping candidates scoring below it.
	MinSectionScore float64 `yaml:"min_section_score"`

	// MaxConflictRisk rejects assignments whose adjacency conflict
	// risk exceeds it.
	MaxConflictRisk float64 `yaml:"max_conflict_risk"`

	// DispersionRadius flags fragments deviating horizontally from
	// their section centroid by more than this.
	DispersionRadius float64 `yaml:"dispersion_radius"`

	// SimilarityMin is the fuzzy keyword match floor.
	SimilarityMin float64 `yaml:"similarity_min"`

	// RTLFraction declares RTL layout above this share of RTL-script
	// characters.
	RTLFraction float64 `yaml:"rtl_fraction"`

	// HeaderFooterBand is the top/bottom page fraction scanned for
	// header and footer furniture.
	HeaderFooterBand float64 `yaml:"header_footer_band"`

	// SidebarWidthRatio marks the narrowest column as a sidebar when
	// its width falls below this fraction of the widest column.
	SidebarWidthRatio float64 `yaml:"sidebar_width_ratio"`

	// TimelineRatio is the share of date/content pairs that must be
	// vertically ordered for the timeline layout pattern.
	TimelineRatio float64 `yaml:"timeline_ratio"`

	// SidebarDateRatio is the share of dates that must sit near the
	// sidebar center for the sidebar layout pattern.
	SidebarDateRatio float64 `yaml:"sidebar_date_ratio"`

	// SidebarDateDistance is the max distance from the sidebar center
	// for a date to count as inside it.
	SidebarDateDistance float64 `yaml:"sidebar_date_distance"`

	// BandTolerance is the vertical band tolerance for timeline
	// pairing.
	BandTolerance float64 `yaml:"band_tolerance"`

	// RowBucket is the vertical quantization step for table pairing.
	RowBucket float64 `yaml:"row_bucket"`

	// MaxColumns caps the column cluster count.
	MaxColumns int `yaml:"max_columns"`

	// FlatSignalColumns is the column count used when the elbow
	// signal is flat. An arbitrary policy inherited from the
	// reference behavior, documented here as a tunable default.
	FlatSignalColumns int `yaml:"flat_signal_columns"`
}

// DefaultThresholds returns the reference heuristic values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AdjacencyRadius:     100.0,
		MinSectionScore:     0.6,
		MaxConflictRisk:     0.7,
		DispersionRadius:    300.0,
		SimilarityMin:       0.8,
		RTLFraction:         0.3,
		HeaderFooterBand:    0.1,
		SidebarWidthRatio:   0.4,
		TimelineRatio:       0.7,
		SidebarDateRatio:    0.7,
		SidebarDateDistance: 50.0,
		BandTolerance:       50.0,
		RowBucket:           10.0,
		MaxColumns:          5,
		FlatSignalColumns:   2,
	}
}

// ComponentWeights are the fixed record-assembly confidence weights.
type ComponentWeights struct {
	Title        float64 `yaml:"title"`
	Organization float64 `yaml:"organization"`
	Date         float64 `yaml:"date"`
	Location     float64 `yaml:"location"`
	Description  float64 `yaml:"description"`
}

// DefaultComponentWeights returns the reference weights.
func DefaultComponentWeights() ComponentWeights {
	return ComponentWeights{
		Title:        0.30,
		Organization: 0.30,
		Date:         0.20,
		Location:     0.10,
		Description:  0.10,
	}
}

// SectionWeights are the global-score weights per section.
type SectionWeights struct {
	Experience   float64 `yaml:"experience"`
	PersonalInfo float64 `yaml:"personal_info"`
	Skills       float64 `yaml:"skills"`
	Education    float64 `yaml:"education"`
	Languages    float64 `yaml:"languages"`
	Projects     float64 `yaml:"projects"`
}

// DefaultSectionWeights returns the reference weights.
func DefaultSectionWeights() SectionWeights {
	return SectionWeights{
		Experience:   0.35,
		PersonalInfo: 0.25,
		Skills:       0.15,
		Education:    0.15,
		Languages:    0.05,
		Projects:     0.05,
	}
}

// tables is the YAML shape of the embedded data file.
type tables struct {
	SectionKeywords  map[string]map[string][]string `yaml:"section_keywords"`
	OngoingKeywords  map[string][]string            `yaml:"ongoing_keywords"`
	MonthNames       map[string]map[string]int      `yaml:"month_names"`
	CityAliases      map[string]string              `yaml:"city_aliases"`
	CountryAliases   map[string]string              `yaml:"country_aliases"`
	Proficiency      map[string]string              `yaml:"proficiency"`
	ProficiencySub   []SubstringLevel               `yaml:"proficiency_substrings"`
	HeaderFooter     []string                       `yaml:"header_footer_vocab"`
	LegalSuffixes    []string                       `yaml:"legal_suffixes"`
	OrgPrefixes      []string                       `yaml:"org_prefixes"`
	SeniorityWords   map[string][]string            `yaml:"seniority_words"`
	CategoryWords    map[string][]string            `yaml:"category_words"`
	DegreeWords      []string                       `yaml:"degree_words"`
	InstitutionWords []string                       `yaml:"institution_words"`
	IssuerWords      []string                       `yaml:"issuer_words"`
	LanguageNames    map[string]string              `yaml:"language_names"`
	CertScoreGrids   map[string]ScoreGrid           `yaml:"cert_score_grids"`
}

// SubstringLevel is an ordered substring fallback rule for proficiency
// mapping: the first rule whose substring occurs wins.
type SubstringLevel struct {
	Substring string `yaml:"substring"`
	Level     string `yaml:"level"`
}

// ScoreGrid maps a certification's numeric score range onto the
// six-level proficiency scale. Bands are ordered by ascending Min.
type ScoreGrid struct {
	Min   float64     `yaml:"min"`
	Max   float64     `yaml:"max"`
	Bands []ScoreBand `yaml:"bands"`
}

// ScoreBand is one band of a ScoreGrid.
type ScoreBand struct {
	Min   float64 `yaml:"min"`
	Level string  `yaml:"level"`
}

// Config is the immutable rule-table bundle handed to every stage.
type Config struct {
	// SectionKeywords maps language code to section type to an
	// ordered keyword list.
	SectionKeywords map[string]map[model.SectionType][]string

	// OngoingKeywords maps language code to "present"-style words.
	OngoingKeywords map[string][]string

	// MonthNames maps language code to month name to month number.
	MonthNames map[string]map[string]int

	// CityAliases maps a lowercase nickname to the canonical city.
	CityAliases map[string]string

	// CountryAliases maps a lowercase alias to the canonical country.
	CountryAliases map[string]string

	// Proficiency maps an exact lowercase phrase to a level code.
	Proficiency map[string]string

	// ProficiencySubstrings are the ordered substring fallback rules.
	ProficiencySubstrings []SubstringLevel

	// HeaderFooterVocab are words marking page furniture.
	HeaderFooterVocab []string

	// LegalSuffixes are organization legal-entity suffixes.
	LegalSuffixes []string

	// OrgPrefixes are "at/chez/bei" style organization markers.
	OrgPrefixes []string

	// SeniorityWords and CategoryWords classify job titles.
	SeniorityWords map[string][]string
	CategoryWords  map[string][]string

	// DegreeWords and InstitutionWords drive education extraction.
	DegreeWords      []string
	InstitutionWords []string

	// IssuerWords mark certification issuers.
	IssuerWords []string

	// LanguageNames maps a lowercase language or certification token
	// to its canonical language cluster ("toeic" -> "English").
	LanguageNames map[string]string

	// CertScoreGrids maps a certification name to its score grid.
	CertScoreGrids map[string]ScoreGrid

	Thresholds       Thresholds
	ComponentWeights ComponentWeights
	SectionWeights   SectionWeights
}

// Default returns the built-in configuration. A corrupt embedded data
// file degrades the lookup tables to empty rather than failing: every
// dependent canonicalization then simply fails to match, and the
// pipeline keeps running.
func Default() *Config {
	cfg := emptyConfig()
	var t tables
	if err := yaml.Unmarshal(embeddedData, &t); err == nil {
		cfg.applyTables(t)
	}
	return cfg
}

// Load reads a YAML rule-table document and merges it over the
// built-in defaults. Unreadable or invalid input leaves the defaults
// untouched; Load never fails the caller.
func Load(r io.Reader) *Config {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg
	}
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return cfg
	}
	cfg.applyTables(t)
	return cfg
}

func emptyConfig() *Config {
	return &Config{
		SectionKeywords:  map[string]map[model.SectionType][]string{},
		OngoingKeywords:  map[string][]string{},
		MonthNames:       map[string]map[string]int{},
		CityAliases:      map[string]string{},
		CountryAliases:   map[string]string{},
		Proficiency:      map[string]string{},
		SeniorityWords:   map[string][]string{},
		CategoryWords:    map[string][]string{},
		LanguageNames:    map[string]string{},
		CertScoreGrids:   map[string]ScoreGrid{},
		Thresholds:       DefaultThresholds(),
		ComponentWeights: DefaultComponentWeights(),
		SectionWeights:   DefaultSectionWeights(),
	}
}

func (c *Config) applyTables(t tables) {
	for lang, sections := range t.SectionKeywords {
		m, ok := c.SectionKeywords[lang]
		if !ok {
			m = map[model.SectionType][]string{}
			c.SectionKeywords[lang] = m
		}
		for section, words := range sections {
			m[model.SectionType(section)] = words
		}
	}
	for lang, words := range t.OngoingKeywords {
		c.OngoingKeywords[lang] = words
	}
	for lang, months := range t.MonthNames {
		c.MonthNames[lang] = months
	}
	for k, v := range t.CityAliases {
		c.CityAliases[k] = v
	}
	for k, v := range t.CountryAliases {
		c.CountryAliases[k] = v
	}
	for k, v := range t.Proficiency {
		c.Proficiency[k] = v
	}
	if len(t.ProficiencySub) > 0 {
		c.ProficiencySubstrings = t.ProficiencySub
	}
	if len(t.HeaderFooter) > 0 {
		c.HeaderFooterVocab = t.HeaderFooter
	}
	if len(t.LegalSuffixes) > 0 {
		c.LegalSuffixes = t.LegalSuffixes
	}
	if len(t.OrgPrefixes) > 0 {
		c.OrgPrefixes = t.OrgPrefixes
	}
	for k, v := range t.SeniorityWords {
		c.SeniorityWords[k] = v
	}
	for k, v := range t.CategoryWords {
		c.CategoryWords[k] = v
	}
	if len(t.DegreeWords) > 0 {
		c.DegreeWords = t.DegreeWords
	}
	if len(t.InstitutionWords) > 0 {
		c.InstitutionWords = t.InstitutionWords
	}
	if len(t.IssuerWords) > 0 {
		c.IssuerWords = t.IssuerWords
	}
	for k, v := range t.LanguageNames {
		c.LanguageNames[k] = v
	}
	for k, v := range t.CertScoreGrids {
		c.CertScoreGrids[k] = v
	}
}

// KeywordsFor returns the keyword list for a language and section,
// falling back to English when the language has no table.
func (c *Config) KeywordsFor(lang string, section model.SectionType) []string {
	if m, ok := c.SectionKeywords[lang]; ok {
		if words, ok := m[section]; ok {
			return words
		}
	}
	if lang != "en" {
		if m, ok := c.SectionKeywords["en"]; ok {
			return m[section]
		}
	}
	return nil
}

// OngoingFor returns the ongoing keyword set for a language merged
// with the English set, since mixed-language CVs are common.
func (c *Config) OngoingFor(lang string) []string {
	words := append([]string(nil), c.OngoingKeywords["en"]...)
	if lang != "" && lang != "en" {
		words = append(words, c.OngoingKeywords[lang]...)
	}
	return words
}
