package model

import "time"

// DatePrecision states how much of a normalized date is trustworthy.
type DatePrecision string

const (
	PrecisionDay     DatePrecision = "day"
	PrecisionMonth   DatePrecision = "month"
	PrecisionYear    DatePrecision = "year"
	PrecisionOngoing DatePrecision = "ongoing"
	PrecisionUnknown DatePrecision = "unknown"
)

// NormalizedDate is a calendar date resolved from free text. Parsing
// never fails hard: unparseable input yields PrecisionUnknown with a
// low confidence rather than an error.
type NormalizedDate struct {
	// Date is the resolved calendar date; nil when absent or ongoing.
	Date *time.Time `json:"date,omitempty"`

	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`

	// Ongoing is true for "present"/"current" style end dates.
	// Ongoing implies Date is nil.
	Ongoing bool `json:"ongoing"`

	Precision  DatePrecision `json:"precision"`
	Raw        string        `json:"raw"`
	Confidence float64       `json:"confidence"`
}

// NormalizedDateRange is a start/end pair. Whenever both ends resolve,
// start <= end.
type NormalizedDateRange struct {
	Start *NormalizedDate `json:"start,omitempty"`
	End   *NormalizedDate `json:"end,omitempty"`
	Raw   string          `json:"raw"`
}

// Ongoing reports whether the range has an explicit ongoing end.
func (r *NormalizedDateRange) Ongoing() bool {
	return r != nil && r.End != nil && r.End.Ongoing
}

// NormalizedLocation is a canonicalized place.
type NormalizedLocation struct {
	City       string  `json:"city,omitempty"`
	Region     string  `json:"region,omitempty"`
	Country    string  `json:"country,omitempty"`
	CountryISO string  `json:"country_iso,omitempty"` // ISO 3166-1 alpha-2
	Raw        string  `json:"raw"`
	Confidence float64 `json:"confidence"`
}

// NormalizedContact holds validated contact fields.
type NormalizedContact struct {
	Email      string `json:"email,omitempty"`
	EmailValid bool   `json:"email_valid"`

	Phone      string `json:"phone,omitempty"`
	PhoneE164  string `json:"phone_e164,omitempty"`
	PhoneValid bool   `json:"phone_valid"`

	// PhoneRegion and PhoneCarrier are best-effort metadata.
	PhoneRegion  string `json:"phone_region,omitempty"`
	PhoneCarrier string `json:"phone_carrier,omitempty"`
}

// ProficiencyLevel is the six-level CEFR-equivalent language scale.
type ProficiencyLevel string

const (
	LevelBeginner          ProficiencyLevel = "beginner"           // ~A1
	LevelElementary        ProficiencyLevel = "elementary"         // ~A2
	LevelIntermediate      ProficiencyLevel = "intermediate"       // ~B1
	LevelUpperIntermediate ProficiencyLevel = "upper_intermediate" // ~B2
	LevelAdvanced          ProficiencyLevel = "advanced"           // ~C1
	LevelNative            ProficiencyLevel = "native"             // ~C2 / bilingual
)

// ValidProficiencyLevel reports whether s is one of the six levels.
func ValidProficiencyLevel(s string) bool {
	switch ProficiencyLevel(s) {
	case LevelBeginner, LevelElementary, LevelIntermediate,
		LevelUpperIntermediate, LevelAdvanced, LevelNative:
		return true
	}
	return false
}

// NormalizedLanguageSkill is a language with normalized proficiency.
// When the raw level carried a certification score ("TOEIC 950") the
// certification name and score validity are recorded too.
type NormalizedLanguageSkill struct {
	Language      string           `json:"language"`
	Level         ProficiencyLevel `json:"level"`
	CanonicalName string           `json:"canonical_name,omitempty"`
	Score         float64          `json:"score,omitempty"`
	ScoreValid    bool             `json:"score_valid"`
	Raw           string           `json:"raw"`
	Confidence    float64          `json:"confidence"`
}

// Seniority classifies a job title's level.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
	SeniorityLead   Seniority = "lead"
)

// TitleCategory classifies a job title's functional area.
type TitleCategory string

const (
	CategoryDevelopment TitleCategory = "development"
	CategoryManagement  TitleCategory = "management"
	CategoryDesign      TitleCategory = "design"
	CategoryConsulting  TitleCategory = "consulting"
	CategoryOther       TitleCategory = "other"
)

// NormalizedJobTitle is a classified job title. Normalization always
// succeeds with at least a title-cased string.
type NormalizedJobTitle struct {
	Normalized string        `json:"normalized"`
	Seniority  Seniority     `json:"seniority"`
	Category   TitleCategory `json:"category"`
	Raw        string        `json:"raw"`
	Confidence float64       `json:"confidence"`
}

// NormalizedExperience is an experience record after normalization.
type NormalizedExperience struct {
	Title        *NormalizedJobTitle  `json:"title,omitempty"`
	Organization string               `json:"organization,omitempty"`
	Location     *NormalizedLocation  `json:"location,omitempty"`
	DateRange    *NormalizedDateRange `json:"date_range,omitempty"`
	Description  string               `json:"description,omitempty"`
	Confidence   float64              `json:"confidence"`
	FragmentIDs  []string             `json:"fragment_ids"`
}

// NormalizedEducation is an education record after normalization.
type NormalizedEducation struct {
	Degree      string               `json:"degree,omitempty"`
	Institution string               `json:"institution,omitempty"`
	Location    *NormalizedLocation  `json:"location,omitempty"`
	DateRange   *NormalizedDateRange `json:"date_range,omitempty"`
	Description string               `json:"description,omitempty"`
	GPA         string               `json:"gpa,omitempty"`
	Confidence  float64              `json:"confidence"`
}

// NormalizedCertification is a certification after canonicalization.
// Records whose canonical name and level match are merged, keeping the
// highest confidence of the merged inputs.
type NormalizedCertification struct {
	Name       string  `json:"name"`
	Level      string  `json:"level,omitempty"`
	Issuer     string  `json:"issuer,omitempty"`
	Year       int     `json:"year,omitempty"`
	Confidence float64 `json:"confidence"`
}

// NormalizedPersonalInfo is contact and identity data after validation.
type NormalizedPersonalInfo struct {
	Name     string              `json:"name,omitempty"`
	Contact  NormalizedContact   `json:"contact"`
	Location *NormalizedLocation `json:"location,omitempty"`
	Links    []string            `json:"links,omitempty"`
}

// NormalizedData is the result of the field normalization stage.
type NormalizedData struct {
	PersonalInfo   NormalizedPersonalInfo    `json:"personal_info"`
	Summary        string                    `json:"summary,omitempty"`
	Experiences    []NormalizedExperience    `json:"experiences"`
	Education      []NormalizedEducation     `json:"education"`
	Skills         []ExtractedSkill          `json:"skills"`
	Languages      []NormalizedLanguageSkill `json:"languages"`
	Certifications []NormalizedCertification `json:"certifications"`
	Projects       []ExtractedProject        `json:"projects"`
	Awards         []ExtractedAward          `json:"awards"`
	Volunteering   []ExtractedVolunteering   `json:"volunteering"`
	Interests      []string                  `json:"interests,omitempty"`
	References     []ExtractedReference      `json:"references"`
}
