package model

// ComponentKind classifies a typed sub-component detected inside an
// experience (or education) fragment before pairing.
type ComponentKind string

const (
	ComponentDate         ComponentKind = "date"
	ComponentTitle        ComponentKind = "title"
	ComponentOrganization ComponentKind = "organization"
	ComponentLocation     ComponentKind = "location"
	ComponentDescription  ComponentKind = "description"
)

// ExperienceComponent is an intermediate typed unit produced by the
// component extractor before pairing into records.
type ExperienceComponent struct {
	Kind       ComponentKind `json:"kind"`
	Text       string        `json:"text"`
	BBox       BBox          `json:"bbox"`
	Confidence float64       `json:"confidence"`
	FragmentID string        `json:"fragment_id"`
}

// ExtractedExperience is one assembled work-experience record.
type ExtractedExperience struct {
	Title        string   `json:"title,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Location     string   `json:"location,omitempty"`
	DateRange    string   `json:"date_range,omitempty"`
	Description  string   `json:"description,omitempty"`
	Confidence   float64  `json:"confidence"`
	FragmentIDs  []string `json:"fragment_ids"`
}

// ExtractedEducation is one education record.
type ExtractedEducation struct {
	Degree      string   `json:"degree,omitempty"`
	Institution string   `json:"institution,omitempty"`
	Location    string   `json:"location,omitempty"`
	DateRange   string   `json:"date_range,omitempty"`
	Description string   `json:"description,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Confidence  float64  `json:"confidence"`
	FragmentIDs []string `json:"fragment_ids"`
}

// ExtractedSkill is one skill entry, with an optional raw level
// annotation such as "advanced" or "5 years".
type ExtractedSkill struct {
	Name       string  `json:"name"`
	RawLevel   string  `json:"raw_level,omitempty"`
	Confidence float64 `json:"confidence"`
	FragmentID string  `json:"fragment_id"`
}

// ExtractedLanguage is one language entry before proficiency
// normalization. RawLevel may be a proficiency phrase ("fluent",
// "courant") or a certification with score ("TOEIC 950").
type ExtractedLanguage struct {
	Name       string  `json:"name"`
	RawLevel   string  `json:"raw_level,omitempty"`
	Confidence float64 `json:"confidence"`
	FragmentID string  `json:"fragment_id"`
}

// ExtractedCertification is one certification record.
type ExtractedCertification struct {
	Name       string  `json:"name"`
	Issuer     string  `json:"issuer,omitempty"`
	Level      string  `json:"level,omitempty"`
	Year       int     `json:"year,omitempty"`
	Confidence float64 `json:"confidence"`
	FragmentID string  `json:"fragment_id"`
}

// ExtractedProject is one project record.
type ExtractedProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	DateRange    string   `json:"date_range,omitempty"`
	Confidence   float64  `json:"confidence"`
	FragmentIDs  []string `json:"fragment_ids"`
}

// ExtractedAward is one award or honor.
type ExtractedAward struct {
	Title      string  `json:"title"`
	Issuer     string  `json:"issuer,omitempty"`
	Year       int     `json:"year,omitempty"`
	Confidence float64 `json:"confidence"`
	FragmentID string  `json:"fragment_id"`
}

// ExtractedVolunteering is one volunteering record.
type ExtractedVolunteering struct {
	Role         string   `json:"role,omitempty"`
	Organization string   `json:"organization,omitempty"`
	DateRange    string   `json:"date_range,omitempty"`
	Description  string   `json:"description,omitempty"`
	Confidence   float64  `json:"confidence"`
	FragmentIDs  []string `json:"fragment_ids"`
}

// ExtractedReference is one professional reference.
type ExtractedReference struct {
	Name       string  `json:"name"`
	Contact    string  `json:"contact,omitempty"`
	Relation   string  `json:"relation,omitempty"`
	Confidence float64 `json:"confidence"`
	FragmentID string  `json:"fragment_id"`
}

// ExtractedPersonalInfo holds the raw contact and identity fields.
type ExtractedPersonalInfo struct {
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	Links       []string `json:"links,omitempty"`
	Confidence  float64  `json:"confidence"`
	FragmentIDs []string `json:"fragment_ids"`
}

// ExtractedData is the result of the component extraction stage.
type ExtractedData struct {
	PersonalInfo   ExtractedPersonalInfo    `json:"personal_info"`
	Summary        string                   `json:"summary,omitempty"`
	Experiences    []ExtractedExperience    `json:"experiences"`
	Education      []ExtractedEducation     `json:"education"`
	Skills         []ExtractedSkill         `json:"skills"`
	Languages      []ExtractedLanguage      `json:"languages"`
	Certifications []ExtractedCertification `json:"certifications"`
	Projects       []ExtractedProject       `json:"projects"`
	Awards         []ExtractedAward         `json:"awards"`
	Volunteering   []ExtractedVolunteering  `json:"volunteering"`
	Interests      []string                 `json:"interests,omitempty"`
	References     []ExtractedReference     `json:"references"`

	// OCRQuality is optional upstream OCR metadata in [0,1]; nil
	// means no OCR metadata was supplied.
	OCRQuality *float64 `json:"ocr_quality,omitempty"`
}

// NewExtractedData returns an empty result.
func NewExtractedData() *ExtractedData {
	return &ExtractedData{}
}
