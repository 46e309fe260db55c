package model

// SectionType identifies one semantic section of a CV. The taxonomy is
// closed: mapping only ever assigns one of the types listed here.
type SectionType string

const (
	SectionPersonalInfo   SectionType = "personal_info"
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionLanguages      SectionType = "languages"
	SectionCertifications SectionType = "certifications"
	SectionProjects       SectionType = "projects"
	SectionAwards         SectionType = "awards"
	SectionVolunteering   SectionType = "volunteering"
	SectionInterests      SectionType = "interests"
	SectionReferences     SectionType = "references"
)

// AllSectionTypes returns the closed section taxonomy in a stable order.
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionPersonalInfo,
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionLanguages,
		SectionCertifications,
		SectionProjects,
		SectionAwards,
		SectionVolunteering,
		SectionInterests,
		SectionReferences,
	}
}

// RegionType classifies a structural page region.
type RegionType string

const (
	RegionHeader  RegionType = "header"
	RegionFooter  RegionType = "footer"
	RegionSidebar RegionType = "sidebar"
	RegionBody    RegionType = "body"
)

// SidebarSide indicates where a detected sidebar column sits.
type SidebarSide string

const (
	SidebarLeft   SidebarSide = "left"
	SidebarRight  SidebarSide = "right"
	SidebarCenter SidebarSide = "center"
	SidebarNone   SidebarSide = ""
)

// StructuralRegion is a detected non-body region of a page.
type StructuralRegion struct {
	Type        RegionType `json:"type"`
	Page        int        `json:"page"`
	BBox        BBox       `json:"bbox"`
	FragmentIDs []string   `json:"fragment_ids"`
}

// LayoutAnalysis is the result of the layout analysis stage.
type LayoutAnalysis struct {
	// ColumnCount is the number of detected columns (0 for empty input).
	ColumnCount int `json:"column_count"`

	// Columns sorted left to right.
	Columns []*Column `json:"columns"`

	// ReadingOrder lists fragment IDs in global reading order.
	ReadingOrder []string `json:"reading_order"`

	// IsRTLLayout is true when the document reads right to left.
	IsRTLLayout bool `json:"is_rtl_layout"`

	// Language is the detected ISO 639-1 language code ("" if unknown).
	Language string `json:"language"`

	// Script is the dominant writing script name.
	Script string `json:"script"`

	// HasSidebar reports whether a narrow sidebar column was detected.
	HasSidebar  bool        `json:"has_sidebar"`
	SidebarSide SidebarSide `json:"sidebar_side,omitempty"`

	// SidebarColumn is the index of the sidebar column, -1 if none.
	SidebarColumn int `json:"sidebar_column"`

	// HasHeader and HasFooter report detected page furniture.
	HasHeader bool `json:"has_header"`
	HasFooter bool `json:"has_footer"`

	// Regions are the detected structural regions.
	Regions []StructuralRegion `json:"regions"`

	// Confidence is the layout detection confidence in [0,1].
	Confidence float64 `json:"confidence"`
}

// SectionCandidate is an ephemeral scoring record produced while
// mapping a fragment to a section. Many candidates exist per fragment;
// only the winning one influences the final mapping.
type SectionCandidate struct {
	FragmentID      string      `json:"fragment_id"`
	Section         SectionType `json:"section"`
	Confidence      float64     `json:"confidence"`
	MatchedKeywords []string    `json:"matched_keywords,omitempty"`
	Rationale       string      `json:"rationale,omitempty"`
}

// RiskKind classifies a contamination risk.
type RiskKind string

const (
	RiskLowConfidence     RiskKind = "low_confidence"
	RiskSpatialConflict   RiskKind = "spatial_conflict"
	RiskSectionDispersion RiskKind = "section_dispersion"
)

// ContaminationRisk flags a possible wrong-section assignment. Risks
// are diagnostic and never fatal; only spatial conflicts above the
// configured severity threshold reject an assignment.
type ContaminationRisk struct {
	FragmentID     string   `json:"fragment_id"`
	Kind           RiskKind `json:"kind"`
	Level          float64  `json:"level"`
	Details        string   `json:"details,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// SectionMapping is the result of the section mapping stage. Fragment
// IDs are disjoint across sections: a fragment belongs to at most one
// section.
type SectionMapping struct {
	// Sections maps each section type to its fragments in reading order.
	Sections map[SectionType][]*TextFragment `json:"-"`

	// SectionConfidence is the aggregated confidence per section.
	SectionConfidence map[SectionType]float64 `json:"section_confidence"`

	// Risks are the contamination risks recorded while mapping.
	Risks []ContaminationRisk `json:"risks"`

	// Unmapped lists fragments whose best candidate was rejected.
	Unmapped []*TextFragment `json:"-"`

	// Quality is the overall mapping quality score in [0,1].
	Quality float64 `json:"quality"`
}

// Fragments returns the fragments mapped to a section, or nil.
func (m *SectionMapping) Fragments(s SectionType) []*TextFragment {
	if m == nil || m.Sections == nil {
		return nil
	}
	return m.Sections[s]
}

// HighRiskCount counts spatial conflicts at or above the given level.
func (m *SectionMapping) HighRiskCount(minLevel float64) int {
	n := 0
	for _, r := range m.Risks {
		if r.Kind == RiskSpatialConflict && r.Level >= minLevel {
			n++
		}
	}
	return n
}
