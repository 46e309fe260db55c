package model

// FieldConfidence scores one field of the normalized output. Value is
// masked (truncated and never containing full contact data) so the
// record is safe to log.
type FieldConfidence struct {
	Field       string   `json:"field"`
	MaskedValue string   `json:"masked_value"`
	Score       float64  `json:"score"`
	Rationale   string   `json:"rationale,omitempty"`
	Validations []string `json:"validations,omitempty"`
}

// SectionQualityMetrics aggregates field scores for one section.
type SectionQualityMetrics struct {
	Section      SectionType       `json:"section"`
	Completeness float64           `json:"completeness"`
	Confidence   float64           `json:"confidence"`
	Fields       []FieldConfidence `json:"fields"`
	DataDensity  float64           `json:"data_density"`
	Validation   float64           `json:"validation"`
}

// ExtractionQuality holds the extraction sub-scores.
type ExtractionQuality struct {
	DateAccuracy    float64 `json:"date_accuracy"`
	EntityAccuracy  float64 `json:"entity_accuracy"`
	SectionBoundary float64 `json:"section_boundary"`
	LayoutAccuracy  float64 `json:"layout_accuracy"`

	// OCRQuality is present only when upstream OCR metadata was
	// supplied; nil otherwise.
	OCRQuality *float64 `json:"ocr_quality,omitempty"`
}

// ProcessingLogEntry is one structured, replayable record of what a
// stage did. Entries are deterministic for identical input.
type ProcessingLogEntry struct {
	Stage   string         `json:"stage"`
	Step    string         `json:"step"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// GlobalQualityMetrics is the result of the quality scoring stage.
type GlobalQualityMetrics struct {
	GlobalScore  float64 `json:"global_score"`
	Completeness float64 `json:"completeness"`

	Sections map[SectionType]SectionQualityMetrics `json:"sections"`

	Extraction ExtractionQuality `json:"extraction"`

	// Warnings and Recommendations are advisory text generated from
	// fixed thresholds; they never drive control flow.
	Warnings        []string `json:"warnings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	Log []ProcessingLogEntry `json:"log,omitempty"`
}
