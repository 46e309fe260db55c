package model

import "github.com/google/uuid"

// TextFragment represents a piece of positioned text supplied by an
// upstream document parser or OCR engine. The pipeline annotates the
// fragment in place with ReadingOrder, ColumnID, and Section during one
// document's analysis; the annotations are local to that run.
type TextFragment struct {
	// ID uniquely identifies the fragment. Assigned via EnsureID when
	// the upstream parser supplies none.
	ID string `json:"id"`

	// Text is the fragment's text content.
	Text string `json:"text"`

	// BBox is the fragment's position on the page.
	BBox BBox `json:"bbox"`

	// Page is the zero-based page number.
	Page int `json:"page"`

	// FontSize is the font size in page units (0 if unknown).
	FontSize float64 `json:"font_size,omitempty"`

	// FontName is the font name as reported upstream (may be empty).
	FontName string `json:"font_name,omitempty"`

	// Bold and Italic are best-effort font style flags.
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`

	// Confidence is the upstream extraction confidence in [0,1].
	// Callers that have no confidence signal should supply 1.0.
	Confidence float64 `json:"confidence"`

	// ReadingOrder is the global reading index assigned by the layout
	// analyzer. -1 until assigned.
	ReadingOrder int `json:"reading_order"`

	// ColumnID is the index of the column the fragment belongs to.
	// -1 until assigned.
	ColumnID int `json:"column_id"`

	// Section is the semantic section assigned by the section mapper.
	// Empty until assigned.
	Section SectionType `json:"section,omitempty"`
}

// NewTextFragment creates a fragment with a fresh ID and unassigned
// layout annotations.
func NewTextFragment(text string, bbox BBox, page int) *TextFragment {
	return &TextFragment{
		ID:           uuid.NewString(),
		Text:         text,
		BBox:         bbox.Normalized(),
		Page:         page,
		Confidence:   1.0,
		ReadingOrder: -1,
		ColumnID:     -1,
	}
}

// EnsureID assigns a fresh ID if the fragment has none.
func (f *TextFragment) EnsureID() {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
}

// Column represents a detected vertical column of text.
type Column struct {
	// ID is the stable column index after left-to-right re-sorting.
	ID int `json:"id"`

	// BBox is the bounding box of the column's content.
	BBox BBox `json:"bbox"`

	// Fragments are the member fragments sorted top to bottom.
	Fragments []*TextFragment `json:"-"`

	// Order is the column's position in reading order. For
	// right-to-left documents this differs from ID.
	Order int `json:"order"`
}

// CenterX returns the horizontal center of the column.
func (c *Column) CenterX() float64 {
	return c.BBox.Center().X
}
