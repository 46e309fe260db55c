// Package model defines the shared data model for the CV structure
// analysis pipeline: geometry primitives, positioned text fragments,
// the semantic section taxonomy, and the result types produced by each
// of the five stages (layout, section mapping, component extraction,
// normalization, quality scoring).
package model

import "math"

// Point represents a 2D point in page coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in screen coordinates. Y increases
// downward, so a valid box has Left <= Right and Top <= Bottom.
type BBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewBBox creates a bounding box from edge coordinates. Inconsistent
// edges are coerced into a valid box rather than rejected.
func NewBBox(left, top, right, bottom float64) BBox {
	return BBox{Left: left, Top: top, Right: right, Bottom: bottom}.Normalized()
}

// Normalized returns a copy with edges swapped where necessary so that
// Left <= Right and Top <= Bottom.
func (b BBox) Normalized() BBox {
	if b.Left > b.Right {
		b.Left, b.Right = b.Right, b.Left
	}
	if b.Top > b.Bottom {
		b.Top, b.Bottom = b.Bottom, b.Top
	}
	return b
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// Center returns the center point of the box.
func (b BBox) Center() Point {
	return Point{
		X: (b.Left + b.Right) / 2,
		Y: (b.Top + b.Bottom) / 2,
	}
}

// Area returns the area of the box.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Contains checks if a point is inside the bounding box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right &&
		p.Y >= b.Top && p.Y <= b.Bottom
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right < other.Left ||
		b.Left > other.Right ||
		b.Bottom < other.Top ||
		b.Top > other.Bottom)
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// ClampScore forces a confidence score into [0.0, 1.0]. Every score
// produced by the pipeline passes through here before being stored.
func ClampScore(s float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
