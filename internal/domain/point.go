package domain

import (
	"fmt"
	"math"
)

// Point is a 2D polygon vertex in slide coordinates. Both coordinates are
// finite; NaN and infinities never enter the domain.
type Point struct {
	x float64
	y float64
}

// NewPoint validates both coordinates, failing with ErrInvalidCoordinates on
// NaN or infinite input.
func NewPoint(x, y float64) (Point, error) {
	if !isFinite(x) || !isFinite(y) {
		return Point{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, x, y)
	}
	return Point{x: x, y: y}, nil
}

func (p Point) X() float64 { return p.x }
func (p Point) Y() float64 { return p.y }

// RawPoint mirrors the wire shape of a polygon vertex.
type RawPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPointFromRaw builds a Point from its wire shape.
func NewPointFromRaw(raw RawPoint) (Point, error) {
	return NewPoint(raw.X, raw.Y)
}

// ToRaw serializes the point back to its wire shape.
func (p Point) ToRaw() RawPoint {
	return RawPoint{X: p.x, Y: p.y}
}

// NewPolygon builds an ordered vertex sequence, propagating the first
// coordinate failure with its index.
func NewPolygon(raw []RawPoint) ([]Point, error) {
	if len(raw) == 0 {
		return []Point{}, nil
	}
	points := make([]Point, 0, len(raw))
	for i, rp := range raw {
		p, err := NewPointFromRaw(rp)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		points = append(points, p)
	}
	return points, nil
}

// PolygonToRaw serializes a polygon point by point; the result never aliases
// the input.
func PolygonToRaw(polygon []Point) []RawPoint {
	raw := make([]RawPoint, 0, len(polygon))
	for _, p := range polygon {
		raw = append(raw, p.ToRaw())
	}
	return raw
}

// ClonePolygon deep-copies a polygon so local edits never leak into a stored
// entity.
func ClonePolygon(polygon []Point) []Point {
	out := make([]Point, len(polygon))
	copy(out, polygon)
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
