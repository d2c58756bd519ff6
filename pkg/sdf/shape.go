package sdf

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Shape is anything that can report the signed distance from a point to
// its surface: negative inside, zero on the surface, positive outside.
type Shape interface {
	Distance(p v3.Vec) float64
}

// UnionDistance combines two signed distances so the closer surface wins.
func UnionDistance(d1, d2 float64) float64 {
	return math.Min(d1, d2)
}

// SubtractionDistance removes the volume of shape 1 from shape 2.
func SubtractionDistance(d1, d2 float64) float64 {
	return math.Max(-d1, d2)
}

// IntersectionDistance keeps only the volume common to both shapes.
func IntersectionDistance(d1, d2 float64) float64 {
	return math.Max(d1, d2)
}

// XorDistance keeps the volume covered by exactly one of the shapes.
func XorDistance(d1, d2 float64) float64 {
	return math.Max(math.Min(d1, d2), -math.Max(d1, d2))
}
