package sdf

import (
	"math"

	sdfx "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Bounded is implemented by shapes that know their axis-aligned extent.
type Bounded interface {
	BoundingBox() sdfx.Box3
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}

func minVec(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxVec(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// boxUnion returns the smallest box containing a and b.
func boxUnion(a, b sdfx.Box3) sdfx.Box3 {
	return sdfx.Box3{Min: minVec(a.Min, b.Min), Max: maxVec(a.Max, b.Max)}
}

// boxOverlap returns the intersection of a and b. Disjoint boxes collapse
// to a zero-size box at the midpoint of their gap.
func boxOverlap(a, b sdfx.Box3) sdfx.Box3 {
	lo := maxVec(a.Min, b.Min)
	hi := minVec(a.Max, b.Max)
	mid := lo.Add(hi).MulScalar(0.5)
	if lo.X > hi.X {
		lo.X, hi.X = mid.X, mid.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = mid.Y, mid.Y
	}
	if lo.Z > hi.Z {
		lo.Z, hi.Z = mid.Z, mid.Z
	}
	return sdfx.Box3{Min: lo, Max: hi}
}

// boundsOf returns the bounding box of s if it has one.
func boundsOf(s Shape) (sdfx.Box3, bool) {
	if b, ok := s.(Bounded); ok {
		return b.BoundingBox(), true
	}
	return sdfx.Box3{}, false
}
