package sdf

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// crossing is a classified root of a ray quadratic.
type crossing struct {
	t    float64
	kind HitKind
}

// classify applies the ray case table to the interval [t0, t1] where the
// infinite line lies inside a shape. tangent marks a double root.
//
//	tangent, t0 >= 0       -> Tangent(t0)
//	tangent, t0 < 0        -> none
//	t0 >= 0, t1 > 0        -> Enter(t0), Exit(t1)
//	t0 < 0, t1 >= 0        -> Exit(t1)
//	t0 < 0, t1 < 0         -> none
func classify(t0, t1 float64, tangent bool) ([2]crossing, int) {
	var cs [2]crossing
	switch {
	case tangent:
		if t0 < 0 {
			return cs, 0
		}
		cs[0] = crossing{t: t0, kind: Tangent}
		return cs, 1
	case t0 >= 0 && t1 > 0:
		cs[0] = crossing{t: t0, kind: Enter}
		cs[1] = crossing{t: t1, kind: Exit}
		return cs, 2
	case t1 >= 0:
		cs[0] = crossing{t: t1, kind: Exit}
		return cs, 1
	default:
		return cs, 0
	}
}

// bound is one end of a span: the parameter and the centre used to
// derive the surface normal there.
type bound struct {
	t      float64
	center v3.Vec
}

// span is the parametric interval over which a line is inside a solid.
type span struct {
	near, far bound
}

// union widens s to cover o. Both spans must belong to parts of the same
// convex solid, so the result is again a single interval.
func (s span) union(o span) span {
	if o.near.t < s.near.t {
		s.near = o.near
	}
	if o.far.t > s.far.t {
		s.far = o.far
	}
	return s
}

// unitSphereSpan solves the line/sphere quadratic for a unit direction
// using the half-b form: t = -b ± sqrt(b² - c).
func unitSphereSpan(ray Ray, center v3.Vec, radius float64, shape string) (span, bool) {
	oc := ray.Origin.Sub(center)
	b := ray.Direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius
	del := b*b - c
	checkDiscriminant(shape, del)
	if del < 0 {
		return span{}, false
	}
	root := math.Sqrt(del)
	return span{
		near: bound{t: -b - root, center: center},
		far:  bound{t: -b + root, center: center},
	}, true
}

// appendHits turns the classified crossings of s into hits. The normal of
// each hit points from the recorded centre towards the hit point.
func appendHits(dst []RayHit, ray Ray, s span, tangent bool) []RayHit {
	cs, n := classify(s.near.t, s.far.t, tangent)
	for _, c := range cs[:n] {
		end := s.near
		if c.kind == Exit {
			end = s.far
		}
		p := ray.At(c.t)
		dst = append(dst, RayHit{
			Kind:     c.kind,
			Ray:      ray,
			Distance: c.t,
			Point:    p,
			Normal:   p.Sub(end.center).Normalize(),
		})
	}
	return dst
}
