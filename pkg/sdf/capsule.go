package sdf

import (
	"math"

	sdfx "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var (
	_ Shape     = Capsule{}
	_ Raycaster = Capsule{}
	_ sdfx.SDF3 = Capsule{}
)

// Capsule is the segment [A, B] swept by a ball of Radius: a cylindrical
// body capped by a hemisphere at each endpoint. A == B is allowed and
// behaves as a sphere centred at A.
type Capsule struct {
	A      v3.Vec  `json:"a"`
	B      v3.Vec  `json:"b"`
	Radius float64 `json:"radius"`
}

// NewCapsule returns the capsule around the segment [a, b].
func NewCapsule(a, b v3.Vec, radius float64) Capsule {
	return Capsule{A: a, B: b, Radius: radius}
}

// Distance returns the signed distance from p to the capsule's surface.
func (c Capsule) Distance(p v3.Vec) float64 {
	return CapsuleDistance(p, c.A, c.B, c.Radius)
}

// Raycast returns the capsule's surface crossings along r.
func (c Capsule) Raycast(r Ray) []RayHit {
	return RaycastCapsule(nil, r, c.A, c.B, c.Radius)
}

// Evaluate implements sdf.SDF3.
func (c Capsule) Evaluate(p v3.Vec) float64 {
	return c.Distance(p)
}

// BoundingBox implements sdf.SDF3.
func (c Capsule) BoundingBox() sdfx.Box3 {
	r := math.Abs(c.Radius)
	d := v3.Vec{X: r, Y: r, Z: r}
	return sdfx.Box3{
		Min: minVec(c.A, c.B).Sub(d),
		Max: maxVec(c.A, c.B).Add(d),
	}
}

// CapsuleDistance returns the signed distance from p to the capsule around
// [a, b]. The projection of p onto the axis is clamped to the segment,
// which is what separates a capsule from an infinite cylinder.
func CapsuleDistance(p, a, b v3.Vec, radius float64) float64 {
	pa := p.Sub(a)
	ba := b.Sub(a)
	h := 0.0
	if baba := ba.Dot(ba); baba != 0 {
		h = clamp(pa.Dot(ba)/baba, 0, 1)
	}
	return pa.Sub(ba.MulScalar(h)).Length() - radius
}

// RaycastCapsule appends the crossings of r with the capsule around [a, b]
// to dst and returns the extended slice.
//
// The capsule is the convex union of its finite cylindrical body and the
// two cap spheres, so the line is inside it over a single interval whose
// near end is the smallest entry and whose far end is the largest exit of
// the three parts. That interval then goes through the same case table as
// a sphere. The radius is taken by absolute value.
//
// RaycastCapsule panics with a *DiscriminantError when any of the
// quadratics has a NaN discriminant.
func RaycastCapsule(dst []RayHit, r Ray, a, b v3.Vec, radius float64) []RayHit {
	ray := r.normalized()
	cr := math.Abs(radius)

	s, ok := unitSphereSpan(ray, a, cr, "capsule cap")
	if sb, hit := unitSphereSpan(ray, b, cr, "capsule cap"); hit {
		s, ok = unionSpan(s, ok, sb), true
	}
	if sb, hit := bodySpan(ray, a, b, cr); hit {
		s, ok = unionSpan(s, ok, sb), true
	}
	if !ok {
		return dst
	}
	return appendHits(dst, ray, s, s.near.t == s.far.t)
}

// unionSpan merges o into s, or returns o if s is not set yet.
func unionSpan(s span, set bool, o span) span {
	if !set {
		return o
	}
	return s.union(o)
}

// bodySpan intersects a unit-direction line with the capsule's cylindrical
// body, clipped to the slab between the two end planes.
//
// With ba = B−A and oa = ro−A the infinite swept cylinder gives
//
//	a = baba − bard²,  b = baba·rdoa − baoa·bard,  c = baba·oaoa − baoa² − r²·baba
//
// and Δ = b² − ac. A root t lies on the body when its axis projection
// y = baoa + bard·t is within [0, baba]; outside that range the cap spheres
// own the surface.
//
// Lines parallel to the axis (a <= 0) and zero-length axes never reach
// the body extremes, so they are left to the caps rather than divided by.
func bodySpan(ray Ray, pa, pb v3.Vec, r float64) (span, bool) {
	rd := ray.Direction
	ba := pb.Sub(pa)
	oa := ray.Origin.Sub(pa)

	baba := ba.Dot(ba)
	bard := ba.Dot(rd)
	baoa := ba.Dot(oa)
	rdoa := rd.Dot(oa)
	oaoa := oa.Dot(oa)

	a := baba - bard*bard
	b := baba*rdoa - baoa*bard
	c := baba*oaoa - baoa*baoa - r*r*baba
	del := b*b - a*c
	checkDiscriminant("capsule body", del)

	if baba == 0 || a <= 0 || del < 0 {
		return span{}, false
	}

	root := math.Sqrt(del)
	t0 := (-b - root) / a
	t1 := (-b + root) / a

	// Clip to the slab 0 <= y <= baba.
	if bard == 0 {
		if baoa < 0 || baoa > baba {
			return span{}, false
		}
	} else {
		lo := -baoa / bard
		hi := (baba - baoa) / bard
		if lo > hi {
			lo, hi = hi, lo
		}
		t0 = math.Max(t0, lo)
		t1 = math.Min(t1, hi)
		if t0 > t1 {
			return span{}, false
		}
	}

	axisPoint := func(t float64) v3.Vec {
		y := baoa + bard*t
		return pa.Add(ba.MulScalar(y / baba))
	}
	return span{
		near: bound{t: t0, center: axisPoint(t0)},
		far:  bound{t: t1, center: axisPoint(t1)},
	}, true
}
