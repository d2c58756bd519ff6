package sdf

import (
	"math"

	sdfx "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var (
	_ Shape     = Sphere{}
	_ Raycaster = Sphere{}
	_ sdfx.SDF3 = Sphere{}
)

// Sphere is a ball of Radius centred at Origin.
type Sphere struct {
	Origin v3.Vec  `json:"origin"`
	Radius float64 `json:"radius"`
}

// NewSphere returns a sphere of the given radius centred at origin.
func NewSphere(origin v3.Vec, radius float64) Sphere {
	return Sphere{Origin: origin, Radius: radius}
}

// Distance returns the signed distance from p to the sphere's surface.
func (s Sphere) Distance(p v3.Vec) float64 {
	return SphereDistance(p, s.Origin, s.Radius)
}

// Raycast returns the sphere's surface crossings along r.
func (s Sphere) Raycast(r Ray) []RayHit {
	return RaycastSphere(nil, r, s.Origin, s.Radius)
}

// Evaluate implements sdf.SDF3.
func (s Sphere) Evaluate(p v3.Vec) float64 {
	return s.Distance(p)
}

// BoundingBox implements sdf.SDF3.
func (s Sphere) BoundingBox() sdfx.Box3 {
	r := math.Abs(s.Radius)
	d := v3.Vec{X: r, Y: r, Z: r}
	return sdfx.Box3{Min: s.Origin.Sub(d), Max: s.Origin.Add(d)}
}

// SphereDistance returns ‖p − origin‖ − radius.
func SphereDistance(p, origin v3.Vec, radius float64) float64 {
	return p.Sub(origin).Length() - radius
}

// RaycastSphere appends the crossings of r with the sphere (origin, radius)
// to dst and returns the extended slice.
//
// Substituting p = ro + t·rd into |p − so|² = r² gives
//
//	a·t² + b·t + c = 0,  a = rd·rd,  b = 2·rd·(ro−so),  c = |ro−so|² − r²
//
// and the sign of Δ = b² − 4ac decides how many times the line meets the
// sphere. The roots are then filtered to the forward half of the line.
// The radius is taken by absolute value.
//
// RaycastSphere panics with a *DiscriminantError when Δ is NaN.
func RaycastSphere(dst []RayHit, r Ray, origin v3.Vec, radius float64) []RayHit {
	ray := r.normalized()
	rd := ray.Direction
	rs := ray.Origin.Sub(origin)
	sr := math.Abs(radius)

	a := rd.Dot(rd)
	b := 2 * rd.Dot(rs)
	c := rs.Dot(rs) - sr*sr
	del := b*b - 4*a*c
	checkDiscriminant("sphere", del)

	if del < 0 {
		return dst
	}

	a2 := 2 * a
	s := span{near: bound{center: origin}, far: bound{center: origin}}
	if del == 0 {
		s.near.t = -b / a2
		s.far.t = s.near.t
		return appendHits(dst, ray, s, true)
	}

	root := math.Sqrt(del)
	s.near.t = (-b - root) / a2
	s.far.t = (-b + root) / a2
	return appendHits(dst, ray, s, false)
}
