package sdf

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// HitKind classifies a ray/surface crossing.
type HitKind int

const (
	Enter   HitKind = iota // ray passes from outside to inside
	Exit                   // ray passes from inside to outside
	Tangent                // ray grazes the surface at a double root
)

func (k HitKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	case Tangent:
		return "tangent"
	default:
		return fmt.Sprintf("HitKind(%d)", int(k))
	}
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (k HitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (k *HitKind) UnmarshalText(text []byte) error {
	for _, c := range []HitKind{Enter, Exit, Tangent} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("sdf: unknown hit kind %q", text)
}

// Ray is a half-line starting at Origin. Direction does not need to be
// normalized; raycasts normalize it before use.
type Ray struct {
	Origin    v3.Vec `json:"origin"`
	Direction v3.Vec `json:"direction"`
}

// At returns the point at parameter t along the ray's direction as given.
func (r Ray) At(t float64) v3.Vec {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// normalized returns a copy of the ray with a unit direction.
// A zero direction yields NaN components.
func (r Ray) normalized() Ray {
	return Ray{Origin: r.Origin, Direction: r.Direction.Normalize()}
}

// RayHit describes a single surface crossing.
//
// Ray holds the ray actually traced, with its direction normalized, so that
// Point == Ray.At(Distance).
type RayHit struct {
	Kind     HitKind `json:"kind"`
	Ray      Ray     `json:"ray"`
	Distance float64 `json:"distance"` // parametric t along Ray, never negative
	Point    v3.Vec  `json:"point"`
	Normal   v3.Vec  `json:"normal"` // unit, pointing away from the interior
}

// Raycaster is implemented by shapes that can compute exact ray/surface
// intersections. The returned slice holds 0, 1 or 2 hits; when it holds 2
// they are an Enter followed by an Exit with ascending Distance.
type Raycaster interface {
	Raycast(r Ray) []RayHit
}
