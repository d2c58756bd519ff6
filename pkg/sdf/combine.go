package sdf

import (
	"fmt"

	sdfx "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Op selects the reducer a Combination applies.
type Op int

const (
	OpUnion     Op = iota // min(d1, d2)
	OpSubtract            // max(-d1, d2): A removed from B
	OpIntersect           // max(d1, d2)
	OpXor                 // max(min(d1, d2), -max(d1, d2))
)

func (o Op) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpSubtract:
		return "difference"
	case OpIntersect:
		return "intersection"
	case OpXor:
		return "xor"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

var (
	_ Shape     = (*Combination)(nil)
	_ sdfx.SDF3 = (*Combination)(nil)
)

// Combination is the boolean combination of two shapes. It only answers
// distance queries; combined surfaces are not raycast.
type Combination struct {
	Op Op
	A  Shape
	B  Shape
}

// Union returns the shape covering a or b.
func Union(a, b Shape) *Combination { return &Combination{Op: OpUnion, A: a, B: b} }

// Subtract returns b with the volume of a removed.
func Subtract(a, b Shape) *Combination { return &Combination{Op: OpSubtract, A: a, B: b} }

// Intersect returns the volume shared by a and b.
func Intersect(a, b Shape) *Combination { return &Combination{Op: OpIntersect, A: a, B: b} }

// Xor returns the volume covered by exactly one of a and b.
func Xor(a, b Shape) *Combination { return &Combination{Op: OpXor, A: a, B: b} }

// Distance applies the combination's reducer to the distances of A and B.
func (c *Combination) Distance(p v3.Vec) float64 {
	d1, d2 := c.A.Distance(p), c.B.Distance(p)
	switch c.Op {
	case OpUnion:
		return UnionDistance(d1, d2)
	case OpSubtract:
		return SubtractionDistance(d1, d2)
	case OpIntersect:
		return IntersectionDistance(d1, d2)
	case OpXor:
		return XorDistance(d1, d2)
	}
	panic(fmt.Sprintf("sdf: unknown combination op %v", c.Op))
}

// Evaluate implements sdf.SDF3.
func (c *Combination) Evaluate(p v3.Vec) float64 {
	return c.Distance(p)
}

// BoundingBox implements sdf.SDF3. Operands without bounds are ignored.
func (c *Combination) BoundingBox() sdfx.Box3 {
	ba, okA := boundsOf(c.A)
	bb, okB := boundsOf(c.B)
	switch {
	case !okA && !okB:
		return sdfx.Box3{}
	case !okA:
		return bb
	case !okB:
		if c.Op == OpSubtract {
			return sdfx.Box3{}
		}
		return ba
	}
	switch c.Op {
	case OpSubtract:
		return bb
	case OpIntersect:
		return boxOverlap(ba, bb)
	default:
		return boxUnion(ba, bb)
	}
}
