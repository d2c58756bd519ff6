package sdf

import (
	"math"

	sdfx "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	_ Shape     = (*Group)(nil)
	_ sdfx.SDF3 = (*Group)(nil)
)

// Group is the union of any number of shapes. It references its members
// without owning them.
//
// A Group is not safe for concurrent mutation: callers that Add or Remove
// while other goroutines query Distance must synchronize access. Queries
// alone may run concurrently.
type Group struct {
	shapes []Shape
}

// NewGroup returns a group holding shapes in order.
func NewGroup(shapes ...Shape) *Group {
	g := &Group{}
	g.shapes = append(g.shapes, shapes...)
	return g
}

// Add appends s to the group.
func (g *Group) Add(s Shape) {
	g.shapes = append(g.shapes, s)
}

// Remove deletes the first member equal to s and reports whether one was
// found. Pointer shapes compare by identity, value shapes by value.
func (g *Group) Remove(s Shape) bool {
	for i, m := range g.shapes {
		if m == s {
			g.shapes = append(g.shapes[:i], g.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.shapes)
}

// Shapes returns a copy of the member list.
func (g *Group) Shapes() []Shape {
	out := make([]Shape, len(g.shapes))
	copy(out, g.shapes)
	return out
}

// Distance returns the minimum member distance, or NaN for an empty group.
func (g *Group) Distance(p v3.Vec) float64 {
	if len(g.shapes) == 0 {
		return math.NaN()
	}
	best := g.shapes[0].Distance(p)
	for _, s := range g.shapes[1:] {
		if d := s.Distance(p); d < best {
			best = d
		}
	}
	return best
}

// UnionDistance returns the union of the group with other at p.
func (g *Group) UnionDistance(other Shape, p v3.Vec) float64 {
	return UnionDistance(g.Distance(p), other.Distance(p))
}

// SubtractionDistance returns other with the group removed, at p.
func (g *Group) SubtractionDistance(other Shape, p v3.Vec) float64 {
	return SubtractionDistance(g.Distance(p), other.Distance(p))
}

// IntersectionDistance returns the intersection of the group and other at p.
func (g *Group) IntersectionDistance(other Shape, p v3.Vec) float64 {
	return IntersectionDistance(g.Distance(p), other.Distance(p))
}

// XorDistance returns the symmetric difference of the group and other at p.
func (g *Group) XorDistance(other Shape, p v3.Vec) float64 {
	return XorDistance(g.Distance(p), other.Distance(p))
}

// Evaluate implements sdf.SDF3.
func (g *Group) Evaluate(p v3.Vec) float64 {
	return g.Distance(p)
}

// BoundingBox implements sdf.SDF3 as the union of the members' boxes.
// Members without bounds are skipped; an empty group has a zero box.
func (g *Group) BoundingBox() sdfx.Box3 {
	var box sdfx.Box3
	found := false
	for _, s := range g.shapes {
		b, ok := boundsOf(s)
		if !ok {
			continue
		}
		if !found {
			box, found = b, true
			continue
		}
		box = boxUnion(box, b)
	}
	return box
}
