package scene

import (
	"fmt"

	sdfx "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/minsley/Matth/pkg/sdf"
)

// Scene is the set of named nodes built by a scene script.
//
// A Scene is built once and then queried; it is not safe to mutate while
// other goroutines query it.
type Scene struct {
	Nodes map[string]*Node `json:"nodes"`
	Roots []string         `json:"roots"`
	order []string
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		Nodes: make(map[string]*Node),
	}
}

// AddNode adds n to the scene, replacing any node with the same name.
func (s *Scene) AddNode(n *Node) {
	if _, ok := s.Nodes[n.Name]; !ok {
		s.order = append(s.order, n.Name)
	}
	s.Nodes[n.Name] = n
}

// AddRoot registers a node name as a root of the scene.
func (s *Scene) AddRoot(name string) {
	s.Roots = append(s.Roots, name)
}

// Lookup returns the node with the given name, or nil.
func (s *Scene) Lookup(name string) *Node {
	return s.Nodes[name]
}

// Get returns the node with the given name and whether it exists.
func (s *Scene) Get(name string) (*Node, bool) {
	n, ok := s.Nodes[name]
	return n, ok
}

// MustLookup returns the node with the given name, or panics.
func (s *Scene) MustLookup(name string) *Node {
	n := s.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("scene: no node named %q", name))
	}
	return n
}

// Names returns node names in the order they were first added.
func (s *Scene) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Children returns the child nodes of n that exist in the scene.
func (s *Scene) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, name := range n.Children {
		if c := s.Nodes[name]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// RootNodes returns the root nodes that exist in the scene.
func (s *Scene) RootNodes() []*Node {
	roots := make([]*Node, 0, len(s.Roots))
	for _, name := range s.Roots {
		if n := s.Nodes[name]; n != nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// NodeCount returns the total number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.Nodes)
}

// Group returns the union of the root shapes.
func (s *Scene) Group() *sdf.Group {
	g := sdf.NewGroup()
	for _, n := range s.RootNodes() {
		g.Add(n.Shape)
	}
	return g
}

// Distance returns the signed distance from p to the union of the roots,
// or NaN if the scene has no roots.
func (s *Scene) Distance(p v3.Vec) float64 {
	return s.Group().Distance(p)
}

// RootSolid is a root node exposed as an sdfx solid.
type RootSolid struct {
	Name string
	SDF  sdfx.SDF3
}

// Solids returns the roots that can be handed to sdfx, in root order.
func (s *Scene) Solids() []RootSolid {
	var out []RootSolid
	for _, n := range s.RootNodes() {
		if solid, ok := n.Solid(); ok {
			out = append(out, RootSolid{Name: n.Name, SDF: solid})
		}
	}
	return out
}
