package scene

import (
	"fmt"

	sdfx "github.com/deadsy/sdfx/sdf"
	"github.com/minsley/Matth/pkg/sdf"
)

// NodeKind enumerates the kinds of scene nodes.
type NodeKind int

const (
	NodeSphere      NodeKind = iota // sdf.Sphere
	NodeCapsule                     // sdf.Capsule
	NodeCombination                 // boolean combination of two shapes
	NodeGroup                       // union of child nodes
)

func (k NodeKind) String() string {
	switch k {
	case NodeSphere:
		return "sphere"
	case NodeCapsule:
		return "capsule"
	case NodeCombination:
		return "combination"
	case NodeGroup:
		return "group"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

func (k NodeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Node is a named shape in the scene.
type Node struct {
	Name     string    `json:"name"`
	Kind     NodeKind  `json:"kind"`
	Children []string  `json:"children,omitempty"` // referenced nodes, in order
	Shape    sdf.Shape `json:"-"`
}

// Solid returns the node's shape as an sdfx solid, if it is one.
func (n *Node) Solid() (sdfx.SDF3, bool) {
	s, ok := n.Shape.(sdfx.SDF3)
	return s, ok
}

// Raycaster returns the node's shape as an exact raycaster. Only
// primitive nodes can be raycast.
func (n *Node) Raycaster() (sdf.Raycaster, bool) {
	if n.Kind != NodeSphere && n.Kind != NodeCapsule {
		return nil, false
	}
	r, ok := n.Shape.(sdf.Raycaster)
	return r, ok
}
