package scene

import (
	"slices"

	"github.com/minsley/Matth/pkg/sdf"
)

// Hit is a surface crossing of one primitive node.
type Hit struct {
	Shape string `json:"shape"`
	sdf.RayHit
}

// RaycastResult bundles the hits of a scene raycast with the nodes that
// were reachable but could not be traced exactly.
type RaycastResult struct {
	Hits    []Hit    `json:"hits"`
	Skipped []string `json:"skipped,omitempty"`
}

// Raycast traces r against every primitive reachable from the roots and
// returns all crossings ordered by distance along the ray. Hits are per
// primitive: crossings that fall inside another root are still reported.
// Combination nodes are listed in Skipped. Each node is traced once even
// if several groups reference it.
func (s *Scene) Raycast(r sdf.Ray) RaycastResult {
	res := RaycastResult{Hits: []Hit{}}
	seen := make(map[string]bool)

	var walk func(n *Node)
	walk = func(n *Node) {
		if seen[n.Name] {
			return
		}
		seen[n.Name] = true

		switch n.Kind {
		case NodeGroup:
			for _, c := range s.Children(n) {
				walk(c)
			}
		case NodeCombination:
			res.Skipped = append(res.Skipped, n.Name)
		default:
			rc, ok := n.Raycaster()
			if !ok {
				res.Skipped = append(res.Skipped, n.Name)
				return
			}
			for _, h := range rc.Raycast(r) {
				res.Hits = append(res.Hits, Hit{Shape: n.Name, RayHit: h})
			}
		}
	}
	for _, n := range s.RootNodes() {
		walk(n)
	}

	slices.SortStableFunc(res.Hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return res
}
