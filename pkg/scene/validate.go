package scene

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/minsley/Matth/pkg/sdf"
)

// Severity indicates whether a validation finding blocks queries or is
// merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks queries
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue describes a single validation finding.
type Issue struct {
	Node     string   // which node has the problem (empty if scene-level)
	Message  string   // human-readable description
	Severity Severity // error or warning
}

func (e Issue) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %q: %s", e.Severity, e.Node, e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// OK reports whether validation found no errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) errorf(node, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Node: node, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
}

func (r *ValidationResult) warnf(node, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Node: node, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
}

// Validate checks the scene for inputs the geometry core does not guard
// against. The core propagates NaN for degenerate shapes and panics on
// NaN discriminants, so non-finite parameters are errors here. Shapes that
// are legal but probably unintended produce warnings.
func (s *Scene) Validate() ValidationResult {
	var res ValidationResult

	for _, name := range s.Roots {
		if s.Nodes[name] == nil {
			res.errorf("", "root %q does not exist", name)
		}
	}

	for _, name := range s.order {
		n := s.Nodes[name]
		for _, c := range n.Children {
			if s.Nodes[c] == nil {
				res.errorf(n.Name, "references missing node %q", c)
			}
		}

		switch shape := n.Shape.(type) {
		case sdf.Sphere:
			checkFinite(&res, n.Name, "origin", shape.Origin)
			checkRadius(&res, n.Name, shape.Radius)
		case sdf.Capsule:
			checkFinite(&res, n.Name, "endpoint a", shape.A)
			checkFinite(&res, n.Name, "endpoint b", shape.B)
			checkRadius(&res, n.Name, shape.Radius)
			if shape.A == shape.B {
				res.warnf(n.Name, "capsule endpoints coincide; it behaves as a sphere")
			}
		case *sdf.Combination:
			res.warnf(n.Name, "%s nodes answer distance queries only and are skipped by raycasts", shape.Op)
		case *sdf.Group:
			if shape.Len() == 0 {
				res.warnf(n.Name, "empty group; its distance is NaN")
			}
		case nil:
			res.errorf(n.Name, "node has no shape")
		}
	}

	return res
}

func checkFinite(res *ValidationResult, node, what string, v v3.Vec) {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			res.errorf(node, "%s %v is not finite", what, v)
			return
		}
	}
}

func checkRadius(res *ValidationResult, node string, r float64) {
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		res.errorf(node, "radius %v is not finite", r)
	case r < 0:
		res.warnf(node, "radius %.4f is negative; raycasts use its magnitude but distances do not", r)
	case r == 0:
		res.warnf(node, "radius is zero; the shape has no volume")
	}
}
