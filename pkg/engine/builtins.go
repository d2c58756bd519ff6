package engine

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/minsley/Matth/pkg/scene"
	"github.com/minsley/Matth/pkg/sdf"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a v3.Vec.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpShape is an anonymous shape expression that has not been named by
// defshape yet.
type sexpShape struct {
	node *scene.Node
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.node.Kind)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpShapeRef refers to a named node in the scene.
type sexpShapeRef struct {
	name string
}

func (r *sexpShapeRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %q)", r.name)
}
func (r *sexpShapeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A keyword at the end of the list with no value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// only returns an error naming the first keyword not in allowed.
func (a kwArgs) only(fn string, allowed ...string) error {
	for name := range a.kw {
		known := false
		for _, k := range allowed {
			if name == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%s: unknown keyword :%s", fn, name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_union) and plain strings ("union").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toOp converts a keyword or string naming a boolean operation to an sdf.Op.
func toOp(s zygo.Sexp) (sdf.Op, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected operation keyword: %w", err)
	}
	for _, op := range combineOps {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("invalid operation %q, expected union, difference, intersection or xor", name)
}

// toVec3 extracts a v3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// flattenArgs expands list and array arguments in place, so that
// (scene "s" a b) and (scene "s" (list a b)) are equivalent.
func flattenArgs(args []zygo.Sexp) ([]zygo.Sexp, error) {
	var out []zygo.Sexp
	for _, a := range args {
		switch a.(type) {
		case *zygo.SexpPair, *zygo.SexpArray:
			items, err := sexpListToSlice(a)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Scene builder
// ---------------------------------------------------------------------------

// builder accumulates nodes into a scene while a script runs.
type builder struct {
	sc      *scene.Scene
	defined []string // defshape names in first-definition order
	scenes  int      // number of scene forms evaluated
}

func newBuilder(sc *scene.Scene) *builder {
	return &builder{sc: sc}
}

// define adds n to the scene, replacing an earlier node of the same name.
func (b *builder) define(n *scene.Node) {
	if b.sc.Lookup(n.Name) == nil {
		b.defined = append(b.defined, n.Name)
	}
	b.sc.AddNode(n)
}

// finish makes every defined shape a root when the script declared no
// scene of its own.
func (b *builder) finish() {
	if b.scenes > 0 {
		return
	}
	for _, name := range b.defined {
		b.sc.AddRoot(name)
	}
}

// operand resolves a shape argument to its shape and the names of the
// scene nodes it refers to.
func (b *builder) operand(s zygo.Sexp) (sdf.Shape, []string, error) {
	switch v := s.(type) {
	case *sexpShapeRef:
		n := b.sc.Lookup(v.name)
		if n == nil {
			return nil, nil, fmt.Errorf("no shape named %q", v.name)
		}
		return n.Shape, []string{v.name}, nil
	case *sexpShape:
		return v.node.Shape, v.node.Children, nil
	}
	return nil, nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// combine folds operands left to right with op. For difference the later
// operands are removed from the first: (difference base cutter).
func (b *builder) combine(fn string, op sdf.Op, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) < 2 {
		return zygo.SexpNull, fmt.Errorf("%s requires at least two shapes, got %d", fn, len(args))
	}

	acc, children, err := b.operand(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: shape 1: %w", fn, err)
	}
	for i := 1; i < len(args); i++ {
		s, refs, err := b.operand(args[i])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: shape %d: %w", fn, i+1, err)
		}
		if op == sdf.OpSubtract {
			acc = sdf.Subtract(s, acc)
		} else {
			acc = &sdf.Combination{Op: op, A: acc, B: s}
		}
		children = append(children, refs...)
	}

	return &sexpShape{node: &scene.Node{
		Kind:     scene.NodeCombination,
		Children: children,
		Shape:    acc,
	}}, nil
}

// combineOps are the boolean operations registered as builtins under
// their own names.
var combineOps = []sdf.Op{sdf.OpUnion, sdf.OpSubtract, sdf.OpIntersect, sdf.OpXor}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys environment.
// The builtins populate the builder's scene during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		var c [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			c[i] = f
		}

		return &sexpVec3{vec: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 5 :at (vec3 0 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("sphere", "radius", "at"); err != nil {
			return zygo.SexpNull, err
		}

		v, ok := pa.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("sphere requires :radius")
		}
		r, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}

		var at v3.Vec
		if v, ok := pa.kw["at"]; ok {
			at, err = toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: at: %w", err)
			}
		}

		return &sexpShape{node: &scene.Node{
			Kind:  scene.NodeSphere,
			Shape: sdf.NewSphere(at, r),
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (capsule :a (vec3 0 -10 0) :b (vec3 0 10 0) :radius 5)
	// -----------------------------------------------------------------------
	env.AddFunction("capsule", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("capsule", "a", "b", "radius"); err != nil {
			return zygo.SexpNull, err
		}

		var ends [2]v3.Vec
		for i, k := range []string{"a", "b"} {
			v, ok := pa.kw[k]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("capsule requires :%s", k)
			}
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("capsule: %s: %w", k, err)
			}
			ends[i] = vec
		}

		v, ok := pa.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("capsule requires :radius")
		}
		r, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("capsule: radius: %w", err)
		}

		return &sexpShape{node: &scene.Node{
			Kind:  scene.NodeCapsule,
			Shape: sdf.NewCapsule(ends[0], ends[1], r),
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...), (difference a b ...), (intersection a b ...),
	// (xor a b ...)
	// -----------------------------------------------------------------------
	for _, op := range combineOps {
		env.AddFunction(op.String(), func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			return b.combine(op.String(), op, args)
		})
	}

	// -----------------------------------------------------------------------
	// (combine :difference a b)
	// -----------------------------------------------------------------------
	env.AddFunction("combine", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("combine requires an operation")
		}
		op, err := toOp(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("combine: %w", err)
		}
		return b.combine("combine", op, args[1:])
	})

	// -----------------------------------------------------------------------
	// (defshape "name" (sphere ...))
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a body expression")
		}

		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		if shapeName == "" {
			return zygo.SexpNull, fmt.Errorf("defshape: name must not be empty")
		}

		var node scene.Node
		switch body := args[1].(type) {
		case *sexpShape:
			node = *body.node
		case *sexpShapeRef:
			// An alias shares the target's shape.
			target := b.sc.Lookup(body.name)
			if target == nil {
				return zygo.SexpNull, fmt.Errorf("defshape: no shape named %q", body.name)
			}
			node = *target
		default:
			return zygo.SexpNull, fmt.Errorf("defshape: expected shape expression, got %T", args[1])
		}
		node.Name = shapeName
		b.define(&node)

		return &sexpShapeRef{name: shapeName}, nil
	})

	// -----------------------------------------------------------------------
	// (shape "name")
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}

		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}

		if b.sc.Lookup(shapeName) == nil {
			return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", shapeName)
		}

		return &sexpShapeRef{name: shapeName}, nil
	})

	// -----------------------------------------------------------------------
	// (scene "name" (shape "a") (sphere ...) ...)
	//
	// Anonymous members are named "<scene>/<index>".
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("scene requires a name argument")
		}

		sceneName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scene: name: %w", err)
		}

		members, err := flattenArgs(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scene: %w", err)
		}

		group := sdf.NewGroup()
		var children []string
		for i, m := range members {
			switch v := m.(type) {
			case *sexpShapeRef:
				n := b.sc.Lookup(v.name)
				if n == nil {
					return zygo.SexpNull, fmt.Errorf("scene: member %d: no shape named %q", i+1, v.name)
				}
				group.Add(n.Shape)
				children = append(children, v.name)
			case *sexpShape:
				n := *v.node
				n.Name = fmt.Sprintf("%s/%d", sceneName, i+1)
				b.sc.AddNode(&n)
				group.Add(n.Shape)
				children = append(children, n.Name)
			default:
				return zygo.SexpNull, fmt.Errorf("scene: member %d: expected shape, got %T (%s)",
					i+1, m, m.SexpString(nil))
			}
		}

		b.sc.AddNode(&scene.Node{
			Name:     sceneName,
			Kind:     scene.NodeGroup,
			Children: children,
			Shape:    group,
		})
		b.sc.AddRoot(sceneName)
		b.scenes++

		return &sexpShapeRef{name: sceneName}, nil
	})
}
