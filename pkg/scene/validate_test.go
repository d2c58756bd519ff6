package scene

import (
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/minsley/Matth/pkg/sdf"
)

func TestValidateCleanScene(t *testing.T) {
	s := New()
	s.AddNode(sphereNode("ball", 0, 0, 0, 5))
	s.AddNode(capsuleNode("pill", v3.Vec{Y: -10}, v3.Vec{Y: 10}, 5))
	s.AddRoot("ball")
	s.AddRoot("pill")

	res := s.Validate()
	if !res.OK() {
		t.Errorf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name        string
		node        *Node
		wantErr     string
		wantWarning string
	}{
		{
			name:    "NaN radius",
			node:    sphereNode("s", 0, 0, 0, math.NaN()),
			wantErr: "radius NaN is not finite",
		},
		{
			name:    "infinite origin",
			node:    sphereNode("s", math.Inf(1), 0, 0, 1),
			wantErr: "origin",
		},
		{
			name:        "negative radius",
			node:        sphereNode("s", 0, 0, 0, -2),
			wantWarning: "negative",
		},
		{
			name:        "zero radius",
			node:        sphereNode("s", 0, 0, 0, 0),
			wantWarning: "zero",
		},
		{
			name:        "degenerate capsule",
			node:        capsuleNode("c", v3.Vec{X: 1}, v3.Vec{X: 1}, 1),
			wantWarning: "coincide",
		},
		{
			name:    "non-finite capsule endpoint",
			node:    capsuleNode("c", v3.Vec{}, v3.Vec{Y: math.NaN()}, 1),
			wantErr: "endpoint b",
		},
		{
			name: "combination",
			node: &Node{
				Name:  "u",
				Kind:  NodeCombination,
				Shape: sdf.Subtract(sdf.NewSphere(v3.Vec{}, 1), sdf.NewSphere(v3.Vec{}, 2)),
			},
			wantWarning: "difference nodes answer distance queries only",
		},
		{
			name:        "empty group",
			node:        &Node{Name: "g", Kind: NodeGroup, Shape: sdf.NewGroup()},
			wantWarning: "empty group",
		},
		{
			name:    "missing child",
			node:    &Node{Name: "g", Kind: NodeGroup, Children: []string{"ghost"}, Shape: sdf.NewGroup(sdf.NewSphere(v3.Vec{}, 1))},
			wantErr: `missing node "ghost"`,
		},
		{
			name:    "no shape",
			node:    &Node{Name: "x", Kind: NodeSphere},
			wantErr: "no shape",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddNode(tt.node)
			s.AddRoot(tt.node.Name)
			res := s.Validate()

			if tt.wantErr == "" && len(res.Errors) != 0 {
				t.Errorf("unexpected errors: %v", res.Errors)
			}
			if tt.wantErr != "" && !containsIssue(res.Errors, tt.wantErr) {
				t.Errorf("errors %v do not mention %q", res.Errors, tt.wantErr)
			}
			if tt.wantWarning != "" && !containsIssue(res.Warnings, tt.wantWarning) {
				t.Errorf("warnings %v do not mention %q", res.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestValidateMissingRoot(t *testing.T) {
	s := New()
	s.AddRoot("ghost")
	res := s.Validate()
	if res.OK() {
		t.Fatal("expected an error for a missing root")
	}
	if got := res.Errors[0].Error(); got != `[error] root "ghost" does not exist` {
		t.Errorf("Error() = %q", got)
	}
}

func TestIssueError(t *testing.T) {
	e := Issue{Node: "ball", Message: "radius is zero", Severity: SeverityWarning}
	if got, want := e.Error(), `[warning] node "ball": radius is zero`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := Severity(5).String(); got != "Severity(5)" {
		t.Errorf("Severity(5).String() = %q", got)
	}
}

func containsIssue(issues []Issue, substr string) bool {
	for _, is := range issues {
		if strings.Contains(is.Message, substr) {
			return true
		}
	}
	return false
}
