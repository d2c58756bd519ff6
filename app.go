package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/minsley/Matth/pkg/config"
	"github.com/minsley/Matth/pkg/engine"
	"github.com/minsley/Matth/pkg/scene"
	"github.com/minsley/Matth/pkg/sdf"
	"github.com/minsley/Matth/pkg/tessellate"
	"github.com/samber/lo"
)

// colorPalette is a default palette used to assign distinct colors to roots.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App evaluates scene scripts and answers queries against them.
type App struct {
	cfg    config.Config
	engine *engine.Engine
}

// MeshData is the JSON-serializable mesh format.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Node    string `json:"node,omitempty"`
	Message string `json:"message"`
}

// DistanceData is the answer to a distance query.
type DistanceData struct {
	Point    v3.Vec  `json:"point"`
	Distance float64 `json:"distance"`
	Inside   bool    `json:"inside"`
}

// MarshalJSON writes a NaN distance, as reported for a scene with no
// roots, as null.
func (d DistanceData) MarshalJSON() ([]byte, error) {
	out := struct {
		Point    v3.Vec   `json:"point"`
		Distance *float64 `json:"distance"`
		Inside   bool     `json:"inside"`
	}{Point: d.Point, Inside: d.Inside}
	if !math.IsNaN(d.Distance) {
		out.Distance = &d.Distance
	}
	return json.Marshal(out)
}

// Query selects what a Result reports beyond the scene summary.
type Query struct {
	Distance *v3.Vec  // signed distance at this point
	Ray      *sdf.Ray // raycast against the roots
	Mesh     bool     // tessellate every root
	STLPath  string   // write the union of the roots to this file
}

// Result is the full answer for one script and query.
type Result struct {
	Nodes    int                  `json:"nodes"`
	Roots    []string             `json:"roots"`
	Distance *DistanceData        `json:"distance,omitempty"`
	Raycast  *scene.RaycastResult `json:"raycast,omitempty"`
	Meshes   []MeshData           `json:"meshes,omitempty"`
	STL      string               `json:"stl,omitempty"`
	Errors   []EvalErrorData      `json:"errors"`
	Warnings []EvalErrorData      `json:"warnings"`
}

// NewApp creates an App configured by cfg.
func NewApp(cfg config.Config) *App {
	eng := engine.NewEngine()
	eng.Timeout = cfg.Eval.Timeout()
	return &App{cfg: cfg, engine: eng}
}

func (a *App) debugf(format string, args ...any) {
	if a.cfg.Log.Verbose {
		log.Printf(format, args...)
	}
}

// Evaluate runs source and returns meshes for every root.
func (a *App) Evaluate(source string) Result {
	return a.Query(source, Query{Mesh: true})
}

// Query runs source and answers q against the resulting scene. Failures
// are reported in Result.Errors; Query itself never panics.
func (a *App) Query(source string, q Query) (result Result) {
	result = Result{
		Roots:    []string{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a scene.
	res, err := a.engine.Run(source)
	if err != nil {
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	result.Warnings = append(result.Warnings, lo.Map(res.Warnings, func(w engine.EvalWarning, _ int) EvalErrorData {
		return EvalErrorData{Line: w.Line, Col: w.Col, Node: w.Node, Message: w.Message}
	})...)
	if len(res.Errors) > 0 {
		result.Errors = append(result.Errors, lo.Map(res.Errors, func(e engine.EvalError, _ int) EvalErrorData {
			return EvalErrorData{Line: e.Line, Col: e.Col, Node: e.Node, Message: e.Message}
		})...)
		return result
	}

	sc := res.Scene
	result.Nodes = sc.NodeCount()
	result.Roots = append(result.Roots, sc.Roots...)
	a.debugf("scene has %d nodes and %d roots", result.Nodes, len(sc.Roots))

	// Step 2: Answer the queries. Raycasts panic on invariant violations
	// such as a zero ray direction.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Query panic: %v", r)
			result.Errors = append(result.Errors, EvalErrorData{Message: fmt.Sprintf("query failed: %v", r)})
		}
	}()

	if q.Distance != nil {
		d := sc.Distance(*q.Distance)
		result.Distance = &DistanceData{Point: *q.Distance, Distance: d, Inside: d < 0}
		a.debugf("distance at %v = %v", *q.Distance, d)
	}

	if q.Ray != nil {
		rc := sc.Raycast(*q.Ray)
		result.Raycast = &rc
		a.debugf("ray %v: %d hits, %d skipped", *q.Ray, len(rc.Hits), len(rc.Skipped))
	}

	// Step 3: Tessellate the roots into triangle meshes.
	if q.Mesh {
		meshes, err := tessellate.Scene(sc, a.cfg.Mesh.Cells)
		if err != nil {
			log.Printf("Tessellate error: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
			return result
		}
		for i, m := range meshes {
			result.Meshes = append(result.Meshes, MeshData{
				Vertices: m.Vertices,
				Normals:  m.Normals,
				Indices:  m.Indices,
				PartName: m.PartName,
				Color:    colorPalette[i%len(colorPalette)],
			})
		}
	}

	if q.STLPath != "" {
		if err := tessellate.WriteSTL(sc.Group(), q.STLPath, a.cfg.Mesh.Cells); err != nil {
			log.Printf("STL export error: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
			return result
		}
		result.STL = q.STLPath
	}

	return result
}
