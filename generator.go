// Package ogive turns nose-cone design source into triangle meshes.
//
// A Generator evaluates the DSL into a design, validates it, samples each
// part's meridian profile and revolves it with the configured kernel.
package ogive

import (
	"fmt"
	"log"
	"time"

	"github.com/chazu/ogive/pkg/config"
	"github.com/chazu/ogive/pkg/design"
	"github.com/chazu/ogive/pkg/engine"
	"github.com/chazu/ogive/pkg/kernel"
	"github.com/chazu/ogive/pkg/kernel/lathe"
	"github.com/chazu/ogive/pkg/kernel/sdfx"
	"github.com/chazu/ogive/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Generator evaluates design source and tessellates the result.
type Generator struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format handed to viewers.
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
	Part    string `json:"part,omitempty"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewKernel builds the revolution backend selected by kc.
func NewKernel(kc config.KernelConfig) (kernel.Kernel, error) {
	switch kc.Backend {
	case config.BackendLathe:
		return lathe.NewWithTolerance(kc.WeldTolerance), nil
	case config.BackendSdfx:
		return sdfx.NewWithCells(kc.MeshCells), nil
	}
	return nil, fmt.Errorf("ogive: unknown kernel backend %q", kc.Backend)
}

// New creates a Generator from cfg. A nil cfg selects config.Default().
func New(cfg *config.Config) (*Generator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ogive: %w", err)
	}
	k, err := NewKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	return &Generator{
		engine: engine.NewEngineWithTimeout(time.Duration(cfg.Engine.Timeout)),
		kernel: k,
	}, nil
}

// Evaluate takes design source and returns mesh data, errors and the
// auto-corrections applied while sampling. Errors never come with meshes.
func (g *Generator) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a design.
	d, evalErrs, err := g.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 2: Reject parameters outside their documented bounds.
	if v := design.ValidateAll(d); !v.OK() {
		for _, e := range v.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Part:    partName(d, e.PartID),
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Sample, revolve and place every part.
	meshes, corrections, err := tessellate.Tessellate(d, g.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}
	for _, c := range corrections {
		log.Printf("auto-corrected %s", c)
		result.Warnings = append(result.Warnings, EvalErrorData{
			Part:    c.PartName,
			Message: c.Correction.String(),
		})
	}

	// Step 4: Convert kernel meshes to the MeshData format.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}

func partName(d *design.Design, id design.PartID) string {
	if p := d.Get(id); p != nil && p.Name != "" {
		return p.Name
	}
	if id.IsZero() {
		return ""
	}
	return id.Short()
}
