package rungen

import (
	"context"
	"path/filepath"

	"github.com/LynkerIntel/nh-rungen/pkg/expand"
	"github.com/LynkerIntel/nh-rungen/pkg/plan"
)

// Request describes one expansion run; alias exported via the root package
// for convenience.
type Request = expand.Request

// Result reports what an expansion produced.
type Result = expand.Result

// TemplateRef pairs a logical template name with its source.
type TemplateRef = expand.TemplateRef

// OutputFile identifies one generated config file.
type OutputFile = expand.OutputFile

// Placeholders names the per-combination literal tokens.
type Placeholders = expand.Placeholders

// Plan is the YAML run-plan document.
type Plan = plan.Plan

// NewExpander exposes the expander constructor from the top-level module.
func NewExpander(options ...expand.Option) *expand.Expander {
	return expand.New(options...)
}

// LoadPlan reads and validates a run plan file.
func LoadPlan(path string) (*Plan, error) {
	return plan.Load(path)
}

// Generate loads the plan, resolves its basin list, and runs the expansion
// into outputDir. It is the simplest entry point for callers that just want
// the configs (and driver script, if the plan declares one) on disk.
func Generate(ctx context.Context, planPath, outputDir string, options ...expand.Option) (Result, error) {
	p, err := plan.Load(planPath)
	if err != nil {
		return Result{}, err
	}

	baseDir := filepath.Dir(planPath)
	basinIDs, err := p.ResolveBasins(baseDir)
	if err != nil {
		return Result{}, err
	}

	opts := append(p.ExpanderOptions(), options...)
	return expand.New(opts...).Expand(ctx, p.Request(baseDir, outputDir, basinIDs))
}
