// Package pipeline orchestrates the generation workflows end to end: refine,
// generate, extract, analyze, assemble. Every stage moves forward
// unconditionally; per-item and per-backend failures are folded into the
// results instead of aborting the run.
package pipeline

import (
	"context"
	"fmt"

	"brandkit/internal/assemble"
	"brandkit/internal/domain"
	"brandkit/internal/extract"
	"brandkit/internal/generate"
	"brandkit/internal/infra"
	"brandkit/internal/refine"
	"brandkit/internal/workspace"
)

// Deps bundles the shared collaborators of all pipelines. Backends are bound
// to a fresh workspace per run.
type Deps struct {
	Refiner   *refine.Refiner
	Primary   generate.ImageBackend
	Secondary generate.ImageBackend
	Assembler *assemble.Assembler
	Engine    *extract.Engine
	BaseDir   string
	Logger    infra.Logger
}

// LogoBrief is the user-facing input of a logo run.
type LogoBrief struct {
	CompanyName        string           `json:"company_name"`
	CompanyDescription string           `json:"company_description,omitempty"`
	Industry           string           `json:"industry,omitempty"`
	Tone               string           `json:"tone,omitempty"`
	PreferredColor     string           `json:"preferred_color,omitempty"`
	Style              domain.LogoStyle `json:"style"`
	Prompt             string           `json:"prompt"`
}

// LogoOutcome is everything a logo run hands back to the caller.
type LogoOutcome struct {
	Bundle   domain.OutputBundle `json:"bundle"`
	Outcome  domain.DualOutcome  `json:"outcome"`
	Analysis string              `json:"analysis,omitempty"`
}

// Logo runs the single-asset logo workflow.
type Logo struct {
	deps Deps
}

func NewLogo(deps Deps) *Logo {
	return &Logo{deps: deps}
}

// Run executes one logo brief. Only workspace and record I/O can fail hard;
// backend trouble surfaces inside the outcome.
func (p *Logo) Run(ctx context.Context, brief LogoBrief) (LogoOutcome, error) {
	if brief.CompanyName == "" {
		return LogoOutcome{}, fmt.Errorf("pipeline: company name is required")
	}
	req := domain.GenerationRequest{
		Category: domain.CategoryLogo,
		Prompt:   brief.Prompt,
		Style:    brief.Style,
		Context: domain.BrandContext{
			CompanyName:        brief.CompanyName,
			CompanyDescription: brief.CompanyDescription,
			Industry:           brief.Industry,
			Tone:               brief.Tone,
			PreferredColor:     brief.PreferredColor,
		},
	}

	ws, err := workspace.New(p.deps.BaseDir, string(domain.CategoryLogo), brief.CompanyName)
	if err != nil {
		return LogoOutcome{}, err
	}
	instr := p.deps.Refiner.Refine(ctx, req)

	dual := generate.NewDual(
		generate.NewAdapter(p.deps.Primary, ws, p.deps.Logger),
		generate.NewAdapter(p.deps.Secondary, ws, p.deps.Logger),
		p.deps.Logger,
	)
	outcome := dual.Generate(ctx, instr, req)
	p.crossCheck(dual.Transcript(outcome, instr), outcome.Selected)

	var analysis string
	if outcome.Selected.OK() {
		analysis = p.deps.Refiner.AnalyzeLogo(ctx, req)
	}

	bundle, err := p.deps.Assembler.AssembleLogo(ws, assemble.LogoInput{
		Request:     req,
		Instruction: instr,
		Outcome:     outcome,
		Analysis:    analysis,
	})
	if err != nil {
		return LogoOutcome{}, err
	}
	return LogoOutcome{Bundle: bundle, Outcome: outcome, Analysis: analysis}, nil
}

// crossCheck replays the marker transcript through the extraction engine and
// flags any disagreement with the structured selection. A mismatch means an
// adapter report bug, not a run failure.
func (p *Logo) crossCheck(transcript string, selected domain.GenerationResult) {
	extracted := p.deps.Engine.Extract(transcript)
	if !selected.OK() {
		return
	}
	if extracted.Single != nil && extracted.Single.URL == selected.URL {
		return
	}
	if extracted.Batch != nil {
		for _, item := range extracted.Batch.Items {
			if item.URL == selected.URL {
				return
			}
		}
	}
	p.deps.Logger.Warn().
		Str("url", selected.URL).
		Msg("pipeline: selected asset missing from extraction transcript")
}
