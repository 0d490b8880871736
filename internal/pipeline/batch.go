package pipeline

import (
	"context"
	"fmt"

	"brandkit/internal/assemble"
	"brandkit/internal/domain"
	"brandkit/internal/generate"
	"brandkit/internal/workspace"
)

// BatchBrief is the input of a story or carousel run: one image per prompt.
type BatchBrief struct {
	Category domain.ContentCategory `json:"category"`
	Prompts  []string               `json:"prompts"`
	Platform string                 `json:"platform,omitempty"`
	Company  string                 `json:"company,omitempty"`
}

// BatchOutcome pairs the per-item results with the persisted bundle.
type BatchOutcome struct {
	Bundle domain.OutputBundle `json:"bundle"`
	Batch  domain.BatchResult  `json:"batch"`
}

// Batch runs the multi-asset story/carousel workflow.
type Batch struct {
	deps Deps
}

func NewBatch(deps Deps) *Batch {
	return &Batch{deps: deps}
}

// Run generates the prompts strictly in order. An item failure is recorded
// and the remaining items still run; the bundle is always written.
func (p *Batch) Run(ctx context.Context, brief BatchBrief) (BatchOutcome, error) {
	if brief.Category != domain.CategoryStory && brief.Category != domain.CategoryCarousel {
		return BatchOutcome{}, fmt.Errorf("pipeline: unsupported batch category %q", brief.Category)
	}
	if len(brief.Prompts) == 0 {
		return BatchOutcome{}, fmt.Errorf("pipeline: at least one prompt is required")
	}

	slugSource := brief.Company
	if slugSource == "" {
		slugSource = brief.Prompts[0]
	}
	ws, err := workspace.New(p.deps.BaseDir, string(brief.Category), slugSource)
	if err != nil {
		return BatchOutcome{}, err
	}
	dual := generate.NewDual(
		generate.NewAdapter(p.deps.Primary, ws, p.deps.Logger),
		generate.NewAdapter(p.deps.Secondary, ws, p.deps.Logger),
		p.deps.Logger,
	)

	var batch domain.BatchResult
	var lastInstr domain.RefinedInstruction
	for i, prompt := range brief.Prompts {
		req := domain.GenerationRequest{
			Category:    brief.Category,
			Prompt:      prompt,
			SlideNumber: i + 1,
			Context: domain.BrandContext{
				CompanyName: brief.Company,
				Platform:    brief.Platform,
			},
		}
		instr := p.deps.Refiner.Refine(ctx, req)
		lastInstr = instr
		outcome := dual.Generate(ctx, instr, req)
		item := outcome.Selected
		item.SlideNumber = i + 1
		batch.Append(item)
		p.deps.Logger.Info().
			Int("item", i+1).
			Int("total", len(brief.Prompts)).
			Bool("ok", item.OK()).
			Msg("pipeline: batch item finished")
	}

	bundle, err := p.deps.Assembler.AssembleBatch(ws, assemble.BatchInput{
		Category:    brief.Category,
		Prompts:     brief.Prompts,
		Instruction: lastInstr,
		Batch:       batch,
	})
	if err != nil {
		return BatchOutcome{}, err
	}
	return BatchOutcome{Bundle: bundle, Batch: batch}, nil
}
