package pipeline

import (
	"context"
	"fmt"

	"brandkit/internal/assemble"
	"brandkit/internal/domain"
	"brandkit/internal/workspace"
)

// CalendarBrief is the input of a content-calendar run.
type CalendarBrief struct {
	Prompt        string   `json:"prompt"`
	Platforms     []string `json:"platforms"`
	DurationWeeks int      `json:"duration_weeks"`
}

// CalendarOutcome pairs the drafted plan with the persisted bundle.
type CalendarOutcome struct {
	Bundle domain.OutputBundle `json:"bundle"`
	Plan   string              `json:"plan"`
}

// Calendar runs the text-only planning workflow. No image backend involved.
type Calendar struct {
	deps Deps
}

func NewCalendar(deps Deps) *Calendar {
	return &Calendar{deps: deps}
}

func (p *Calendar) Run(ctx context.Context, brief CalendarBrief) (CalendarOutcome, error) {
	if brief.Prompt == "" {
		return CalendarOutcome{}, fmt.Errorf("pipeline: calendar theme is required")
	}
	if len(brief.Platforms) == 0 {
		brief.Platforms = []string{"instagram"}
	}
	if brief.DurationWeeks <= 0 {
		brief.DurationWeeks = 1
	}

	ws, err := workspace.New(p.deps.BaseDir, "calendar", brief.Prompt)
	if err != nil {
		return CalendarOutcome{}, err
	}
	plan := p.deps.Refiner.PlanCalendar(ctx, brief.Prompt, brief.Platforms, brief.DurationWeeks)

	bundle, err := p.deps.Assembler.AssembleCalendar(ws, assemble.CalendarInput{
		Prompt:        brief.Prompt,
		Platforms:     brief.Platforms,
		DurationWeeks: brief.DurationWeeks,
		Plan:          plan,
	})
	if err != nil {
		return CalendarOutcome{}, err
	}
	return CalendarOutcome{Bundle: bundle, Plan: plan}, nil
}
