// Package generate drives the image backends. Each adapter wraps one backend
// client, runs it with a fixed per-category parameter profile, persists the
// asset, and reports the outcome as a typed result that never escalates to an
// error.
package generate

import (
	"brandkit/internal/domain"
	"brandkit/internal/providers/flux"
)

const (
	sizeSquareHD   = "square_hd"
	sizePortrait   = "portrait_16_9"
	inferenceSteps = 28
	guidanceScale  = 3.5
)

// ProfileFor returns the fixed backend parameters for a content category.
// Stories render vertical; everything else renders square. Callers fill in
// Prompt and must not override the rest.
func ProfileFor(category domain.ContentCategory) flux.Request {
	size := sizeSquareHD
	if category == domain.CategoryStory {
		size = sizePortrait
	}
	return flux.Request{
		ImageSize:     size,
		Steps:         inferenceSteps,
		Guidance:      guidanceScale,
		NumImages:     1,
		SafetyChecker: false,
		OutputFormat:  "png",
	}
}
