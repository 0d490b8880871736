// Package extract recovers typed generation results from free-form backend
// transcripts. Adapters tag their reports with a machine-readable marker
// line; transcripts from older tooling carry bare asset URLs, so a regex
// scan remains as fallback.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"brandkit/internal/domain"
)

// Marker prefixes each structured report line emitted by a generation
// adapter. The rest of the line is one JSON-encoded GenerationResult.
const Marker = "BRANDKIT-RESULT:"

// Asset URLs in legacy transcripts end in a known image extension, possibly
// followed by a query string.
var assetURLPattern = regexp.MustCompile(`https?://[^\s"'<>\)\]]+\.(?:png|jpe?g|webp|svg)(?:\?[^\s"'<>\)\]]*)?`)

// MarkerLine encodes one result as a transcript report line.
func MarkerLine(r domain.GenerationResult) string {
	data, err := json.Marshal(r)
	if err != nil {
		// A GenerationResult holds only plain values; Marshal cannot fail.
		return Marker + ` {"error":"encode result"}`
	}
	return Marker + " " + string(data)
}

// Extraction is the outcome of one transcript scan. Exactly one of Single
// and Batch is set.
type Extraction struct {
	Single *domain.GenerationResult
	Batch  *domain.BatchResult
}

// Engine turns transcripts into typed results. It holds no state; extraction
// is a pure function of the input text.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Extract scans the transcript for marker lines first and falls back to the
// legacy URL scan. One hit yields Single, several yield Batch in encounter
// order, none yields a Single error result carrying the raw text.
func (e *Engine) Extract(raw string) Extraction {
	results := parseMarkers(raw)
	if len(results) == 0 {
		results = parseLegacyURLs(raw)
	}
	switch len(results) {
	case 0:
		failed := domain.ErrorResult("no asset reference found in transcript")
		failed.RawText = raw
		return Extraction{Single: &failed}
	case 1:
		return Extraction{Single: &results[0]}
	default:
		batch := &domain.BatchResult{}
		for _, r := range results {
			batch.Append(r)
		}
		return Extraction{Batch: batch}
	}
}

func parseMarkers(raw string) []domain.GenerationResult {
	var out []domain.GenerationResult
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, Marker) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, Marker))
		var r domain.GenerationResult
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			out = append(out, domain.ErrorResult(fmt.Sprintf("malformed report on line %d: %v", i+1, err)))
			continue
		}
		if !r.Valid() {
			out = append(out, domain.ErrorResult(fmt.Sprintf("inconsistent report on line %d", i+1)))
			continue
		}
		out = append(out, r)
	}
	return out
}

func parseLegacyURLs(raw string) []domain.GenerationResult {
	var out []domain.GenerationResult
	seen := make(map[string]struct{})
	for _, url := range assetURLPattern.FindAllString(raw, -1) {
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, domain.GenerationResult{URL: url})
	}
	return out
}
