package generate

import (
	"context"
	"fmt"

	"brandkit/internal/domain"
	"brandkit/internal/extract"
	"brandkit/internal/infra"
	"brandkit/internal/providers/flux"
	"brandkit/internal/workspace"
)

// ImageBackend is the slice of the flux client an adapter needs.
type ImageBackend interface {
	Model() string
	Generate(ctx context.Context, req flux.Request) (*flux.Response, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// Adapter binds one image backend to a run workspace. Failures become error
// results; the only hard errors left are the backend client's own, and those
// are folded in here too.
type Adapter struct {
	backend ImageBackend
	ws      *workspace.Workspace
	logger  infra.Logger
}

func NewAdapter(backend ImageBackend, ws *workspace.Workspace, logger infra.Logger) *Adapter {
	return &Adapter{backend: backend, ws: ws, logger: logger}
}

// Model returns the backend's model path for rationale and report text.
func (a *Adapter) Model() string {
	return a.backend.Model()
}

// Generate runs the backend once with the category's fixed profile, downloads
// the asset, and persists it under the filename policy. Every failure path
// returns an error result; this method does not fail.
func (a *Adapter) Generate(ctx context.Context, instr domain.RefinedInstruction, req domain.GenerationRequest) domain.GenerationResult {
	params := ProfileFor(req.Category)
	params.Prompt = instr.Text

	resp, err := a.backend.Generate(ctx, params)
	if err != nil {
		a.logger.Warn().Err(err).Str("model", a.backend.Model()).Msg("generate: backend call failed")
		return domain.ErrorResult(fmt.Sprintf("%s: %v", a.backend.Model(), err))
	}
	url := resp.Images[0].URL

	data, err := a.backend.Download(ctx, url)
	if err != nil {
		a.logger.Warn().Err(err).Str("url", url).Msg("generate: asset download failed")
		return domain.ErrorResult(fmt.Sprintf("%s: %v", a.backend.Model(), err))
	}

	token := req.Context.CompanyName
	if token == "" {
		token = req.Prompt
	}
	filename := a.ws.AssetFilename(string(req.Category), token, "png")
	localPath, err := a.ws.Write(filename, data)
	if err != nil {
		a.logger.Error().Err(err).Str("filename", filename).Msg("generate: persist asset failed")
		return domain.ErrorResult(fmt.Sprintf("%s: %v", a.backend.Model(), err))
	}

	result := domain.SuccessResult(url, localPath, filename, resp.Seed)
	result.SlideNumber = req.SlideNumber
	a.logger.Info().
		Str("model", a.backend.Model()).
		Str("filename", filename).
		Msg("generate: asset saved")
	return result
}

// Report renders the transcript entry for one outcome: the structured marker
// line, then a short prose summary for human readers.
func (a *Adapter) Report(result domain.GenerationResult, instr domain.RefinedInstruction) string {
	line := extract.MarkerLine(result)
	if result.OK() {
		return fmt.Sprintf("%s\n%s generated %q from the %s instruction and saved it to %s.",
			line, a.backend.Model(), result.Filename, instr.Category, result.LocalPath)
	}
	return fmt.Sprintf("%s\n%s could not produce the %s asset: %s.",
		line, a.backend.Model(), instr.Category, result.Err)
}
