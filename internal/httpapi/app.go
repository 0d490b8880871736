// Package httpapi exposes the generation pipelines over HTTP. Runs execute
// synchronously; a response carries either the finished bundle or the
// pipeline's hard error.
package httpapi

import (
	"encoding/json"
	"net/http"

	"brandkit/internal/extract"
	"brandkit/internal/infra"
	"brandkit/internal/pipeline"
	"brandkit/internal/refine"
)

type App struct {
	Logo      *pipeline.Logo
	Batch     *pipeline.Batch
	Calendar  *pipeline.Calendar
	Refiner   *refine.Refiner
	Engine    *extract.Engine
	OutputDir string
	Logger    infra.Logger
}

func NewApp(logo *pipeline.Logo, batch *pipeline.Batch, calendar *pipeline.Calendar, refiner *refine.Refiner, engine *extract.Engine, outputDir string, logger infra.Logger) *App {
	return &App{
		Logo:      logo,
		Batch:     batch,
		Calendar:  calendar,
		Refiner:   refiner,
		Engine:    engine,
		OutputDir: outputDir,
		Logger:    logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
