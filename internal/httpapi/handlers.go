package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"brandkit/internal/domain"
	"brandkit/internal/pipeline"
	"brandkit/pkg/zip"
)

type logoRequest struct {
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description,omitempty"`
	Industry           string `json:"industry,omitempty"`
	Tone               string `json:"tone,omitempty"`
	PreferredColor     string `json:"preferred_color,omitempty"`
	Style              string `json:"style"`
	Prompt             string `json:"prompt"`
}

func (a *App) CreateLogo(w http.ResponseWriter, r *http.Request) {
	var req logoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		a.error(w, http.StatusBadRequest, "company_name is required")
		return
	}
	style, ok := domain.ParseLogoStyle(req.Style)
	if !ok {
		a.error(w, http.StatusBadRequest, fmt.Sprintf("unknown style %q", req.Style))
		return
	}

	out, err := a.Logo.Run(r.Context(), pipeline.LogoBrief{
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		Industry:           req.Industry,
		Tone:               req.Tone,
		PreferredColor:     req.PreferredColor,
		Style:              style,
		Prompt:             req.Prompt,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("httpapi: logo run failed")
		a.error(w, http.StatusInternalServerError, "logo run failed")
		return
	}
	a.json(w, http.StatusCreated, out)
}

type batchRequest struct {
	Prompts  []string `json:"prompts"`
	Platform string   `json:"platform,omitempty"`
	Company  string   `json:"company,omitempty"`
}

func (a *App) CreateCarousel(w http.ResponseWriter, r *http.Request) {
	a.runBatch(w, r, domain.CategoryCarousel)
}

func (a *App) CreateStory(w http.ResponseWriter, r *http.Request) {
	a.runBatch(w, r, domain.CategoryStory)
}

func (a *App) runBatch(w http.ResponseWriter, r *http.Request, category domain.ContentCategory) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Prompts) == 0 {
		a.error(w, http.StatusBadRequest, "prompts must not be empty")
		return
	}

	out, err := a.Batch.Run(r.Context(), pipeline.BatchBrief{
		Category: category,
		Prompts:  req.Prompts,
		Platform: req.Platform,
		Company:  req.Company,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("category", string(category)).Msg("httpapi: batch run failed")
		a.error(w, http.StatusInternalServerError, "batch run failed")
		return
	}
	a.json(w, http.StatusCreated, out)
}

func (a *App) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	var req pipeline.CalendarBrief
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "prompt is required")
		return
	}

	out, err := a.Calendar.Run(r.Context(), req)
	if err != nil {
		a.Logger.Error().Err(err).Msg("httpapi: calendar run failed")
		a.error(w, http.StatusInternalServerError, "calendar run failed")
		return
	}
	a.json(w, http.StatusCreated, out)
}

type hashtagsRequest struct {
	Hashtags []string `json:"hashtags"`
	Context  string   `json:"context,omitempty"`
	Platform string   `json:"platform,omitempty"`
}

func (a *App) RefineHashtags(w http.ResponseWriter, r *http.Request) {
	var req hashtagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Hashtags) == 0 {
		a.error(w, http.StatusBadRequest, "hashtags must not be empty")
		return
	}
	refined := a.Refiner.RefineHashtags(r.Context(), req.Hashtags, req.Context, req.Platform)
	a.json(w, http.StatusOK, map[string][]string{"hashtags": refined})
}

type extractionRequest struct {
	Transcript string `json:"transcript"`
}

type extractionResponse struct {
	Single *domain.GenerationResult `json:"single,omitempty"`
	Batch  *domain.BatchResult      `json:"batch,omitempty"`
}

func (a *App) RunExtraction(w http.ResponseWriter, r *http.Request) {
	var req extractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	out := a.Engine.Extract(req.Transcript)
	a.json(w, http.StatusOK, extractionResponse{Single: out.Single, Batch: out.Batch})
}

// DownloadBundle streams a finished workspace as one zip. The name is a bare
// directory name under the configured output dir; anything with a separator
// is rejected.
func (a *App) DownloadBundle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		a.error(w, http.StatusBadRequest, "invalid bundle name")
		return
	}
	data, err := zip.ArchiveDir(a.OutputDir + "/" + name)
	if err != nil {
		a.error(w, http.StatusNotFound, "bundle not found")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
