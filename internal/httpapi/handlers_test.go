package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"brandkit/internal/assemble"
	"brandkit/internal/domain"
	"brandkit/internal/extract"
	"brandkit/internal/infra"
	"brandkit/internal/pipeline"
	"brandkit/internal/providers/claude"
	"brandkit/internal/providers/flux"
	"brandkit/internal/refine"
)

type completerFunc func(ctx context.Context, req claude.CompletionRequest) (string, error)

func (f completerFunc) Complete(ctx context.Context, req claude.CompletionRequest) (string, error) {
	return f(ctx, req)
}

type stubBackend struct {
	model string
	calls int
}

func (s *stubBackend) Model() string { return s.model }

func (s *stubBackend) Generate(context.Context, flux.Request) (*flux.Response, error) {
	s.calls++
	return &flux.Response{Images: []flux.Image{{URL: fmt.Sprintf("https://cdn.example.com/%d.png", s.calls)}}}, nil
}

func (s *stubBackend) Download(context.Context, string) ([]byte, error) {
	return []byte("png-bytes"), nil
}

func testServer(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	completer := completerFunc(func(_ context.Context, req claude.CompletionRequest) (string, error) {
		if strings.Contains(req.System, "hashtag") {
			return "#alpha\n#beta", nil
		}
		return "refined", nil
	})
	deps := pipeline.Deps{
		Refiner:   refine.NewRefiner(completer, logger),
		Primary:   &stubBackend{model: "fal-ai/flux-pro"},
		Secondary: &stubBackend{model: "fal-ai/flux/dev"},
		Assembler: assemble.NewAssembler(logger),
		Engine:    extract.NewEngine(),
		BaseDir:   t.TempDir(),
		Logger:    logger,
	}
	app := NewApp(
		pipeline.NewLogo(deps),
		pipeline.NewBatch(deps),
		pipeline.NewCalendar(deps),
		deps.Refiner,
		extract.NewEngine(),
		deps.BaseDir,
		logger,
	)
	cfg := &infra.Config{RateLimitPerMin: 1000}
	return NewRouter(app, cfg, logger)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateLogo(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(map[string]string{
		"company_name": "Acme Studios",
		"style":        "3",
		"prompt":       "a fox mark",
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/logos", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out pipeline.LogoOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Outcome.Selected.OK() {
		t.Fatalf("selected error: %q", out.Outcome.Selected.Err)
	}
	if out.Bundle.RecordPath == "" {
		t.Fatalf("bundle missing: %+v", out.Bundle)
	}
}

func TestCreateLogoRejectsUnknownStyle(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(map[string]string{
		"company_name": "Acme Studios",
		"style":        "banana",
		"prompt":       "a fox mark",
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/logos", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateCarousel(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(map[string]any{
		"prompts":  []string{"slide one", "slide two"},
		"platform": "instagram",
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/carousels", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out pipeline.BatchOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Batch.Total != 2 || out.Batch.Successful != 2 {
		t.Fatalf("counts = %d/%d", out.Batch.Successful, out.Batch.Total)
	}
}

func TestCreateCarouselRequiresPrompts(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/carousels", strings.NewReader(`{"prompts":[]}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRefineHashtags(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(map[string]any{
		"hashtags": []string{"#old"},
		"platform": "instagram",
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/hashtags", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	got := out["hashtags"]
	if len(got) != 2 || got[0] != "#alpha" || got[1] != "#beta" {
		t.Fatalf("hashtags = %v", got)
	}
}

func TestRefineHashtagsRequiresTags(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/hashtags", strings.NewReader(`{"hashtags":[]}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRunExtraction(t *testing.T) {
	srv := testServer(t)
	transcript := extract.MarkerLine(domain.SuccessResult("https://cdn.example.com/a.png", "", "a.png", nil))
	body, _ := json.Marshal(map[string]string{"transcript": transcript})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/extractions", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out extractionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Single == nil || out.Single.URL != "https://cdn.example.com/a.png" {
		t.Fatalf("extraction = %+v", out)
	}
}

func TestDownloadBundleRejectsTraversal(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bundles/..%2Fsecrets", nil))
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
