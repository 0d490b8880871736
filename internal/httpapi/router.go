package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"brandkit/internal/infra"
	"brandkit/internal/middleware"
)

func NewRouter(app *App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/logos", app.CreateLogo)
	r.Post("/v1/carousels", app.CreateCarousel)
	r.Post("/v1/stories", app.CreateStory)
	r.Post("/v1/calendars", app.CreateCalendar)
	r.Post("/v1/hashtags", app.RefineHashtags)
	r.Post("/v1/extractions", app.RunExtraction)
	r.Get("/v1/bundles/{name}", app.DownloadBundle)

	return r
}
