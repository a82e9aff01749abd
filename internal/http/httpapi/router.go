package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/hk4crprasad/quotes/internal/http/handlers"
	"github.com/hk4crprasad/quotes/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Logger(logger))

	r.Get("/", app.Info)
	r.Get("/v1/healthz", app.Health)

	r.Post("/generate", app.Generate)
	r.Post("/generate-with-image", app.GenerateWithImage)
	r.Post("/generate-with-video", app.GenerateWithVideo)

	r.Route("/reels", func(r chi.Router) {
		r.Post("/upload", app.UploadReel)
		r.Get("/{container_id}/status", app.ReelStatus)
	})

	return r
}
