package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hk4crprasad/quotes/internal/pipeline"
)

// App bundles the pipeline and logger behind the HTTP handlers.
type App struct {
	Pipeline *pipeline.Pipeline
	Logger   zerolog.Logger
}

func NewApp(p *pipeline.Pipeline, logger zerolog.Logger) *App {
	return &App{Pipeline: p, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
