package handlers

import (
	"net/http"

	"github.com/hk4crprasad/quotes/internal/domain"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info describes the service and its accepted vocabulary.
func (a *App) Info(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"name":        "AI-Powered Quote Generator API",
		"description": "Viral motivational quote generator with image, video, and reel publishing",
		"themes": []domain.Theme{
			domain.ThemeRelationships, domain.ThemeSelfWorth, domain.ThemeMoney,
			domain.ThemeBoundaries, domain.ThemeGrowth, domain.ThemeMixed,
		},
		"audiences": []domain.Audience{
			domain.AudienceGenZ, domain.AudienceMillennials, domain.AudienceEmpaths,
			domain.AudienceIntroverts, domain.AudienceOverthinkers,
		},
		"image_styles": []domain.ImageStyle{domain.StylePaper, domain.StyleModern, domain.StyleMinimal},
		"storage":      "stateless - no database",
	})
}
