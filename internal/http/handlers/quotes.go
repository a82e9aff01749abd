package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hk4crprasad/quotes/internal/domain"
	"github.com/hk4crprasad/quotes/internal/pipeline"
)

type quoteRequest struct {
	Theme            string `json:"theme"`
	TargetAudience   string `json:"target_audience"`
	FormatPreference string `json:"format_preference"`
	GenerateImage    *bool  `json:"generate_image,omitempty"`
	ImageStyle       string `json:"image_style"`
}

func (r quoteRequest) toPipeline() pipeline.Request {
	return pipeline.Request{
		Theme:            domain.ParseTheme(r.Theme),
		Audience:         domain.ParseAudience(r.TargetAudience),
		FormatPreference: r.FormatPreference,
		ImageStyle:       domain.ParseImageStyle(r.ImageStyle),
	}
}

type quoteResponse struct {
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Theme          domain.Theme    `json:"theme"`
	TargetAudience domain.Audience `json:"target_audience"`
	CreatedAt      time.Time       `json:"created_at"`

	ImageFilename *string `json:"image_filename,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	VideoFilename *string `json:"video_filename,omitempty"`
	VideoURL      *string `json:"video_url,omitempty"`
	Error         *string `json:"error,omitempty"`
}

func toResponse(res pipeline.Result) quoteResponse {
	return quoteResponse{
		Title:          res.Quote.Title,
		Content:        res.Quote.Content,
		Theme:          res.Quote.Theme,
		TargetAudience: res.Quote.Audience,
		CreatedAt:      res.Quote.CreatedAt,
		ImageFilename:  res.ImageFilename,
		ImageURL:       res.ImageURL,
		VideoFilename:  res.VideoFilename,
		VideoURL:       res.VideoURL,
		Error:          res.Error,
	}
}

// Generate produces a single quote without media.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	quote, err := a.Pipeline.GenerateQuote(r.Context(), req.toPipeline())
	res := pipeline.Result{Quote: quote}
	if err != nil {
		msg := err.Error()
		res.Error = &msg
	}
	a.json(w, http.StatusOK, toResponse(res))
}

// GenerateWithImage produces a quote plus a styled image unless the caller
// opted out with generate_image=false.
func (a *App) GenerateWithImage(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.GenerateImage != nil && !*req.GenerateImage {
		quote, err := a.Pipeline.GenerateQuote(r.Context(), req.toPipeline())
		res := pipeline.Result{Quote: quote}
		if err != nil {
			msg := err.Error()
			res.Error = &msg
		}
		a.json(w, http.StatusOK, toResponse(res))
		return
	}
	res := a.Pipeline.GenerateQuoteWithImage(r.Context(), req.toPipeline())
	a.json(w, http.StatusOK, toResponse(res))
}

// GenerateWithVideo produces a quote, image, and composed reel video.
func (a *App) GenerateWithVideo(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	res := a.Pipeline.GenerateQuoteWithVideo(r.Context(), req.toPipeline())
	a.json(w, http.StatusOK, toResponse(res))
}
