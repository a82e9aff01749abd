package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hk4crprasad/quotes/internal/domain"
	"github.com/hk4crprasad/quotes/internal/instagram"
)

type uploadReelRequest struct {
	VideoURL    string `json:"video_url"`
	Caption     string `json:"caption"`
	ShareToFeed *bool  `json:"share_to_feed"`
	ThumbOffset *int   `json:"thumb_offset"`
	LocationID  string `json:"location_id"`
}

// UploadReel runs the full create, wait, publish protocol for a hosted video.
func (a *App) UploadReel(w http.ResponseWriter, r *http.Request) {
	var req uploadReelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.VideoURL == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "video_url is required")
		return
	}
	shareToFeed := true
	if req.ShareToFeed != nil {
		shareToFeed = *req.ShareToFeed
	}
	result, err := a.Pipeline.UploadReel(r.Context(), req.VideoURL, req.Caption, instagram.CreateReelOptions{
		ShareToFeed: shareToFeed,
		ThumbOffset: req.ThumbOffset,
		LocationID:  req.LocationID,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("reel upload failed")
		if errors.Is(err, domain.ErrContainerNotReady) {
			a.error(w, http.StatusConflict, "container_not_ready", err.Error())
			return
		}
		a.error(w, http.StatusBadGateway, "publish_failed", err.Error())
		return
	}
	a.json(w, http.StatusOK, result)
}

// ReelStatus polls one publish container.
func (a *App) ReelStatus(w http.ResponseWriter, r *http.Request) {
	containerID := chi.URLParam(r, "container_id")
	if containerID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "container_id required")
		return
	}
	status, err := a.Pipeline.CheckStatus(r.Context(), containerID)
	if err != nil {
		a.Logger.Error().Err(err).Str("container_id", containerID).Msg("status check failed")
		a.error(w, http.StatusBadGateway, "status_check_failed", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"container_id": containerID,
		"status":       string(status),
	})
}
