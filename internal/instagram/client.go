// Package instagram drives the three-step reel publish protocol against the
// Instagram Graph API: create a media container, poll it until the service
// reports FINISHED, then publish it.
package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hk4crprasad/quotes/internal/domain"
)

type Options struct {
	BaseURL      string
	AccessToken  string
	UserID       string
	HTTPClient   *http.Client
	PollInterval time.Duration
	MaxAttempts  int
	Logger       zerolog.Logger
}

type Client struct {
	baseURL      string
	accessToken  string
	userID       string
	client       *http.Client
	pollInterval time.Duration
	maxAttempts  int
	logger       zerolog.Logger
}

const (
	defaultPollInterval = 60 * time.Second
	defaultMaxAttempts  = 5
	requestTimeout      = 30 * time.Second
)

// CreateReelOptions are the optional fields of container creation.
type CreateReelOptions struct {
	ShareToFeed bool
	ThumbOffset *int
	LocationID  string
}

// UploadResult is the outcome of the full three-step publish.
type UploadResult struct {
	ContainerID string `json:"container_id"`
	MediaID     string `json:"media_id"`
	Status      string `json:"status"`
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.AccessToken) == "" {
		return nil, errors.New("instagram: access token is required")
	}
	if strings.TrimSpace(opts.UserID) == "" {
		return nil, errors.New("instagram: user id is required")
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://graph.facebook.com/v19.0"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	return &Client{
		baseURL:      base,
		accessToken:  strings.TrimSpace(opts.AccessToken),
		userID:       strings.TrimSpace(opts.UserID),
		client:       client,
		pollInterval: interval,
		maxAttempts:  attempts,
		logger:       opts.Logger,
	}, nil
}

type createResponse struct {
	ID string `json:"id"`
}

// CreateContainer registers the video with the publish service and returns the
// container id. The video URL must be publicly reachable over HTTPS; the
// remote service is authoritative about that.
func (c *Client) CreateContainer(ctx context.Context, videoURL, caption string, opts CreateReelOptions) (string, error) {
	payload := map[string]any{
		"media_type":    "REELS",
		"video_url":     videoURL,
		"caption":       caption,
		"share_to_feed": opts.ShareToFeed,
		"access_token":  c.accessToken,
	}
	if opts.ThumbOffset != nil {
		payload["thumb_offset"] = *opts.ThumbOffset
	}
	if opts.LocationID != "" {
		payload["location_id"] = opts.LocationID
	}
	var out createResponse
	if err := c.postJSON(ctx, fmt.Sprintf("%s/%s/media", c.baseURL, c.userID), payload, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: create container returned no id", domain.ErrPublishFailed)
	}
	return out.ID, nil
}

type statusResponse struct {
	StatusCode string `json:"status_code"`
}

// CheckStatus polls the container once.
func (c *Client) CheckStatus(ctx context.Context, containerID string) (Status, error) {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, containerID, url.Values{
		"fields":       {"status_code"},
		"access_token": {c.accessToken},
	}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return StatusUnknown, fmt.Errorf("%w: build request: %v", domain.ErrPublishFailed, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return StatusUnknown, fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return StatusUnknown, fmt.Errorf("%w: status %d: %s", domain.ErrPublishFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return StatusUnknown, fmt.Errorf("%w: decode status: %v", domain.ErrPublishFailed, err)
	}
	return ParseStatus(out.StatusCode), nil
}

// WaitUntilReady polls up to the attempt ceiling. It returns true the moment
// FINISHED is observed and false immediately on ERROR or EXPIRED; IN_PROGRESS
// and UNKNOWN sleep and retry. Reaching the ceiling is a timeout, not an
// error.
func (c *Client) WaitUntilReady(ctx context.Context, containerID string) (bool, error) {
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		status, err := c.CheckStatus(ctx, containerID)
		if err != nil {
			return false, err
		}
		c.logger.Debug().Str("container_id", containerID).Str("status", string(status)).Int("attempt", attempt+1).Msg("container polled")
		switch status {
		case StatusFinished:
			return true, nil
		case StatusError, StatusExpired:
			return false, nil
		}
		if attempt == c.maxAttempts-1 {
			break
		}
		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return false, nil
}

type publishResponse struct {
	ID string `json:"id"`
}

// Publish publishes a FINISHED container. The caller must have confirmed
// readiness; the client does not re-check.
func (c *Client) Publish(ctx context.Context, containerID string) (string, error) {
	payload := map[string]any{
		"creation_id":  containerID,
		"access_token": c.accessToken,
	}
	var out publishResponse
	if err := c.postJSON(ctx, fmt.Sprintf("%s/%s/media_publish", c.baseURL, c.userID), payload, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: publish returned no media id", domain.ErrPublishFailed)
	}
	return out.ID, nil
}

// UploadComplete runs create, wait, publish in sequence. A container that
// never reaches FINISHED yields domain.ErrContainerNotReady so nothing is
// published against it.
func (c *Client) UploadComplete(ctx context.Context, videoURL, caption string, opts CreateReelOptions) (*UploadResult, error) {
	containerID, err := c.CreateContainer(ctx, videoURL, caption, opts)
	if err != nil {
		return nil, err
	}
	ready, err := c.WaitUntilReady(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, fmt.Errorf("%w: container %s", domain.ErrContainerNotReady, containerID)
	}
	mediaID, err := c.Publish(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		ContainerID: containerID,
		MediaID:     mediaID,
		Status:      "published",
	}, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrPublishFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrPublishFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", domain.ErrPublishFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrPublishFailed, err)
	}
	return nil
}
