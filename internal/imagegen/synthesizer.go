package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hk4crprasad/quotes/internal/domain"
)

// Options configures the Azure OpenAI image client.
type Options struct {
	Endpoint   string
	Deployment string
	APIVersion string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Synthesizer issues a single image generation request per quote against an
// Azure OpenAI images deployment and decodes the base64 payload it returns.
type Synthesizer struct {
	endpoint   string
	deployment string
	apiVersion string
	apiKey     string
	client     *http.Client
}

const synthesizeTimeout = 60 * time.Second

type generationRequest struct {
	Prompt       string `json:"prompt"`
	N            int    `json:"n"`
	Size         string `json:"size"`
	Quality      string `json:"quality"`
	OutputFormat string `json:"output_format"`
}

type generationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

func NewSynthesizer(opts Options) *Synthesizer {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = synthesizeTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	deployment := opts.Deployment
	if deployment == "" {
		deployment = "gpt-image-1"
	}
	return &Synthesizer{
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		deployment: deployment,
		apiVersion: opts.APIVersion,
		apiKey:     strings.TrimSpace(opts.APIKey),
		client:     client,
	}
}

// Synthesize generates one 1024x1024 jpeg for the quote text and returns the
// raw image bytes. Failures carry one of the tagged synthesis errors.
func (s *Synthesizer) Synthesize(ctx context.Context, quoteText string, style domain.ImageStyle) ([]byte, error) {
	body := generationRequest{
		Prompt:       BuildPrompt(quoteText, style),
		N:            1,
		Size:         "1024x1024",
		Quality:      "medium",
		OutputFormat: "jpeg",
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", domain.ErrRequestFailed, err)
	}
	endpoint := fmt.Sprintf("%s/openai/deployments/%s/images/generations?api-version=%s", s.endpoint, s.deployment, s.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	var out generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(out.Data) == 0 {
		return nil, domain.ErrEmptyResult
	}
	encoded := out.Data[0].B64JSON
	if encoded == "" {
		return nil, fmt.Errorf("%w: first entry has no payload", domain.ErrEmptyResult)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: decoded payload is empty", domain.ErrDecodeFailed)
	}
	return raw, nil
}
