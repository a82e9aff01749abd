package quotegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/hk4crprasad/quotes/internal/domain"
)

// Request carries the caller's preferences for one quote.
type Request struct {
	Theme            domain.Theme
	Audience         domain.Audience
	FormatPreference string
}

// Generator produces a quote from the text model.
type Generator interface {
	Generate(ctx context.Context, req Request) (domain.Quote, error)
}

type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Rand       *rand.Rand
	Now        func() time.Time
}

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint and
// parses the model's JSON reply into a Quote.
type OpenAIGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	rand    *rand.Rand
	now     func() time.Time
}

const (
	openAIDefaultTimeout = 30 * time.Second
	defaultModel         = "gpt-4.1-mini"
	temperature          = 0.8
)

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature,omitempty"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type quotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewOpenAIGenerator(opts OpenAIOptions) (*OpenAIGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("quotegen: api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &OpenAIGenerator{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
		rand:    rng,
		now:     now,
	}, nil
}

// Generate asks the model for one quote. A transport or parse failure is
// wrapped in domain.ErrGenerationFailed; the caller decides whether to fall
// back.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (domain.Quote, error) {
	payload := chatRequest{
		Model:          g.model,
		Temperature:    temperature,
		ResponseFormat: &chatFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: g.buildUserPrompt(req)},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return domain.Quote{}, fmt.Errorf("%w: encode request: %v", domain.ErrGenerationFailed, err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", g.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: build request: %v", domain.ErrGenerationFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return domain.Quote{}, fmt.Errorf("%w: status %d", domain.ErrGenerationFailed, resp.StatusCode)
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Quote{}, fmt.Errorf("%w: decode response: %v", domain.ErrGenerationFailed, err)
	}
	if len(out.Choices) == 0 {
		return domain.Quote{}, fmt.Errorf("%w: no choices", domain.ErrGenerationFailed)
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return domain.Quote{}, fmt.Errorf("%w: empty response", domain.ErrGenerationFailed)
	}
	parsed, err := parseQuotePayload(text)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: parse payload: %v", domain.ErrGenerationFailed, err)
	}
	return domain.Quote{
		Title:     strings.TrimSpace(parsed.Title),
		Content:   strings.TrimSpace(parsed.Content),
		Theme:     req.Theme,
		Audience:  req.Audience,
		CreatedAt: g.now(),
	}, nil
}

func (g *OpenAIGenerator) buildUserPrompt(req Request) string {
	variety := varietyPhrases[g.rand.Intn(len(varietyPhrases))]

	title := strings.TrimSpace(req.FormatPreference)
	if title == "" || title == "string" {
		title = titlePatterns[g.rand.Intn(len(titlePatterns))]
	}

	theme := req.Theme
	if theme == "" || theme == domain.ThemeMixed {
		keys := make([]domain.Theme, 0, len(contentThemes))
		for k := range contentThemes {
			keys = append(keys, k)
		}
		theme = keys[g.rand.Intn(len(keys))]
	}
	var themeLine string
	if seeds, ok := contentThemes[theme]; ok {
		themeLine = fmt.Sprintf("Theme focus: '%s' - consider ideas like: %s", theme, seeds[g.rand.Intn(len(seeds))])
	} else {
		themeLine = fmt.Sprintf("Theme focus: '%s'", theme)
	}

	// Low-entropy seed nudges the model away from repeating itself.
	seed := g.now().Unix() % 1000

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Generate ONE completely unique viral motivational quote in JSON format. %s.\n\n", variety)
	fmt.Fprintf(sb, "IMPORTANT: Use title pattern: %q or similar variation\n%s\n\n", title, themeLine)
	fmt.Fprintf(sb, "Target audience: %s\nUniqueness seed: %d\n\n", req.Audience, seed)
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Respond with valid JSON only (title and content fields)\n")
	sb.WriteString("- Make it 100% unique and original\n")
	fmt.Fprintf(sb, "- Use authentic %s language\n", req.Audience)
	sb.WriteString("- Keep content under 25 words\n")
	sb.WriteString("- Make title engaging and clickable\n")
	sb.WriteString("- Ensure content complements the title perfectly")
	return sb.String()
}

func parseQuotePayload(raw string) (quotePayload, error) {
	var payload quotePayload
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return payload, errors.New("empty payload")
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return payload, err
	}
	if payload.Title == "" && payload.Content == "" {
		return payload, errors.New("payload missing title and content")
	}
	return payload, nil
}

// extractJSONFragment tolerates code fences and prose around the model's JSON.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
