package domain

import (
	"strings"
	"time"
)

// Theme enumerates the quote themes the generator understands.
type Theme string

const (
	ThemeRelationships Theme = "relationships"
	ThemeSelfWorth     Theme = "self-worth"
	ThemeMoney         Theme = "money"
	ThemeBoundaries    Theme = "boundaries"
	ThemeGrowth        Theme = "growth"
	ThemeMixed         Theme = "mixed"
)

var knownThemes = map[Theme]struct{}{
	ThemeRelationships: {},
	ThemeSelfWorth:     {},
	ThemeMoney:         {},
	ThemeBoundaries:    {},
	ThemeGrowth:        {},
	ThemeMixed:         {},
}

// ParseTheme maps free-form input to a known theme, defaulting to mixed.
func ParseTheme(s string) Theme {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownThemes[t]; ok {
		return t
	}
	return ThemeMixed
}

// Audience enumerates the supported target demographics.
type Audience string

const (
	AudienceGenZ         Audience = "gen-z"
	AudienceMillennials  Audience = "millennials"
	AudienceEmpaths      Audience = "empaths"
	AudienceIntroverts   Audience = "introverts"
	AudienceOverthinkers Audience = "overthinkers"
)

var knownAudiences = map[Audience]struct{}{
	AudienceGenZ:         {},
	AudienceMillennials:  {},
	AudienceEmpaths:      {},
	AudienceIntroverts:   {},
	AudienceOverthinkers: {},
}

// ParseAudience maps free-form input to a known audience, defaulting to gen-z.
func ParseAudience(s string) Audience {
	a := Audience(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownAudiences[a]; ok {
		return a
	}
	return AudienceGenZ
}

// ImageStyle selects one of the fixed prompt templates for image synthesis.
type ImageStyle string

const (
	StylePaper   ImageStyle = "paper"
	StyleModern  ImageStyle = "modern"
	StyleMinimal ImageStyle = "minimal"
)

// ParseImageStyle maps free-form input to a known style, defaulting to paper.
func ParseImageStyle(s string) ImageStyle {
	switch ImageStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleModern:
		return StyleModern
	case StyleMinimal:
		return StyleMinimal
	default:
		return StylePaper
	}
}

// Quote is the unit the pipeline produces. It lives for the duration of one
// pipeline invocation and is never persisted.
type Quote struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Theme     Theme     `json:"theme"`
	Audience  Audience  `json:"target_audience"`
	CreatedAt time.Time `json:"created_at"`
}

// FullText joins title and content into the single string fed to the image
// prompt templates.
func (q Quote) FullText() string {
	title := strings.TrimSpace(q.Title)
	content := strings.TrimSpace(q.Content)
	if title == "" {
		return content
	}
	if content == "" {
		return title
	}
	return title + " " + content
}

// Caption builds the reel caption for the publish stage.
func (q Quote) Caption() string {
	sb := &strings.Builder{}
	sb.WriteString(q.FullText())
	sb.WriteString("\n\n#motivation #quotes #mindset #growth #dailyreminder")
	return sb.String()
}
