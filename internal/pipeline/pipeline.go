// Package pipeline sequences the content stages: quote text, quote image,
// quote video, reel publish. Each stage depends on the previous stage's
// output, and a stage failure never discards the artifacts produced before
// it — the caller always gets whatever succeeded plus the first error.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hk4crprasad/quotes/internal/domain"
	"github.com/hk4crprasad/quotes/internal/instagram"
	"github.com/hk4crprasad/quotes/internal/quotegen"
	"github.com/hk4crprasad/quotes/internal/storage"
)

// TextGenerator produces the quote text.
type TextGenerator interface {
	Generate(ctx context.Context, req quotegen.Request) (domain.Quote, error)
}

// ImageSynthesizer turns quote text into image bytes.
type ImageSynthesizer interface {
	Synthesize(ctx context.Context, quoteText string, style domain.ImageStyle) ([]byte, error)
}

// VideoComposer builds and uploads the reel video, returning its filename and
// durable URL.
type VideoComposer interface {
	Compose(ctx context.Context, imageURL, title string) (string, string, error)
}

// ReelPublisher drives the remote publish protocol.
type ReelPublisher interface {
	UploadComplete(ctx context.Context, videoURL, caption string, opts instagram.CreateReelOptions) (*instagram.UploadResult, error)
	CheckStatus(ctx context.Context, containerID string) (instagram.Status, error)
}

// Options wires the pipeline's stage dependencies. Everything is injected so
// callers and tests can assemble isolated instances.
type Options struct {
	Generator   TextGenerator
	Synthesizer ImageSynthesizer
	Store       storage.Store
	Composer    VideoComposer
	Publisher   ReelPublisher
	ImageFolder string
	Logger      zerolog.Logger
	Now         func() time.Time
}

type Pipeline struct {
	generator   TextGenerator
	synthesizer ImageSynthesizer
	store       storage.Store
	composer    VideoComposer
	publisher   ReelPublisher
	imageFolder string
	logger      zerolog.Logger
	now         func() time.Time
}

func New(opts Options) *Pipeline {
	folder := opts.ImageFolder
	if folder == "" {
		folder = "image-gen"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		generator:   opts.Generator,
		synthesizer: opts.Synthesizer,
		store:       opts.Store,
		composer:    opts.Composer,
		publisher:   opts.Publisher,
		imageFolder: folder,
		logger:      opts.Logger,
		now:         now,
	}
}

// Request carries one pipeline invocation's parameters.
type Request struct {
	Theme            domain.Theme
	Audience         domain.Audience
	FormatPreference string
	ImageStyle       domain.ImageStyle
}

// Result is the aggregate outcome. Image and video fields are nil when their
// stage did not run or failed; Error carries the first stage failure.
type Result struct {
	Quote         domain.Quote
	ImageFilename *string
	ImageURL      *string
	VideoFilename *string
	VideoURL      *string
	Error         *string
}

// GenerateQuote runs the text stage. The returned quote is always usable: a
// generator failure yields a fallback quote carrying the error text, plus the
// tagged error for the caller to surface.
func (p *Pipeline) GenerateQuote(ctx context.Context, req Request) (domain.Quote, error) {
	quote, err := p.generator.Generate(ctx, quotegen.Request{
		Theme:            req.Theme,
		Audience:         req.Audience,
		FormatPreference: req.FormatPreference,
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("quote generation failed, using fallback")
		return domain.Quote{
			Title:     "Error occurred",
			Content:   "Quote generation failed: " + err.Error(),
			Theme:     req.Theme,
			Audience:  req.Audience,
			CreatedAt: p.now(),
		}, err
	}
	return quote, nil
}

// GenerateQuoteWithImage runs the text stage and then the image stage. An
// image failure leaves the quote intact and sets Error instead of aborting.
func (p *Pipeline) GenerateQuoteWithImage(ctx context.Context, req Request) Result {
	quote, err := p.GenerateQuote(ctx, req)
	res := Result{Quote: quote}
	if err != nil {
		res.Error = errString(err)
		return res
	}
	filename, url, err := p.synthesizeImage(ctx, quote, req.ImageStyle)
	if err != nil {
		p.logger.Error().Err(err).Msg("image stage failed")
		res.Error = errString(err)
		return res
	}
	res.ImageFilename = &filename
	res.ImageURL = &url
	return res
}

// GenerateQuoteWithVideo runs text, image, and video stages in sequence. A
// later stage's failure preserves every earlier artifact.
func (p *Pipeline) GenerateQuoteWithVideo(ctx context.Context, req Request) Result {
	res := p.GenerateQuoteWithImage(ctx, req)
	if res.Error != nil || res.ImageURL == nil {
		return res
	}
	filename, url, err := p.composer.Compose(ctx, *res.ImageURL, res.Quote.Title)
	if err != nil {
		p.logger.Error().Err(err).Msg("video stage failed")
		res.Error = errString(err)
		return res
	}
	res.VideoFilename = &filename
	res.VideoURL = &url
	return res
}

// UploadReel runs the full publish protocol. Unlike the generation stages it
// propagates failure: publishing has no later stage to catch a partial result.
func (p *Pipeline) UploadReel(ctx context.Context, videoURL, caption string, opts instagram.CreateReelOptions) (*instagram.UploadResult, error) {
	if p.publisher == nil {
		return nil, fmt.Errorf("%w: publisher not configured", domain.ErrPublishFailed)
	}
	return p.publisher.UploadComplete(ctx, videoURL, caption, opts)
}

// CheckStatus polls a publish container once.
func (p *Pipeline) CheckStatus(ctx context.Context, containerID string) (instagram.Status, error) {
	if p.publisher == nil {
		return instagram.StatusUnknown, fmt.Errorf("%w: publisher not configured", domain.ErrPublishFailed)
	}
	return p.publisher.CheckStatus(ctx, containerID)
}

func (p *Pipeline) synthesizeImage(ctx context.Context, quote domain.Quote, style domain.ImageStyle) (string, string, error) {
	data, err := p.synthesizer.Synthesize(ctx, quote.FullText(), style)
	if err != nil {
		return "", "", err
	}
	filename := domain.NewImageFilename()
	url, err := p.store.Upload(ctx, p.imageFolder+"/"+filename, data, "image/jpeg")
	if err != nil {
		return "", "", err
	}
	p.logger.Info().Str("filename", filename).Str("url", url).Msg("quote image uploaded")
	return filename, url, nil
}

func errString(err error) *string {
	s := err.Error()
	return &s
}
