// Command reel runs one pipeline pass from the terminal: generate a quote,
// render its image and video, and optionally publish the reel. The aggregate
// result is printed as JSON so it can be piped into other tooling.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hk4crprasad/quotes/internal/banner"
	"github.com/hk4crprasad/quotes/internal/domain"
	"github.com/hk4crprasad/quotes/internal/imagegen"
	"github.com/hk4crprasad/quotes/internal/infra"
	"github.com/hk4crprasad/quotes/internal/instagram"
	"github.com/hk4crprasad/quotes/internal/pipeline"
	"github.com/hk4crprasad/quotes/internal/quotegen"
	"github.com/hk4crprasad/quotes/internal/storage"
	"github.com/hk4crprasad/quotes/internal/videogen"
)

func main() {
	theme := flag.String("theme", "mixed", "quote theme (relationships, self-worth, money, boundaries, growth, mixed)")
	audience := flag.String("audience", "gen-z", "target audience")
	style := flag.String("style", "paper", "image style (paper, modern, minimal)")
	format := flag.String("format", "", "free-form format preference")
	publish := flag.Bool("publish", false, "publish the reel after composing the video")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	pcfg, err := infra.LoadPipelineConfig(cfg.PipelineFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load pipeline config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	generator, err := quotegen.NewOpenAIGenerator(quotegen.OpenAIOptions{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build quote generator")
	}

	var store storage.Store
	if cfg.BlobEndpoint != "" {
		blob, err := storage.NewBlobStore(storage.BlobOptions{
			Endpoint:  cfg.BlobEndpoint,
			AccessKey: cfg.BlobAccessKey,
			SecretKey: cfg.BlobSecretKey,
			UseSSL:    cfg.BlobUseSSL,
			Bucket:    cfg.BlobBucket,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build blob store")
		}
		if err := blob.EnsureBucket(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to ensure blob bucket")
		}
		store = blob
	} else {
		fs, err := storage.NewFileStore("generated_media")
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build file store")
		}
		store = fs
	}

	var publisher pipeline.ReelPublisher
	if *publish {
		client, err := instagram.NewClient(instagram.Options{
			BaseURL:      cfg.InstagramBaseURL,
			AccessToken:  cfg.InstagramAccessToken,
			UserID:       cfg.InstagramUserID,
			PollInterval: pcfg.Publish.PollInterval(),
			MaxAttempts:  pcfg.Publish.MaxAttempts,
			Logger:       logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build instagram client")
		}
		publisher = client
	}

	p := pipeline.New(pipeline.Options{
		Generator:   generator,
		Synthesizer: imagegen.NewSynthesizer(imagegen.Options{
			Endpoint:   cfg.AzureEndpoint,
			Deployment: cfg.AzureDeployment,
			APIVersion: cfg.AzureAPIVersion,
			APIKey:     cfg.AzureAPIKey,
		}),
		Store: store,
		Composer: videogen.NewComposer(videogen.Options{
			Store: store,
			Banner: banner.NewComposer(banner.Options{
				Fonts:         pcfg.Banner.Fonts,
				Margin:        pcfg.Banner.Margin,
				LineSpacing:   pcfg.Banner.LineSpacing,
				MaxFontSize:   pcfg.Banner.MaxFontSize,
				FloorFontSize: pcfg.Banner.FloorFontSize,
				MinHeight:     pcfg.Banner.MinHeight,
				MaxHeight:     pcfg.Banner.MaxHeight,
			}),
			Video:       pcfg.Video,
			AudioFile:   cfg.AudioFile,
			VideoFolder: cfg.BlobVideoFolder,
			Logger:      logger,
		}),
		Publisher:   publisher,
		ImageFolder: cfg.BlobImageFolder,
		Logger:      logger,
	})

	res := p.GenerateQuoteWithVideo(ctx, pipeline.Request{
		Theme:            domain.ParseTheme(*theme),
		Audience:         domain.ParseAudience(*audience),
		FormatPreference: *format,
		ImageStyle:       domain.ParseImageStyle(*style),
	})

	out := map[string]any{
		"quote":  res.Quote,
		"image":  artifact(res.ImageFilename, res.ImageURL),
		"video":  artifact(res.VideoFilename, res.VideoURL),
		"status": "ok",
	}
	if res.Error != nil {
		out["status"] = "partial"
		out["error"] = *res.Error
	}

	if *publish && res.Error == nil && res.VideoURL != nil {
		upload, err := p.UploadReel(ctx, *res.VideoURL, res.Quote.Caption(), instagram.CreateReelOptions{
			ShareToFeed: true,
		})
		if err != nil {
			logger.Error().Err(err).Msg("reel publish failed")
			out["status"] = "partial"
			out["error"] = err.Error()
		} else {
			out["publish"] = upload
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal().Err(err).Msg("failed to encode result")
	}
	if out["status"] != "ok" {
		os.Exit(1)
	}
}

func artifact(filename, url *string) map[string]string {
	if filename == nil || url == nil {
		return nil
	}
	return map[string]string{"filename": *filename, "url": *url}
}
