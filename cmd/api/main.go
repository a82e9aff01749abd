package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hk4crprasad/quotes/internal/banner"
	"github.com/hk4crprasad/quotes/internal/http/handlers"
	"github.com/hk4crprasad/quotes/internal/http/httpapi"
	"github.com/hk4crprasad/quotes/internal/imagegen"
	"github.com/hk4crprasad/quotes/internal/infra"
	"github.com/hk4crprasad/quotes/internal/instagram"
	"github.com/hk4crprasad/quotes/internal/pipeline"
	"github.com/hk4crprasad/quotes/internal/quotegen"
	"github.com/hk4crprasad/quotes/internal/storage"
	"github.com/hk4crprasad/quotes/internal/videogen"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	pcfg, err := infra.LoadPipelineConfig(cfg.PipelineFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load pipeline config")
	}

	ctx := context.Background()

	generator, err := quotegen.NewOpenAIGenerator(quotegen.OpenAIOptions{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build quote generator")
	}

	synthesizer := imagegen.NewSynthesizer(imagegen.Options{
		Endpoint:   cfg.AzureEndpoint,
		Deployment: cfg.AzureDeployment,
		APIVersion: cfg.AzureAPIVersion,
		APIKey:     cfg.AzureAPIKey,
	})

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
		logger.Warn().Str("path", fs.BasePath()).Msg("BLOB_ENDPOINT not set, using local file store")
		store = fs
	}

	composer := videogen.NewComposer(videogen.Options{
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
	})

	var publisher pipeline.ReelPublisher
	if cfg.InstagramAccessToken != "" && cfg.InstagramUserID != "" {
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
	} else {
		logger.Warn().Msg("instagram credentials not set, reel publishing disabled")
	}

	p := pipeline.New(pipeline.Options{
		Generator:   generator,
		Synthesizer: synthesizer,
		Store:       store,
		Composer:    composer,
		Publisher:   publisher,
		ImageFolder: cfg.BlobImageFolder,
		Logger:      logger,
	})

	app := handlers.NewApp(p, logger)
	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
