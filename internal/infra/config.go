package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	// Text generation (OpenAI-compatible chat completions endpoint).
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Image generation (Azure OpenAI images deployment).
	AzureEndpoint   string
	AzureDeployment string
	AzureAPIVersion string
	AzureAPIKey     string

	// Blob storage.
	BlobEndpoint    string
	BlobAccessKey   string
	BlobSecretKey   string
	BlobUseSSL      bool
	BlobBucket      string
	BlobImageFolder string
	BlobVideoFolder string

	// Instagram Graph API publish.
	InstagramBaseURL     string
	InstagramAccessToken string
	InstagramUserID      string

	// Local assets.
	AudioFile    string
	PipelineFile string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4.1-mini"),

		AzureEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureDeployment: getEnv("AZURE_DEPLOYMENT_NAME", "gpt-image-1"),
		AzureAPIVersion: getEnv("AZURE_API_VERSION", "2025-04-01-preview"),
		AzureAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),

		BlobEndpoint:    os.Getenv("BLOB_ENDPOINT"),
		BlobAccessKey:   os.Getenv("BLOB_ACCESS_KEY"),
		BlobSecretKey:   os.Getenv("BLOB_SECRET_KEY"),
		BlobUseSSL:      getEnvBool("BLOB_USE_SSL", true),
		BlobBucket:      getEnv("BLOB_BUCKET", "quotes"),
		BlobImageFolder: getEnv("BLOB_IMAGE_FOLDER", "image-gen"),
		BlobVideoFolder: getEnv("BLOB_VIDEO_FOLDER", "video-gen"),

		InstagramBaseURL:     getEnv("INSTAGRAM_BASE_URL", "https://graph.facebook.com/v19.0"),
		InstagramAccessToken: os.Getenv("INSTAGRAM_ACCESS_TOKEN"),
		InstagramUserID:      os.Getenv("INSTAGRAM_USER_ID"),

		AudioFile:    getEnv("AUDIO_FILE", "assets/narration.mp3"),
		PipelineFile: getEnv("PIPELINE_CONFIG", "configs/pipeline.yaml"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
