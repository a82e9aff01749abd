package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("BLOB_BUCKET", "")
	t.Setenv("BLOB_USE_SSL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4.1-mini" {
		t.Fatalf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.BlobBucket != "quotes" || !cfg.BlobUseSSL {
		t.Fatalf("blob defaults mismatch: bucket=%q ssl=%v", cfg.BlobBucket, cfg.BlobUseSSL)
	}
	if cfg.BlobImageFolder != "image-gen" || cfg.BlobVideoFolder != "video-gen" {
		t.Fatalf("folder defaults mismatch: %q %q", cfg.BlobImageFolder, cfg.BlobVideoFolder)
	}
	if cfg.InstagramBaseURL != "https://graph.facebook.com/v19.0" {
		t.Fatalf("InstagramBaseURL = %q", cfg.InstagramBaseURL)
	}
	if cfg.HTTPWriteTimeout != 300*time.Second {
		t.Fatalf("HTTPWriteTimeout = %v", cfg.HTTPWriteTimeout)
	}
}

func TestLoadConfigRequiresOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when OPENAI_API_KEY is missing")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("BLOB_USE_SSL", "false")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "5")
	t.Setenv("AUDIO_FILE", "/srv/audio/voice.mp3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BlobUseSSL {
		t.Fatal("BLOB_USE_SSL=false not honored")
	}
	if cfg.HTTPReadTimeout != 5*time.Second {
		t.Fatalf("HTTPReadTimeout = %v", cfg.HTTPReadTimeout)
	}
	if cfg.AudioFile != "/srv/audio/voice.mp3" {
		t.Fatalf("AudioFile = %q", cfg.AudioFile)
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvInt("SOME_INT", 42); got != 42 {
		t.Fatalf("getEnvInt = %d, want fallback 42", got)
	}
}
