package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPipelineConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadPipelineConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadPipelineConfig returned error: %v", err)
	}
	def := DefaultPipelineConfig()
	if cfg.Video != def.Video {
		t.Fatalf("video config = %+v, want defaults", cfg.Video)
	}
	if cfg.Publish != def.Publish {
		t.Fatalf("publish config = %+v, want defaults", cfg.Publish)
	}
}

func TestLoadPipelineConfigOverridesSubset(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	yaml := `
video:
  width: 720
  height: 1280
publish:
  poll_interval_sec: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	cfg, err := LoadPipelineConfig(path)
	if err != nil {
		t.Fatalf("LoadPipelineConfig returned error: %v", err)
	}
	if cfg.Video.Width != 720 || cfg.Video.Height != 1280 {
		t.Fatalf("video dimensions = %dx%d", cfg.Video.Width, cfg.Video.Height)
	}
	// Unset fields keep their defaults.
	if cfg.Video.FPS != 24 || cfg.Video.BackgroundColor != "0x141414" {
		t.Fatalf("defaults lost: %+v", cfg.Video)
	}
	if cfg.Publish.PollIntervalSec != 5 || cfg.Publish.MaxAttempts != 5 {
		t.Fatalf("publish config = %+v", cfg.Publish)
	}
}

func TestLoadPipelineConfigMalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte("video: [not a map"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := LoadPipelineConfig(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestPublishConfigPollInterval(t *testing.T) {
	t.Parallel()
	p := PublishConfig{PollIntervalSec: 60}
	if got := p.PollInterval(); got != time.Minute {
		t.Fatalf("PollInterval = %v, want 1m", got)
	}
}
