package infra

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PipelineConfig holds the media tunables kept out of the environment: video
// geometry and timing, banner layout, and the publish poll policy.
type PipelineConfig struct {
	Video   VideoConfig   `yaml:"video"`
	Banner  BannerConfig  `yaml:"banner"`
	Publish PublishConfig `yaml:"publish"`
}

type VideoConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	FPS             int     `yaml:"fps"`
	BackgroundColor string  `yaml:"background_color"`
	BannerY         int     `yaml:"banner_y"`
	BannerHeight    int     `yaml:"banner_height"`
	FadeInDelaySec  float64 `yaml:"fade_in_delay_sec"`
	FadeInDurSec    float64 `yaml:"fade_in_duration_sec"`
}

type BannerConfig struct {
	Margin        int      `yaml:"margin"`
	LineSpacing   int      `yaml:"line_spacing"`
	MaxFontSize   int      `yaml:"max_font_size"`
	FloorFontSize int      `yaml:"floor_font_size"`
	MinHeight     int      `yaml:"min_height"`
	MaxHeight     int      `yaml:"max_height"`
	Fonts         []string `yaml:"fonts"`
}

type PublishConfig struct {
	PollIntervalSec int `yaml:"poll_interval_sec"`
	MaxAttempts     int `yaml:"max_attempts"`
}

// PollInterval returns the poll interval as a duration.
func (p PublishConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalSec) * time.Second
}

// DefaultPipelineConfig mirrors the values shipped in configs/pipeline.yaml.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Video: VideoConfig{
			Width:           1080,
			Height:          1920,
			FPS:             24,
			BackgroundColor: "0x141414",
			BannerY:         300,
			BannerHeight:    160,
			FadeInDelaySec:  9,
			FadeInDurSec:    4,
		},
		Banner: BannerConfig{
			Margin:        40,
			LineSpacing:   10,
			MaxFontSize:   100,
			FloorFontSize: 8,
			MinHeight:     120,
			MaxHeight:     400,
			Fonts: []string{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			},
		},
		Publish: PublishConfig{
			PollIntervalSec: 60,
			MaxAttempts:     5,
		},
	}
}

// LoadPipelineConfig reads the yaml tunables file. A missing file is not an
// error; the shipped defaults are used instead.
func LoadPipelineConfig(path string) (PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read pipeline config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse pipeline config: %w", err)
	}
	return cfg, nil
}
