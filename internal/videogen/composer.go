// Package videogen composes the quote reel: a solid background, the title
// banner, the quote image fading in over the narration audio. Rendering is
// delegated to ffmpeg; the audio track's duration fixes the video duration.
package videogen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hk4crprasad/quotes/internal/banner"
	"github.com/hk4crprasad/quotes/internal/domain"
	"github.com/hk4crprasad/quotes/internal/infra"
	"github.com/hk4crprasad/quotes/internal/storage"
)

// Options wires the composer's collaborators.
type Options struct {
	Store       storage.Store
	Banner      *banner.Composer
	Video       infra.VideoConfig
	AudioFile   string
	VideoFolder string
	Logger      zerolog.Logger
}

type Composer struct {
	store       storage.Store
	banner      *banner.Composer
	cfg         infra.VideoConfig
	audioFile   string
	videoFolder string
	logger      zerolog.Logger

	// Overridable in tests to avoid shelling out.
	probe  func(ctx context.Context, audioPath string) (float64, error)
	encode func(ctx context.Context, in encodeInput) error
}

type encodeInput struct {
	BannerPath string
	ImagePath  string
	AudioPath  string
	OutPath    string
	Duration   float64
}

func NewComposer(opts Options) *Composer {
	folder := opts.VideoFolder
	if folder == "" {
		folder = "video-gen"
	}
	c := &Composer{
		store:       opts.Store,
		banner:      opts.Banner,
		cfg:         opts.Video,
		audioFile:   opts.AudioFile,
		videoFolder: folder,
		logger:      opts.Logger,
	}
	c.probe = c.probeDuration
	c.encode = c.runFFmpeg
	return c
}

// Compose builds the reel for the quote image at imageURL with title rendered
// into the banner, uploads the result, and returns its generated filename and
// durable URL. Every temporary file is removed before return on all paths.
func (c *Composer) Compose(ctx context.Context, imageURL, title string) (string, string, error) {
	if _, err := os.Stat(c.audioFile); err != nil {
		return "", "", fmt.Errorf("%w: audio file not found: %s", domain.ErrVideoGenerationFailed, c.audioFile)
	}

	var imagePath, bannerPath string
	defer func() {
		for _, p := range []string{imagePath, bannerPath} {
			if p != "" {
				_ = os.Remove(p)
			}
		}
	}()

	// The image download and the banner render are independent; run them
	// concurrently and join before composition.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.store.Download(gctx, imageURL)
		if err != nil {
			return fmt.Errorf("download quote image: %w", err)
		}
		imagePath = p
		return nil
	})
	g.Go(func() error {
		data, err := c.banner.RenderTitlePNG(title, c.cfg.Width, c.cfg.BannerHeight)
		if err != nil {
			return fmt.Errorf("render banner: %w", err)
		}
		tmp, err := os.CreateTemp("", "quotes-banner-*.png")
		if err != nil {
			return fmt.Errorf("create banner temp: %w", err)
		}
		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("write banner temp: %w", err)
		}
		if err := tmp.Close(); err != nil {
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("close banner temp: %w", err)
		}
		bannerPath = tmp.Name()
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrVideoGenerationFailed, err)
	}

	duration, err := c.probe(ctx, c.audioFile)
	if err != nil {
		return "", "", fmt.Errorf("%w: probe audio: %v", domain.ErrVideoGenerationFailed, err)
	}
	c.logger.Debug().Float64("duration_sec", duration).Msg("audio probed")

	out, err := os.CreateTemp("", "quotes-video-*.mp4")
	if err != nil {
		return "", "", fmt.Errorf("%w: create output temp: %v", domain.ErrVideoGenerationFailed, err)
	}
	outPath := out.Name()
	_ = out.Close()
	defer func() {
		_ = os.Remove(outPath)
	}()

	err = c.encode(ctx, encodeInput{
		BannerPath: bannerPath,
		ImagePath:  imagePath,
		AudioPath:  c.audioFile,
		OutPath:    outPath,
		Duration:   duration,
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrVideoGenerationFailed, err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", "", fmt.Errorf("%w: read output: %v", domain.ErrVideoGenerationFailed, err)
	}
	filename := domain.NewVideoFilename()
	url, err := c.store.Upload(ctx, c.videoFolder+"/"+filename, data, "video/mp4")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrVideoGenerationFailed, err)
	}
	c.logger.Info().Str("filename", filename).Str("url", url).Msg("video composed and uploaded")
	return filename, url, nil
}

func (c *Composer) probeDuration(ctx context.Context, audioPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("ffprobe reported non-positive duration %f", duration)
	}
	return duration, nil
}

func (c *Composer) runFFmpeg(ctx context.Context, in encodeInput) error {
	dur := strconv.FormatFloat(in.Duration, 'f', 3, 64)
	delay := strconv.FormatFloat(c.cfg.FadeInDelaySec, 'f', -1, 64)
	fade := strconv.FormatFloat(c.cfg.FadeInDurSec, 'f', -1, 64)

	filter := strings.Join([]string{
		"[1:v]format=rgba[banner]",
		fmt.Sprintf("[0:v][banner]overlay=(W-w)/2:%d[base]", c.cfg.BannerY),
		fmt.Sprintf("[2:v]scale=%d:-2,format=rgba,fade=t=in:st=%s:d=%s:alpha=1[quote]", c.cfg.Width, delay, fade),
		fmt.Sprintf("[base][quote]overlay=(W-w)/2:(H-h)/2:enable='gte(t,%s)'[v]", delay),
	}, ";")

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%dx%d:d=%s:r=%d", c.cfg.BackgroundColor, c.cfg.Width, c.cfg.Height, dur, c.cfg.FPS),
		"-loop", "1", "-t", dur, "-i", in.BannerPath,
		"-loop", "1", "-t", dur, "-i", in.ImagePath,
		"-i", in.AudioPath,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "3:a",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(c.cfg.FPS),
		"-c:a", "aac",
		"-shortest",
		in.OutPath,
	)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.String()))
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
