package videogen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hk4crprasad/quotes/internal/banner"
	"github.com/hk4crprasad/quotes/internal/domain"
	"github.com/hk4crprasad/quotes/internal/infra"
)

type memStore struct {
	uploads     map[string][]byte
	contentType string
	downloadErr error
	downloaded  string
}

func (m *memStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.uploads == nil {
		m.uploads = map[string][]byte{}
	}
	m.uploads[key] = data
	m.contentType = contentType
	return "http://blob.local/media/" + key, nil
}

func (m *memStore) Download(ctx context.Context, url string) (string, error) {
	if m.downloadErr != nil {
		return "", m.downloadErr
	}
	tmp, err := os.CreateTemp("", "videogen-test-image-*.jpeg")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write([]byte("image bytes")); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	m.downloaded = tmp.Name()
	return tmp.Name(), nil
}

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "narration.mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		t.Fatalf("failed to write audio fixture: %v", err)
	}
	return path
}

func newTestComposer(store *memStore, audioFile string) *Composer {
	return NewComposer(Options{
		Store: store,
		Banner: banner.NewComposer(banner.Options{
			Margin: 10, LineSpacing: 4, MaxFontSize: 40, FloorFontSize: 8,
			MinHeight: 60, MaxHeight: 200,
		}),
		Video: infra.VideoConfig{
			Width: 320, Height: 568, FPS: 24,
			BackgroundColor: "0x141414",
			BannerY:         60, BannerHeight: 80,
			FadeInDelaySec: 1, FadeInDurSec: 1,
		},
		AudioFile:   audioFile,
		VideoFolder: "video-gen",
		Logger:      zerolog.Nop(),
	})
}

func TestComposeHappyPath(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	c := newTestComposer(store, writeAudioFixture(t))

	var encoded encodeInput
	c.probe = func(ctx context.Context, audioPath string) (float64, error) { return 12.5, nil }
	c.encode = func(ctx context.Context, in encodeInput) error {
		encoded = in
		return os.WriteFile(in.OutPath, []byte("mp4 bytes"), 0o644)
	}

	filename, url, err := c.Compose(context.Background(), "http://blob.local/media/image-gen/q.jpeg", "POV:")
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if !strings.HasPrefix(filename, "quote_video_") || !strings.HasSuffix(filename, ".mp4") {
		t.Fatalf("filename = %q", filename)
	}
	if url != "http://blob.local/media/video-gen/"+filename {
		t.Fatalf("url = %q", url)
	}
	if encoded.Duration != 12.5 {
		t.Fatalf("encode duration = %f, want the probed value", encoded.Duration)
	}
	if encoded.BannerPath == "" || encoded.ImagePath == "" {
		t.Fatalf("encode inputs incomplete: %+v", encoded)
	}
	if got := store.uploads["video-gen/"+filename]; string(got) != "mp4 bytes" {
		t.Fatalf("uploaded bytes = %q", got)
	}
	if store.contentType != "video/mp4" {
		t.Fatalf("content type = %q", store.contentType)
	}
}

func TestComposeCleansTempFiles(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	c := newTestComposer(store, writeAudioFixture(t))

	var bannerPath string
	c.probe = func(ctx context.Context, audioPath string) (float64, error) { return 10, nil }
	c.encode = func(ctx context.Context, in encodeInput) error {
		bannerPath = in.BannerPath
		return os.WriteFile(in.OutPath, []byte("x"), 0o644)
	}

	if _, _, err := c.Compose(context.Background(), "http://blob.local/i.jpeg", "t"); err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	for name, path := range map[string]string{"image": store.downloaded, "banner": bannerPath} {
		if path == "" {
			t.Fatalf("%s temp path never recorded", name)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("%s temp file %s still exists after Compose", name, path)
		}
	}
}

func TestComposeCleansTempFilesOnEncodeFailure(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	c := newTestComposer(store, writeAudioFixture(t))

	c.probe = func(ctx context.Context, audioPath string) (float64, error) { return 10, nil }
	c.encode = func(ctx context.Context, in encodeInput) error {
		return errors.New("ffmpeg exit status 1")
	}

	_, _, err := c.Compose(context.Background(), "http://blob.local/i.jpeg", "t")
	if !errors.Is(err, domain.ErrVideoGenerationFailed) {
		t.Fatalf("error = %v, want ErrVideoGenerationFailed", err)
	}
	if store.downloaded == "" {
		t.Fatal("image temp path never recorded")
	}
	if _, statErr := os.Stat(store.downloaded); !os.IsNotExist(statErr) {
		t.Fatalf("image temp file %s still exists after failure", store.downloaded)
	}
	if len(store.uploads) != 0 {
		t.Fatal("nothing must be uploaded when encoding fails")
	}
}

func TestComposeMissingAudio(t *testing.T) {
	t.Parallel()
	c := newTestComposer(&memStore{}, filepath.Join(t.TempDir(), "missing.mp3"))
	_, _, err := c.Compose(context.Background(), "http://blob.local/i.jpeg", "t")
	if !errors.Is(err, domain.ErrVideoGenerationFailed) {
		t.Fatalf("error = %v, want ErrVideoGenerationFailed", err)
	}
	if err == nil || !strings.Contains(err.Error(), "audio file not found") {
		t.Fatalf("error should name the missing audio file: %v", err)
	}
}

func TestComposeDownloadFailure(t *testing.T) {
	t.Parallel()
	store := &memStore{downloadErr: fmt.Errorf("%w: 404", domain.ErrFetchFailed)}
	c := newTestComposer(store, writeAudioFixture(t))

	probed := false
	c.probe = func(ctx context.Context, audioPath string) (float64, error) {
		probed = true
		return 10, nil
	}
	c.encode = func(ctx context.Context, in encodeInput) error { return nil }

	_, _, err := c.Compose(context.Background(), "http://blob.local/gone.jpeg", "t")
	if !errors.Is(err, domain.ErrVideoGenerationFailed) {
		t.Fatalf("error = %v, want ErrVideoGenerationFailed", err)
	}
	if probed {
		t.Fatal("probe must not run when the image download fails")
	}
}

func TestComposeProbeFailure(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	c := newTestComposer(store, writeAudioFixture(t))

	c.probe = func(ctx context.Context, audioPath string) (float64, error) {
		return 0, errors.New("ffprobe: no such stream")
	}
	c.encode = func(ctx context.Context, in encodeInput) error { return nil }

	_, _, err := c.Compose(context.Background(), "http://blob.local/i.jpeg", "t")
	if !errors.Is(err, domain.ErrVideoGenerationFailed) {
		t.Fatalf("error = %v, want ErrVideoGenerationFailed", err)
	}
	if len(store.uploads) != 0 {
		t.Fatal("nothing must be uploaded when probing fails")
	}
}

func TestLastLine(t *testing.T) {
	t.Parallel()
	if got := lastLine("a\nb\nc\n"); got != "c" {
		t.Fatalf("lastLine = %q, want c", got)
	}
	if got := lastLine(""); got != "" {
		t.Fatalf("lastLine empty = %q", got)
	}
}
