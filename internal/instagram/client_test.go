package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hk4crprasad/quotes/internal/domain"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL:      baseURL,
		AccessToken:  "token",
		UserID:       "17841400000000000",
		PollInterval: time.Millisecond,
		MaxAttempts:  5,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()
	if _, err := NewClient(Options{UserID: "1"}); err == nil {
		t.Fatal("expected error for missing access token")
	}
	if _, err := NewClient(Options{AccessToken: "t"}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestCreateContainerPayload(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/17841400000000000/media" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"id": "123"}`))
	}))
	defer ts.Close()

	offset := 3
	c := newTestClient(t, ts.URL)
	id, err := c.CreateContainer(context.Background(), "https://cdn.example.com/reel.mp4", "caption here", CreateReelOptions{
		ShareToFeed: true,
		ThumbOffset: &offset,
		LocationID:  "loc-9",
	})
	if err != nil {
		t.Fatalf("CreateContainer returned error: %v", err)
	}
	if id != "123" {
		t.Fatalf("container id = %q, want 123", id)
	}
	if got["media_type"] != "REELS" {
		t.Fatalf("media_type = %v", got["media_type"])
	}
	if got["video_url"] != "https://cdn.example.com/reel.mp4" || got["caption"] != "caption here" {
		t.Fatalf("payload mismatch: %+v", got)
	}
	if got["share_to_feed"] != true || got["thumb_offset"] != float64(3) || got["location_id"] != "loc-9" {
		t.Fatalf("optional fields mismatch: %+v", got)
	}
	if got["access_token"] != "token" {
		t.Fatalf("access_token missing: %+v", got)
	}
}

func TestCreateContainerNoID(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL)
	if _, err := c.CreateContainer(context.Background(), "https://x/v.mp4", "", CreateReelOptions{}); !errors.Is(err, domain.ErrPublishFailed) {
		t.Fatalf("error = %v, want ErrPublishFailed", err)
	}
}

func TestCheckStatusParsesKnownAndUnknown(t *testing.T) {
	t.Parallel()
	cases := []struct {
		body string
		want Status
	}{
		{`{"status_code": "IN_PROGRESS"}`, StatusInProgress},
		{`{"status_code": "FINISHED"}`, StatusFinished},
		{`{"status_code": "ERROR"}`, StatusError},
		{`{"status_code": "EXPIRED"}`, StatusExpired},
		{`{"status_code": "SOMETHING_NEW"}`, StatusUnknown},
		{`{}`, StatusUnknown},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.body, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("fields"); got != "status_code" {
					t.Fatalf("fields = %q", got)
				}
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()
			c := newTestClient(t, ts.URL)
			got, err := c.CheckStatus(context.Background(), "555")
			if err != nil {
				t.Fatalf("CheckStatus returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWaitUntilReadyStopsOnFinished(t *testing.T) {
	var polls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&polls, 1)
		status := "IN_PROGRESS"
		if n >= 3 {
			status = "FINISHED"
		}
		fmt.Fprintf(w, `{"status_code": %q}`, status)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	ready, err := c.WaitUntilReady(context.Background(), "c1")
	if err != nil {
		t.Fatalf("WaitUntilReady returned error: %v", err)
	}
	if !ready {
		t.Fatal("expected ready = true")
	}
	if got := atomic.LoadInt32(&polls); got != 3 {
		t.Fatalf("polls = %d, want 3", got)
	}
}

func TestWaitUntilReadyTerminalFailure(t *testing.T) {
	t.Parallel()
	for _, status := range []string{"ERROR", "EXPIRED"} {
		status := status
		t.Run(status, func(t *testing.T) {
			t.Parallel()
			var polls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&polls, 1)
				fmt.Fprintf(w, `{"status_code": %q}`, status)
			}))
			defer ts.Close()
			c := newTestClient(t, ts.URL)
			ready, err := c.WaitUntilReady(context.Background(), "c1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ready {
				t.Fatal("expected ready = false")
			}
			if got := atomic.LoadInt32(&polls); got != 1 {
				t.Fatalf("polls = %d, want 1: terminal status should stop immediately", got)
			}
		})
	}
}

func TestWaitUntilReadyAttemptCeiling(t *testing.T) {
	var polls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		_, _ = w.Write([]byte(`{"status_code": "IN_PROGRESS"}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	ready, err := c.WaitUntilReady(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ready {
		t.Fatal("expected ready = false at the ceiling")
	}
	if got := atomic.LoadInt32(&polls); got != 5 {
		t.Fatalf("polls = %d, want 5", got)
	}
}

func TestWaitUntilReadyContextCancel(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status_code": "IN_PROGRESS"}`))
	}))
	defer ts.Close()

	c, err := NewClient(Options{
		BaseURL:      ts.URL,
		AccessToken:  "token",
		UserID:       "1",
		PollInterval: time.Hour,
		MaxAttempts:  5,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if _, err := c.WaitUntilReady(ctx, "c1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestUploadCompleteLifecycle(t *testing.T) {
	var statusPolls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/media"):
			_, _ = w.Write([]byte(`{"id": "container-1"}`))
		case strings.HasSuffix(r.URL.Path, "/media_publish"):
			var payload map[string]any
			_ = json.NewDecoder(r.Body).Decode(&payload)
			if payload["creation_id"] != "container-1" {
				t.Fatalf("creation_id = %v", payload["creation_id"])
			}
			_, _ = w.Write([]byte(`{"id": "media-9"}`))
		default:
			status := "IN_PROGRESS"
			if atomic.AddInt32(&statusPolls, 1) >= 2 {
				status = "FINISHED"
			}
			fmt.Fprintf(w, `{"status_code": %q}`, status)
		}
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	res, err := c.UploadComplete(context.Background(), "https://cdn.example.com/reel.mp4", "cap", CreateReelOptions{ShareToFeed: true})
	if err != nil {
		t.Fatalf("UploadComplete returned error: %v", err)
	}
	if res.ContainerID != "container-1" || res.MediaID != "media-9" || res.Status != "published" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUploadCompleteContainerNotReady(t *testing.T) {
	var published int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/media_publish"):
			atomic.AddInt32(&published, 1)
			_, _ = w.Write([]byte(`{"id": "media-9"}`))
		case strings.HasSuffix(r.URL.Path, "/media"):
			_, _ = w.Write([]byte(`{"id": "container-1"}`))
		default:
			_, _ = w.Write([]byte(`{"status_code": "ERROR"}`))
		}
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.UploadComplete(context.Background(), "https://x/v.mp4", "", CreateReelOptions{})
	if !errors.Is(err, domain.ErrContainerNotReady) {
		t.Fatalf("error = %v, want ErrContainerNotReady", err)
	}
	if atomic.LoadInt32(&published) != 0 {
		t.Fatal("publish must not run for an unready container")
	}
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()
	cases := map[Status]bool{
		StatusFinished:   true,
		StatusError:      true,
		StatusExpired:    true,
		StatusInProgress: false,
		StatusUnknown:    false,
	}
	for status, want := range cases {
		if got := status.Terminal(); got != want {
			t.Fatalf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}
