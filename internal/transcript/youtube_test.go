package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

const timedTextBody = `{
	"events": [
		{"tStartMs": 0, "dDurationMs": 2000, "segs": [{"utf8": "Hello "}, {"utf8": "world"}]},
		{"tStartMs": 2000, "dDurationMs": 3000, "segs": [{"utf8": "this is a test"}]},
		{"tStartMs": 5000, "dDurationMs": 1000, "segs": [{"utf8": "\n"}]}
	]
}`

func newCaptionServer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		page := fmt.Sprintf(
			`<html>... "captionTracks":[{"baseUrl":"%s/api/timedtext?v=%s","languageCode":"en","kind":"asr"}] ...</html>`,
			srv.URL, r.URL.Query().Get("v"))
		io.WriteString(w, page)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fmt") != "json3" {
			http.Error(w, "unexpected format", http.StatusBadRequest)
			return
		}
		io.WriteString(w, timedTextBody)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *YouTubeClient {
	c := NewYouTubeClient("en", log.New(io.Discard))
	c.baseURL = srv.URL
	return c
}

func TestYouTubeClient_Fetch(t *testing.T) {
	srv := newCaptionServer(t)
	c := newTestClient(srv)

	segments, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// The whitespace-only third event must be dropped.
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segments), segments)
	}
	if segments[0].Text != "Hello world" || segments[0].Start != 0 || segments[0].Duration != 2 {
		t.Errorf("unexpected first segment: %+v", segments[0])
	}
	if segments[1].Text != "this is a test" || segments[1].Start != 2 {
		t.Errorf("unexpected second segment: %+v", segments[1])
	}
}

func TestYouTubeClient_NoCaptionTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html>no captions here</html>`)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(srv)
	_, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Fetch = %v, want ErrDisabled", err)
	}
}

func TestYouTubeClient_EmptyTrack(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w,
			`"captionTracks":[{"baseUrl":"%s/api/timedtext","languageCode":"en"}]`, srv.URL)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"events": []}`)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := newTestClient(srv)
	_, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch = %v, want ErrNotFound", err)
	}
}

func TestSelectTrack_PrefersManualInLanguage(t *testing.T) {
	c := NewYouTubeClient("en", log.New(io.Discard))

	tracks := []captionTrack{
		{BaseURL: "fr", LanguageCode: "fr"},
		{BaseURL: "en-asr", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "en-manual", LanguageCode: "en"},
	}

	if got := c.selectTrack(tracks); got.BaseURL != "en-manual" {
		t.Errorf("selectTrack = %q, want en-manual", got.BaseURL)
	}
}

func TestSelectTrack_FallsBackToGeneratedThenFirst(t *testing.T) {
	c := NewYouTubeClient("en", log.New(io.Discard))

	generated := []captionTrack{
		{BaseURL: "fr", LanguageCode: "fr"},
		{BaseURL: "en-asr", LanguageCode: "en", Kind: "asr"},
	}
	if got := c.selectTrack(generated); got.BaseURL != "en-asr" {
		t.Errorf("selectTrack = %q, want en-asr", got.BaseURL)
	}

	foreign := []captionTrack{
		{BaseURL: "fr", LanguageCode: "fr"},
		{BaseURL: "de", LanguageCode: "de"},
	}
	if got := c.selectTrack(foreign); got.BaseURL != "fr" {
		t.Errorf("selectTrack = %q, want fr", got.BaseURL)
	}
}
