package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestEngine(srv *httptest.Server) *ElevenLabs {
	return NewElevenLabs(ElevenLabsConfig{
		APIKey:            "test-key",
		BaseURL:           srv.URL,
		RequestsPerMinute: 100000, // effectively unlimited for tests
	})
}

func TestElevenLabs_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech/voice-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}

		var req synthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Text != "Hello world" {
			t.Errorf("request text = %q", req.Text)
		}
		if req.ModelID == "" {
			t.Error("request missing model_id")
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	t.Cleanup(srv.Close)

	e := newTestEngine(srv)
	audio, err := e.Synthesize(context.Background(), "Hello world", "voice-1")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q", audio)
	}
}

func TestElevenLabs_SynthesizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	e := newTestEngine(srv)
	_, err := e.Synthesize(context.Background(), "text", "voice-1")
	if !errors.Is(err, ErrSynthesisFailed) {
		t.Errorf("Synthesize = %v, want ErrSynthesisFailed", err)
	}
}

func TestElevenLabs_Voices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/voices" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		io.WriteString(w, `{"voices":[
			{"voice_id":"v1","name":"Rachel"},
			{"voice_id":"v2","name":"Adam"}
		]}`)
	}))
	t.Cleanup(srv.Close)

	e := newTestEngine(srv)
	voices, err := e.Voices(context.Background())
	if err != nil {
		t.Fatalf("Voices failed: %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(voices))
	}
	if voices[0].ID != "v1" || voices[0].Name != "Rachel" {
		t.Errorf("unexpected first voice: %+v", voices[0])
	}
}

func TestElevenLabs_ContextCancellation(t *testing.T) {
	e := NewElevenLabs(ElevenLabsConfig{
		APIKey:            "test-key",
		RequestsPerMinute: 1, // forces the limiter to block
	})

	// Exhaust the initial burst token, then cancel while waiting.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Synthesize(ctx, "text", "voice"); err == nil {
		t.Error("expected error from cancelled context")
	}
}
