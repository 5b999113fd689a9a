package transcript

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/yt2speech/internal/cache"
)

// countingFetcher records how often it is asked for a transcript.
type countingFetcher struct {
	calls    int
	segments []Segment
	err      error
}

func (f *countingFetcher) Fetch(context.Context, string) ([]Segment, error) {
	f.calls++
	return f.segments, f.err
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}

func TestCachedFetcher_SecondFetchHitsCache(t *testing.T) {
	inner := &countingFetcher{segments: []Segment{{Text: "Hello world", Duration: 2}}}
	manager := cache.NewManager(cache.NewMemoryStore(), log.New(io.Discard))
	f := NewCachedFetcher(inner, manager, time.Hour)
	ctx := context.Background()

	first, err := f.Fetch(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("first Fetch failed: %v", err)
	}
	second, err := f.Fetch(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("second Fetch failed: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner fetcher called %d times, want 1", inner.calls)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestCachedFetcher_DistinctVideosDoNotCollide(t *testing.T) {
	inner := &countingFetcher{segments: []Segment{{Text: "x"}}}
	manager := cache.NewManager(cache.NewMemoryStore(), log.New(io.Discard))
	f := NewCachedFetcher(inner, manager, time.Hour)
	ctx := context.Background()

	f.Fetch(ctx, "videoAAAAAA")
	f.Fetch(ctx, "videoBBBBBB")

	if inner.calls != 2 {
		t.Errorf("inner fetcher called %d times, want 2", inner.calls)
	}
}

func TestCachedFetcher_BrokenCacheStillFetches(t *testing.T) {
	inner := &countingFetcher{segments: []Segment{{Text: "Hello"}}}
	manager := cache.NewManager(failingStore{}, log.New(io.Discard))
	f := NewCachedFetcher(inner, manager, time.Hour)
	ctx := context.Background()

	segments, err := f.Fetch(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch with broken cache failed: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}

	// Nothing was cached, so the fetcher is consulted again.
	f.Fetch(ctx, "dQw4w9WgXcQ")
	if inner.calls != 2 {
		t.Errorf("inner fetcher called %d times, want 2", inner.calls)
	}
}

func TestCachedFetcher_ErrorsPassThrough(t *testing.T) {
	inner := &countingFetcher{err: ErrDisabled}
	manager := cache.NewManager(cache.NewMemoryStore(), log.New(io.Discard))
	f := NewCachedFetcher(inner, manager, time.Hour)

	_, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Fetch = %v, want ErrDisabled", err)
	}
}
