package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const defaultYouTubeBaseURL = "https://www.youtube.com"

// captionTracksPattern locates the caption track list embedded in the
// watch page's player response JSON.
var captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

// YouTubeClient fetches transcripts from YouTube's caption endpoints.
// It scrapes the watch page for the caption track list, picks a track
// by language preference, and downloads it in json3 form.
type YouTubeClient struct {
	httpClient *http.Client
	baseURL    string
	language   string
	logger     *log.Logger
}

// NewYouTubeClient creates a client preferring transcripts in the
// given BCP-47 language code (e.g. "en").
func NewYouTubeClient(language string, logger *log.Logger) *YouTubeClient {
	if language == "" {
		language = "en"
	}
	return &YouTubeClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultYouTubeBaseURL,
		language:   language,
		logger:     logger,
	}
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// Fetch retrieves the transcript for videoID. It returns ErrDisabled
// when the video exposes no caption tracks and ErrNotFound when the
// selected track is empty.
func (c *YouTubeClient) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	page, err := c.get(ctx, fmt.Sprintf("%s/watch?v=%s", c.baseURL, videoID))
	if err != nil {
		return nil, fmt.Errorf("fetching watch page: %w", err)
	}

	match := captionTracksPattern.FindSubmatch(page)
	if match == nil {
		return nil, ErrDisabled
	}

	var tracks []captionTrack
	if err := json.Unmarshal(match[1], &tracks); err != nil {
		return nil, fmt.Errorf("parsing caption track list: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrDisabled
	}

	track := c.selectTrack(tracks)
	c.logger.Debug("selected caption track",
		"video", videoID, "language", track.LanguageCode, "kind", track.Kind)

	body, err := c.get(ctx, track.BaseURL+"&fmt=json3")
	if err != nil {
		return nil, fmt.Errorf("fetching caption track: %w", err)
	}

	segments, err := parseJSON3(body)
	if err != nil {
		return nil, fmt.Errorf("parsing caption track: %w", err)
	}
	if len(segments) == 0 {
		return nil, ErrNotFound
	}
	return segments, nil
}

// selectTrack prefers a manually authored track in the configured
// language, then an auto-generated one, then the first track offered.
func (c *YouTubeClient) selectTrack(tracks []captionTrack) captionTrack {
	var generated *captionTrack
	for i, t := range tracks {
		if t.LanguageCode != c.language {
			continue
		}
		if t.Kind != "asr" {
			return t
		}
		if generated == nil {
			generated = &tracks[i]
		}
	}
	if generated != nil {
		return *generated
	}
	return tracks[0]
}

func (c *YouTubeClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// json3 caption payload: a flat event list with millisecond offsets
// and one or more text runs per event.
type json3Body struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func parseJSON3(body []byte) ([]Segment, error) {
	var parsed json3Body
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(parsed.Events))
	for _, event := range parsed.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(sb.String(), "\n", " "))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}
	return segments, nil
}
