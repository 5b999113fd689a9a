// Package transcript retrieves YouTube video transcripts and prepares
// them for the synthesis pipeline.
package transcript

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidURL indicates the input does not contain a YouTube
	// video ID.
	ErrInvalidURL = errors.New("invalid YouTube URL format")

	// ErrNotFound indicates the video has no transcript in any
	// usable language.
	ErrNotFound = errors.New("no transcript found for video")

	// ErrDisabled indicates the uploader disabled transcripts for
	// the video.
	ErrDisabled = errors.New("transcripts are disabled for video")
)

// Segment is one timed line of a transcript.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Fetcher retrieves the transcript of a video by its ID.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) ([]Segment, error)
}

var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
// It accepts watch URLs, short youtu.be links, and embed paths, and
// returns ErrInvalidURL when no ID is present.
func ExtractVideoID(url string) (string, error) {
	match := videoIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", ErrInvalidURL
	}
	return match[1], nil
}

// Join flattens transcript segments into a single space-separated text
// blob, the input expected by the chunk splitter.
func Join(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}
