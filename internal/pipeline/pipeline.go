// Package pipeline orchestrates transcript chunking, text enhancement,
// and speech synthesis into a single ordered audio buffer.
//
// Chunks are processed concurrently under a counting semaphore and
// drained in completion order, but results are collected keyed by
// chunk index and concatenated in index order, so the spoken output
// always follows the transcript regardless of which chunk finishes
// first.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/dgnsrekt/yt2speech/internal/chunk"
	"github.com/dgnsrekt/yt2speech/internal/enhance"
	"github.com/dgnsrekt/yt2speech/internal/estimate"
	"github.com/dgnsrekt/yt2speech/internal/speech"
	"github.com/dgnsrekt/yt2speech/internal/transcript"
)

// ErrNoAudio indicates that no chunk produced audio, either because
// the transcript was empty or because every chunk degraded.
var ErrNoAudio = errors.New("no audio could be produced from the transcript")

const (
	// DefaultConcurrency bounds simultaneous in-flight chunk
	// processings, keeping within external API rate limits.
	DefaultConcurrency = 5

	// eventBuffer sizes the progress event channel. Sends are
	// non-blocking, so a slow consumer drops snapshots instead of
	// stalling the run.
	eventBuffer = 64
)

// ChunkResult associates a chunk's index with its synthesized audio.
// A nil Audio marks a degraded chunk. Exactly one result is produced
// per chunk.
type ChunkResult struct {
	Index int
	Audio []byte
}

// ProgressSnapshot is a point-in-time view of a run, emitted once per
// completed chunk.
type ProgressSnapshot struct {
	Completed int
	Total     int
	Elapsed   time.Duration
	Remaining time.Duration
}

// Percent returns the completion percentage.
func (s ProgressSnapshot) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// Config holds pipeline tuning knobs. Zero values select defaults.
type Config struct {
	// MaxChunkLen is the maximum chunk length in characters.
	MaxChunkLen int

	// Concurrency is the semaphore limit for in-flight chunks.
	Concurrency int

	// EstimatorWindow is the sliding-window capacity of the
	// remaining-time estimator.
	EstimatorWindow int
}

// Pipeline drives a single transcript-to-audio run.
type Pipeline struct {
	cfg      Config
	enhancer enhance.Enhancer
	synth    speech.Synthesizer
	sem      *semaphore.Weighted
	events   chan ProgressSnapshot
	logger   *log.Logger
}

// New creates a pipeline over the given collaborators. A Pipeline
// drives exactly one run; create a fresh one per conversion.
func New(cfg Config, enhancer enhance.Enhancer, synth speech.Synthesizer, logger *log.Logger) *Pipeline {
	if cfg.MaxChunkLen <= 0 {
		cfg.MaxChunkLen = chunk.DefaultMaxLength
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	return &Pipeline{
		cfg:      cfg,
		enhancer: enhancer,
		synth:    synth,
		sem:      semaphore.NewWeighted(int64(cfg.Concurrency)),
		events:   make(chan ProgressSnapshot, eventBuffer),
		logger:   logger,
	}
}

// Events returns the progress stream for the run. The channel is
// closed when Run returns, so callers may range over it.
func (p *Pipeline) Events() <-chan ProgressSnapshot {
	return p.events
}

// Run converts transcript segments into one audio buffer: join the
// segment texts, split into bounded chunks, process each chunk
// concurrently under the semaphore, then concatenate the surviving
// audio in chunk index order. Degraded chunks are skipped; Run fails
// only when nothing produced audio.
func (p *Pipeline) Run(ctx context.Context, segments []transcript.Segment, voiceID string) ([]byte, error) {
	defer close(p.events)

	logger := p.logger.With("run", shortRunID())

	text := transcript.Join(segments)
	chunks := chunk.Split(text, p.cfg.MaxChunkLen)
	if len(chunks) == 0 {
		return nil, ErrNoAudio
	}
	logger.Info("processing transcript",
		"chars", len(text), "chunks", len(chunks), "concurrency", p.cfg.Concurrency)

	results := make(chan ChunkResult, len(chunks))
	for _, c := range chunks {
		go p.process(ctx, logger, c, voiceID, results)
	}

	est := estimate.New(p.cfg.EstimatorWindow)
	est.Start()

	// Drain in completion order; collect keyed by index.
	audio := make([][]byte, len(chunks))
	produced := 0
	for completed := 1; completed <= len(chunks); completed++ {
		res := <-results
		if res.Audio != nil {
			audio[res.Index] = res.Audio
			produced++
		}

		progress := float64(completed) / float64(len(chunks)) * 100
		remaining := est.Update(progress)
		p.emit(ProgressSnapshot{
			Completed: completed,
			Total:     len(chunks),
			Elapsed:   est.Elapsed(),
			Remaining: remaining,
		})
	}

	if produced == 0 {
		return nil, ErrNoAudio
	}

	var buf bytes.Buffer
	for _, a := range audio {
		buf.Write(a)
	}

	logger.Info("pipeline finished",
		"chunks", produced,
		"degraded", len(chunks)-produced,
		"size", humanize.Bytes(uint64(buf.Len())),
		"elapsed", estimate.FormatDuration(est.Elapsed()))
	return buf.Bytes(), nil
}

// process handles one chunk: enhance, then synthesize, under the
// concurrency guard. Failures degrade locally and never abort the
// run; exactly one result is always sent.
func (p *Pipeline) process(ctx context.Context, logger *log.Logger, c chunk.Chunk, voiceID string, results chan<- ChunkResult) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		logger.Warn("chunk skipped", "chunk", c.Index, "err", err)
		results <- ChunkResult{Index: c.Index}
		return
	}
	defer p.sem.Release(1)

	text := c.Text
	if enhanced, err := p.enhancer.Enhance(ctx, text); err != nil {
		logger.Warn("enhancement failed, using original text", "chunk", c.Index, "err", err)
	} else if enhanced != "" {
		text = enhanced
	}

	audio, err := p.synth.Synthesize(ctx, text, voiceID)
	if err != nil || len(audio) == 0 {
		logger.Warn("synthesis failed, dropping chunk", "chunk", c.Index, "err", err)
		results <- ChunkResult{Index: c.Index}
		return
	}

	results <- ChunkResult{Index: c.Index, Audio: audio}
}

// emit delivers a snapshot without ever blocking the drain loop.
func (p *Pipeline) emit(snapshot ProgressSnapshot) {
	select {
	case p.events <- snapshot:
	default:
	}
}

func shortRunID() string {
	return uuid.NewString()[:8]
}
