// Package estimate tracks the progress of long-running chunked work
// and produces remaining-time estimates from a sliding window of
// observed processing rates.
package estimate

import "time"

// DefaultWindowSize is the number of rate samples kept for averaging.
const DefaultWindowSize = 10

// Estimator is a two-state (idle/running) remaining-time estimator.
// Each progress update contributes an instantaneous rate sample
// (elapsed time per percentage point) to a fixed-capacity sliding
// window; the estimate is the window average scaled by the progress
// still outstanding.
//
// An Estimator is driven by a single sequential caller. It is not safe
// for concurrent use.
type Estimator struct {
	windowSize int
	rates      []time.Duration // duration per percentage point

	started      time.Time
	lastTime     time.Time
	lastProgress float64
	primed       bool
	running      bool

	now func() time.Time
}

// New creates an idle estimator with the given window capacity.
// A non-positive windowSize falls back to DefaultWindowSize.
func New(windowSize int) *Estimator {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Estimator{
		windowSize: windowSize,
		rates:      make([]time.Duration, 0, windowSize),
		now:        time.Now,
	}
}

// Start transitions the estimator from idle to running and records the
// session epoch. Any state from a previous session is discarded.
func (e *Estimator) Start() {
	e.started = e.now()
	e.running = true
	e.primed = false
	e.rates = e.rates[:0]
	e.lastProgress = 0
	e.lastTime = time.Time{}
}

// Running reports whether a session is in progress.
func (e *Estimator) Running() bool {
	return e.running
}

// Stop returns the estimator to idle.
func (e *Estimator) Stop() {
	e.running = false
}

// Update records a progress observation in [0,100] and returns the
// estimated remaining time. Callers supply non-decreasing values.
//
// The first call after Start only primes internal state and returns
// zero. A zero progress delta is recorded as a zero-rate sample to
// guard the division; this drags the window average down and skews the
// estimate low until the sample is evicted.
func (e *Estimator) Update(progress float64) time.Duration {
	if !e.running {
		return 0
	}

	now := e.now()
	if !e.primed {
		e.primed = true
		e.lastProgress = progress
		e.lastTime = now
		return 0
	}

	delta := progress - e.lastProgress
	elapsed := now.Sub(e.lastTime)

	var rate time.Duration
	if delta > 0 {
		rate = time.Duration(float64(elapsed) / delta)
	}

	e.rates = append(e.rates, rate)
	if len(e.rates) > e.windowSize {
		e.rates = e.rates[1:]
	}
	e.lastProgress = progress
	e.lastTime = now

	var total time.Duration
	for _, r := range e.rates {
		total += r
	}
	average := total / time.Duration(len(e.rates))

	remaining := time.Duration(float64(average) * (100 - progress))
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Elapsed returns the time since Start, or zero when idle.
func (e *Estimator) Elapsed() time.Duration {
	if !e.running {
		return 0
	}
	return e.now().Sub(e.started)
}
