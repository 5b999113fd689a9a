// Package cache provides a fail-soft key/value store with TTL used to
// avoid re-fetching identical transcripts. Backend failures are
// absorbed and logged: a failing Get reads as a miss and a failing Set
// is a no-op, so the pipeline keeps working, possibly slower, with no
// cache at all.
package cache
