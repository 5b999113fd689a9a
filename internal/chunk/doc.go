// Package chunk partitions transcript text into bounded-length spans
// suitable for per-request enhancement and speech synthesis.
package chunk
