package chunk

import "strings"

// DefaultMaxLength is the default maximum chunk length in characters.
// Sized to stay comfortably inside TTS per-request text limits.
const DefaultMaxLength = 500

// Chunk is a bounded-length contiguous span of transcript text that is
// processed as one unit. Index is the chunk's position in the source
// text; joining all chunk texts in index order with single spaces
// reproduces the whitespace-normalized input.
type Chunk struct {
	Index int
	Text  string
}

// Split partitions text into chunks of at most maxLen characters,
// breaking only on word boundaries. Words are packed greedily: a word
// joins the current chunk if the chunk length plus one separator plus
// the word still fits, otherwise it starts a new chunk.
//
// A single word longer than maxLen is kept whole as its own chunk
// rather than split mid-word. Empty or all-whitespace text yields nil.
func Split(text string, maxLen int) []Chunk {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []Chunk
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Text: current.String()})
		current.Reset()
	}

	for _, word := range words {
		switch {
		case current.Len() == 0:
			// First word of a chunk is always taken, even when it
			// alone exceeds maxLen.
			current.WriteString(word)
		case current.Len()+1+len(word) <= maxLen:
			current.WriteByte(' ')
			current.WriteString(word)
		default:
			flush()
			current.WriteString(word)
		}
	}
	flush()

	return chunks
}

// Join reassembles chunk texts in index order with single-space
// separators. It is the inverse of Split for normalized input.
func Join(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for _, c := range chunks {
		parts[c.Index] = c.Text
	}
	return strings.Join(parts, " ")
}
