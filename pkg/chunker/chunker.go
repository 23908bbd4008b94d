package chunker

import (
	"strings"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunk is one retrievable slice of a document's extracted text.
type Chunk struct {
	Content  string
	Seq      int
	Metadata map[string]string
}

// Splitter cuts text into overlapping windows, preferring natural
// boundaries (paragraph, line, sentence, space) over hard character cuts.
// Splitting is deterministic: identical text and parameters always produce
// identical chunks, so re-indexing a document is idempotent.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
		if chunkOverlap >= chunkSize {
			chunkOverlap = chunkSize / 5
		}
	}
	return &Splitter{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Split cuts text into chunks, each carrying a copy of meta. Text at or
// below the chunk size yields exactly one chunk; empty text yields none,
// which callers treat as nothing to index.
func (s *Splitter) Split(text string, meta map[string]string) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []Chunk{newChunk(text, 0, meta)}
	}

	var chunks []Chunk
	start := 0
	for {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, newChunk(string(runes[start:]), len(chunks), meta))
			break
		}

		cut := s.findCut(runes, start, end)
		chunks = append(chunks, newChunk(string(runes[start:cut]), len(chunks), meta))

		// The next window re-reads the last chunkOverlap runes of this one.
		start = cut - s.chunkOverlap
	}
	return chunks
}

// findCut picks the cut position within (floor, end], scanning backwards for
// the highest-priority separator. The floor keeps the forward stride positive
// even after the overlap is subtracted.
func (s *Splitter) findCut(runes []rune, start, end int) int {
	floor := start + s.chunkOverlap + 1
	if minimal := start + s.chunkSize/2; minimal > floor {
		floor = minimal
	}
	if floor >= end {
		return end
	}

	for _, match := range []func([]rune, int) bool{isParagraphBreak, isLineBreak, isSentenceEnd, isSpace} {
		for i := end - 1; i >= floor; i-- {
			if match(runes, i) {
				// cut lands just after the separator
				return i + 1
			}
		}
	}
	return end
}

func isParagraphBreak(runes []rune, i int) bool {
	return runes[i] == '\n' && i > 0 && runes[i-1] == '\n'
}

func isLineBreak(runes []rune, i int) bool {
	return runes[i] == '\n'
}

func isSentenceEnd(runes []rune, i int) bool {
	switch runes[i] {
	case '.', '!', '?':
		return true
	}
	return false
}

func isSpace(runes []rune, i int) bool {
	return runes[i] == ' '
}

func newChunk(content string, seq int, meta map[string]string) Chunk {
	copied := make(map[string]string, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return Chunk{Content: content, Seq: seq, Metadata: copied}
}
