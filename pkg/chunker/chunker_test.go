package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmpty(t *testing.T) {
	s := NewSplitter(1000, 200)

	assert.Nil(t, s.Split("", nil))
	assert.Nil(t, s.Split("   \n\t  ", nil))
}

func TestSplitShortText(t *testing.T) {
	s := NewSplitter(1000, 200)

	chunks := s.Split("a short paragraph", map[string]string{"document_id": "d1"})
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short paragraph", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Seq)
	assert.Equal(t, "d1", chunks[0].Metadata["document_id"])
}

func TestSplitChunkSizeBound(t *testing.T) {
	s := NewSplitter(100, 20)

	text := strings.Repeat("word and more text here. ", 40)
	chunks := s.Split(text, nil)
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Content)), 100)
		assert.NotEmpty(t, c.Content)
	}
}

func TestSplitSequenceAndDeterminism(t *testing.T) {
	s := NewSplitter(80, 16)
	text := strings.Repeat("sentences pile up. one after the other. ", 30)

	first := s.Split(text, nil)
	second := s.Split(text, nil)
	require.Equal(t, len(first), len(second))

	for i := range first {
		assert.Equal(t, i, first[i].Seq)
		assert.Equal(t, first[i].Content, second[i].Content)
	}
}

func TestSplitExactOverlap(t *testing.T) {
	overlap := 20
	s := NewSplitter(100, overlap)
	text := strings.Repeat("overlapping windows share a tail and a head. ", 30)

	chunks := s.Split(text, nil)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		cur := []rune(chunks[i].Content)
		require.GreaterOrEqual(t, len(prev), overlap)
		assert.Equal(t, string(prev[len(prev)-overlap:]), string(cur[:overlap]))
	}
}

func TestSplitCoversWholeText(t *testing.T) {
	overlap := 20
	s := NewSplitter(100, overlap)
	text := strings.TrimSpace(strings.Repeat("no byte of input may go missing between windows. ", 25))

	chunks := s.Split(text, nil)
	require.Greater(t, len(chunks), 1)

	// stitch chunks back together by dropping each successor's overlap
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Content)
	for i := 1; i < len(chunks); i++ {
		cur := []rune(chunks[i].Content)
		rebuilt.WriteString(string(cur[overlap:]))
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitPrefersParagraphBreaks(t *testing.T) {
	s := NewSplitter(100, 20)

	para := strings.Repeat("x", 70)
	text := para + "\n\n" + para + "\n\n" + para
	chunks := s.Split(text, nil)
	require.Greater(t, len(chunks), 1)

	// the first cut should land on the paragraph boundary, not mid-run
	assert.True(t, strings.HasSuffix(chunks[0].Content, "\n"))
}

func TestNewSplitterDefaults(t *testing.T) {
	s := NewSplitter(0, -1)
	assert.Equal(t, DefaultChunkSize, s.chunkSize)
	assert.Equal(t, DefaultChunkOverlap, s.chunkOverlap)

	// overlap >= size degrades to a fifth of the size
	s = NewSplitter(100, 100)
	assert.Equal(t, 100, s.chunkSize)
	assert.Equal(t, 20, s.chunkOverlap)
}
