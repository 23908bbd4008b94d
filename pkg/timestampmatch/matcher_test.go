package timestampmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/documind-ai/documind/pkg/types"
)

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("The Neural Networks are trained, with data!")

	assert.Contains(t, keywords, "neural")
	assert.Contains(t, keywords, "networks")
	assert.Contains(t, keywords, "trained")
	assert.Contains(t, keywords, "data")
	// stop words and short tokens are dropped
	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "are")
	assert.NotContains(t, keywords, "with")
}

func TestCalculateSimilarity(t *testing.T) {
	a := ExtractKeywords("neural networks learn representations")
	b := ExtractKeywords("neural networks learn representations")
	assert.Equal(t, 1.0, CalculateSimilarity(a, b))

	c := ExtractKeywords("cooking pasta requires boiling water")
	assert.Equal(t, 0.0, CalculateSimilarity(a, c))

	d := ExtractKeywords("neural networks")
	assert.Equal(t, CalculateSimilarity(a, d), CalculateSimilarity(d, a))

	assert.Equal(t, 0.0, CalculateSimilarity(a, map[string]struct{}{}))
	assert.Equal(t, 0.0, CalculateSimilarity(map[string]struct{}{}, a))
}

func timelineEntries() []types.TimestampEntry {
	return []types.TimestampEntry{
		{ID: "1", Time: 30, Topic: "Introduction", Description: "welcome and agenda", Keywords: []string{"welcome", "agenda"}},
		{ID: "2", Time: 120, Topic: "Machine Learning Basics", Description: "how models learn from data", Keywords: []string{"machine", "learning", "neural", "networks", "training"}},
		{ID: "3", Time: 300, Topic: "Deployment", Description: "serving models in production", Keywords: []string{"deployment", "production", "serving"}},
	}
}

func TestFindBest(t *testing.T) {
	got := FindBest("Machine learning uses neural networks for training models", nil, timelineEntries(), DefaultMinSimilarity)
	require.NotNil(t, got)
	assert.Equal(t, 120, *got)
}

func TestFindBestBelowThreshold(t *testing.T) {
	got := FindBest("The recipe calls for fresh basil and tomatoes", nil, timelineEntries(), DefaultMinSimilarity)
	assert.Nil(t, got)
}

func TestFindBestEmptyEntries(t *testing.T) {
	assert.Nil(t, FindBest("anything at all", nil, nil, DefaultMinSimilarity))
}

func TestFindBestSkipsEntriesWithoutKeywords(t *testing.T) {
	entries := []types.TimestampEntry{
		{ID: "1", Time: 10, Topic: "a", Description: "of the", Keywords: nil}, // nothing survives extraction
		{ID: "2", Time: 90, Topic: "Neural Networks", Keywords: []string{"neural", "networks", "training"}},
	}

	got := FindBest("neural networks need training", nil, entries, DefaultMinSimilarity)
	require.NotNil(t, got)
	assert.Equal(t, 90, *got)
}

func TestFindBestFirstWinsOnTies(t *testing.T) {
	entries := []types.TimestampEntry{
		{ID: "1", Time: 60, Topic: "Vector Search", Keywords: []string{"vector", "search"}},
		{ID: "2", Time: 240, Topic: "Vector Search Revisited", Keywords: []string{"vector", "search"}},
	}

	got := FindBest("vector search", nil, entries, DefaultMinSimilarity)
	require.NotNil(t, got)
	assert.Equal(t, 60, *got)
}

func TestFindBestUsesSourceChunks(t *testing.T) {
	entries := []types.TimestampEntry{
		{ID: "1", Time: 180, Topic: "Database Indexing", Keywords: []string{"database", "indexing", "btree"}},
	}

	// the short answer alone matches nothing, the chunks carry the overlap
	chunks := []string{"database indexing with btree structures keeps lookups fast"}
	got := FindBest("Yes", chunks, entries, DefaultMinSimilarity)
	require.NotNil(t, got)
	assert.Equal(t, 180, *got)
}

func TestFindTopN(t *testing.T) {
	matches := FindTopN("machine learning neural networks training deployment production", nil, timelineEntries(), 2, DefaultMinSimilarity)
	require.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), 2)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity)
	}
}
