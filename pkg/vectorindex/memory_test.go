package vectorindex

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotStore struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	saves     int
	loads     int
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snapshots: make(map[string][]byte)}
}

func (f *fakeSnapshotStore) LoadSnapshot(ctx context.Context, documentID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.snapshots[documentID], nil
}

func (f *fakeSnapshotStore) SaveSnapshot(ctx context.Context, documentID string, snapshot []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.snapshots[documentID] = snapshot
	return nil
}

func (f *fakeSnapshotStore) DeleteSnapshot(ctx context.Context, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.snapshots, documentID)
	return nil
}

func testRecords() []Record {
	return []Record{
		{Content: "alpha", Seq: 0, Embedding: []float32{1, 0, 0}},
		{Content: "beta", Seq: 1, Embedding: []float32{0, 1, 0}},
		{Content: "gamma", Seq: 2, Embedding: []float32{0.9, 0.1, 0}},
	}
}

func TestMemoryIndexQueryRanksByCosine(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex(newFakeSnapshotStore())

	require.NoError(t, idx.Build(ctx, "doc1", testRecords()))

	matches, err := idx.Query(ctx, "doc1", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "alpha", matches[0].Content)
	assert.Equal(t, "gamma", matches[1].Content)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestMemoryIndexNotIndexed(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex(newFakeSnapshotStore())

	_, err := idx.Query(ctx, "missing", []float32{1, 0, 0}, 4)
	assert.ErrorIs(t, err, ErrNotIndexed)
}

func TestMemoryIndexLoadOnMiss(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshotStore()

	// one process builds and persists
	require.NoError(t, NewMemoryIndex(store).Build(ctx, "doc1", testRecords()))

	// a fresh instance has a cold cache and must reload from the snapshot
	fresh := NewMemoryIndex(store)
	matches, err := fresh.Query(ctx, "doc1", []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "beta", matches[0].Content)
	assert.Greater(t, store.loads, 0)
}

func TestMemoryIndexRebuildReplaces(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex(newFakeSnapshotStore())

	require.NoError(t, idx.Build(ctx, "doc1", testRecords()))
	require.NoError(t, idx.Build(ctx, "doc1", []Record{
		{Content: "only", Seq: 0, Embedding: []float32{0, 0, 1}},
	}))

	matches, err := idx.Query(ctx, "doc1", []float32{0, 0, 1}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "only", matches[0].Content)
}

func TestMemoryIndexNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex(newFakeSnapshotStore())

	require.NoError(t, idx.Build(ctx, "doc1", testRecords()))
	require.NoError(t, idx.Build(ctx, "doc2", []Record{
		{Content: "other", Seq: 0, Embedding: []float32{1, 0, 0}},
	}))

	matches, err := idx.Query(ctx, "doc2", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "other", matches[0].Content)
}

func TestMemoryIndexDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshotStore()
	idx := NewMemoryIndex(store)

	require.NoError(t, idx.Build(ctx, "doc1", testRecords()))
	require.NoError(t, idx.Delete(ctx, "doc1"))

	_, err := idx.Query(ctx, "doc1", []float32{1, 0, 0}, 4)
	assert.ErrorIs(t, err, ErrNotIndexed)

	// deleting again is a no-op
	assert.NoError(t, idx.Delete(ctx, "doc1"))
}

func TestMemoryIndexTopKCap(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex(newFakeSnapshotStore())

	require.NoError(t, idx.Build(ctx, "doc1", testRecords()))

	matches, err := idx.Query(ctx, "doc1", []float32{1, 1, 1}, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 3) // non-positive topK means no cap
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.Equal(t, float32(0), CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, float32(0), CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}
