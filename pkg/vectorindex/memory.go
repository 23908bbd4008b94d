package vectorindex

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sort"
	"sync"
)

// SnapshotStore persists a serialized index alongside its owning document.
// Load returns (nil, nil) when no snapshot exists. The snapshot format is
// private to this package and carries no cross-version guarantee.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, documentID string) ([]byte, error)
	SaveSnapshot(ctx context.Context, documentID string, snapshot []byte) error
	DeleteSnapshot(ctx context.Context, documentID string) error
}

type snapshot struct {
	Records []Record
}

// MemoryIndex keeps one brute-force cosine index per document in memory
// and serializes it through a SnapshotStore for durability. Lookups miss
// to the store before reporting ErrNotIndexed, so a restarted process
// reloads lazily on first query. Build and Query on the same document are
// serialized by a per-document lock; different documents never contend.
type MemoryIndex struct {
	store SnapshotStore

	mu      sync.Mutex
	indexes map[string]*documentIndex
}

type documentIndex struct {
	mu      sync.RWMutex
	loaded  bool
	records []Record
}

func NewMemoryIndex(store SnapshotStore) *MemoryIndex {
	return &MemoryIndex{
		store:   store,
		indexes: make(map[string]*documentIndex),
	}
}

func (m *MemoryIndex) entry(documentID string) *documentIndex {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.indexes[documentID]
	if !ok {
		e = &documentIndex{}
		m.indexes[documentID] = e
	}
	return e
}

func (m *MemoryIndex) Build(ctx context.Context, documentID string, records []Record) error {
	e := m.entry(documentID)
	e.mu.Lock()
	defer e.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot{Records: records}); err != nil {
		return fmt.Errorf("failed to encode index snapshot, %w", err)
	}
	if err := m.store.SaveSnapshot(ctx, documentID, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to persist index snapshot, %w", err)
	}

	e.records = records
	e.loaded = true
	return nil
}

func (m *MemoryIndex) Query(ctx context.Context, documentID string, embedding []float32, topK int) ([]Match, error) {
	e := m.entry(documentID)

	e.mu.RLock()
	loaded, records := e.loaded, e.records
	e.mu.RUnlock()

	if !loaded {
		var err error
		if records, err = m.load(ctx, documentID, e); err != nil {
			return nil, err
		}
	}
	if len(records) == 0 {
		return nil, ErrNotIndexed
	}

	matches := make([]Match, 0, len(records))
	for _, r := range records {
		matches = append(matches, Match{
			Content: r.Content,
			Seq:     r.Seq,
			Score:   CosineSimilarity(embedding, r.Embedding),
		})
	}

	// stable on insertion order so equal scores rank deterministically
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// load pulls the durable snapshot under the write lock. A concurrent
// loader may have beaten us to it, in which case its result wins.
func (m *MemoryIndex) load(ctx context.Context, documentID string, e *documentIndex) ([]Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return e.records, nil
	}

	raw, err := m.store.LoadSnapshot(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load index snapshot, %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNotIndexed
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode index snapshot, %w", err)
	}

	e.records = snap.Records
	e.loaded = true
	return e.records, nil
}

func (m *MemoryIndex) Delete(ctx context.Context, documentID string) error {
	e := m.entry(documentID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := m.store.DeleteSnapshot(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete index snapshot, %w", err)
	}

	e.records = nil
	e.loaded = false

	m.mu.Lock()
	delete(m.indexes, documentID)
	m.mu.Unlock()
	return nil
}
