package vectorindex

import (
	"context"
	"errors"
	"math"
)

// ErrNotIndexed distinguishes "no index exists for this document" from a
// query that legitimately matched nothing. Callers surface it as the
// document still being processed.
var ErrNotIndexed = errors.New("vectorindex: document not indexed")

// Record is one embedded chunk heading into an index build.
type Record struct {
	Content   string
	Seq       int
	Embedding []float32
}

// Match is one ranked query hit, best first.
type Match struct {
	Content string
	Seq     int
	Score   float32
}

// Index is a per-document nearest-neighbor store. Build replaces the whole
// namespace for a document, Query returns cosine top-k best first with
// insertion-order tie-breaks, Delete removes the namespace. The two
// backends (remote pgvector, in-process serialized) are interchangeable
// behind this interface.
type Index interface {
	Build(ctx context.Context, documentID string, records []Record) error
	Query(ctx context.Context, documentID string, embedding []float32, topK int) ([]Match, error)
	Delete(ctx context.Context, documentID string) error
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// zero when dimensions mismatch or either vector is zero.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
