package core

import (
	"context"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/documind-ai/documind/app/store"
	"github.com/documind-ai/documind/pkg/types"
	"github.com/documind-ai/documind/pkg/utils"
	"github.com/documind-ai/documind/pkg/vectorindex"
)

func setupVectorIndex(core *Core) {
	switch core.cfg.Vector.Driver {
	case VECTOR_DRIVER_MEMORY:
		core.vectorIndex = vectorindex.NewMemoryIndex(core.Store().DocumentStore())
	default:
		core.vectorIndex = &pgvectorIndex{
			vectors: core.Store().VectorStore(),
		}
	}
}

// pgvectorIndex backs the vectorindex.Index interface with the database.
// Each document is its own namespace via the document_id column, so Build
// and Delete stay idempotent per document.
type pgvectorIndex struct {
	vectors store.VectorStore
}

func (p *pgvectorIndex) Build(ctx context.Context, documentID string, records []vectorindex.Record) error {
	if err := p.vectors.BatchDelete(ctx, documentID); err != nil {
		return err
	}

	now := time.Now().Unix()
	datas := make([]types.Vector, 0, len(records))
	for _, r := range records {
		datas = append(datas, types.Vector{
			ID:             utils.GenUniqIDStr(),
			DocumentID:     documentID,
			Content:        r.Content,
			Embedding:      pgvector.NewVector(r.Embedding),
			Seq:            r.Seq,
			OriginalLength: len(r.Content),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return p.vectors.BatchCreate(ctx, datas)
}

func (p *pgvectorIndex) Query(ctx context.Context, documentID string, embedding []float32, topK int) ([]vectorindex.Match, error) {
	total, err := p.vectors.Total(ctx, types.GetVectorsOptions{DocumentID: documentID})
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, vectorindex.ErrNotIndexed
	}

	res, err := p.vectors.Query(ctx, types.GetVectorsOptions{DocumentID: documentID}, pgvector.NewVector(embedding), uint64(topK))
	if err != nil {
		return nil, err
	}

	matches := make([]vectorindex.Match, 0, len(res))
	for _, v := range res {
		matches = append(matches, vectorindex.Match{
			Content: v.Content,
			Seq:     v.Seq,
			Score:   v.Cos,
		})
	}
	return matches, nil
}

func (p *pgvectorIndex) Delete(ctx context.Context, documentID string) error {
	return p.vectors.BatchDelete(ctx, documentID)
}
