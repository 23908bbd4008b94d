package types

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"
)

type Vector struct {
	ID             string          `json:"id" db:"id"`
	DocumentID     string          `json:"document_id" db:"document_id"` // namespace, one document per index
	Content        string          `json:"content" db:"content"`
	Embedding      pgvector.Vector `json:"embedding" db:"embedding"`
	Seq            int             `json:"seq" db:"seq"` // chunk position, stable tie-break on equal similarity
	OriginalLength int             `json:"original_length" db:"original_length"`
	CreatedAt      int64           `json:"created_at" db:"created_at"`
	UpdatedAt      int64           `json:"updated_at" db:"updated_at"`
}

type VectorQueryResult struct {
	ID             string  `json:"id" db:"id"`
	DocumentID     string  `json:"document_id" db:"document_id"`
	Content        string  `json:"content" db:"content"`
	Seq            int     `json:"seq" db:"seq"`
	Cos            float32 `json:"cos" db:"cos"`
	OriginalLength int     `json:"original_length" db:"original_length"`
}

type GetVectorsOptions struct {
	ID         string
	DocumentID string
}

func (opts GetVectorsOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.DocumentID != "" {
		*query = query.Where(sq.Eq{"document_id": opts.DocumentID})
	}
}
