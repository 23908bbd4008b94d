package types

import (
	sq "github.com/Masterminds/squirrel"
)

type DocumentKind string

const (
	DOCUMENT_KIND_PDF   DocumentKind = "pdf"
	DOCUMENT_KIND_AUDIO DocumentKind = "audio"
	DOCUMENT_KIND_VIDEO DocumentKind = "video"
)

// IsTimed reports whether the document carries a playback timeline,
// which enables timestamp suggestions on answers.
func (k DocumentKind) IsTimed() bool {
	return k == DOCUMENT_KIND_AUDIO || k == DOCUMENT_KIND_VIDEO
}

type ProcessingStatus string

const (
	PROCESSING_STATUS_PENDING    ProcessingStatus = "pending"
	PROCESSING_STATUS_PROCESSING ProcessingStatus = "processing"
	PROCESSING_STATUS_COMPLETED  ProcessingStatus = "completed"
	PROCESSING_STATUS_FAILED     ProcessingStatus = "failed"
)

type Document struct {
	ID             string           `json:"id" db:"id"`
	UserID         string           `json:"user_id" db:"user_id"`
	FileName       string           `json:"file_name" db:"file_name"`
	Kind           DocumentKind     `json:"kind" db:"kind"`
	Status         ProcessingStatus `json:"status" db:"status"`
	Content        string           `json:"-" db:"content"`                // extracted text, written by the pipeline
	VectorCount    int              `json:"vector_count" db:"vector_count"`
	VectorSnapshot []byte           `json:"-" db:"vector_snapshot"` // serialized in-process index, memory backend only
	CreatedAt      int64            `json:"created_at" db:"created_at"`
	UpdatedAt      int64            `json:"updated_at" db:"updated_at"`
}

type GetDocumentsOptions struct {
	ID     string
	UserID string
	Kind   DocumentKind
	Status ProcessingStatus
}

func (opts GetDocumentsOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.Kind != "" {
		*query = query.Where(sq.Eq{"kind": opts.Kind})
	}
	if opts.Status != "" {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
}
