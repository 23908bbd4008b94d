package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/documind-ai/documind/pkg/sqlstore"
	"github.com/documind-ai/documind/pkg/types"
)

type DocumentStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Document) error
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	UpdateStatus(ctx context.Context, id string, status types.ProcessingStatus) error
	UpdateContent(ctx context.Context, id string, content string) error
	UpdateVectorCount(ctx context.Context, id string, count int) error
	Delete(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, opts types.GetDocumentsOptions, page, pageSize uint64) ([]types.Document, error)
	Total(ctx context.Context, opts types.GetDocumentsOptions) (int64, error)
	// Snapshot accessors back the in-process vector index. The payload is
	// opaque here, LoadSnapshot returns (nil, nil) when none is stored.
	LoadSnapshot(ctx context.Context, id string) ([]byte, error)
	SaveSnapshot(ctx context.Context, id string, snapshot []byte) error
	DeleteSnapshot(ctx context.Context, id string) error
}

type VectorStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Vector) error
	BatchCreate(ctx context.Context, datas []types.Vector) error
	BatchDelete(ctx context.Context, documentID string) error
	ListVectors(ctx context.Context, opts types.GetVectorsOptions, page, pageSize uint64) ([]types.Vector, error)
	Total(ctx context.Context, opts types.GetVectorsOptions) (int64, error)
	Query(ctx context.Context, opts types.GetVectorsOptions, vectors pgvector.Vector, limit uint64) ([]types.VectorQueryResult, error)
}

type ChatSessionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ChatSession) error
	GetChatSession(ctx context.Context, documentID, userID string) (*types.ChatSession, error)
	GetByID(ctx context.Context, sessionID string) (*types.ChatSession, error)
	UpdateTotals(ctx context.Context, sessionID string, messageDelta, tokenDelta int64) error
	Delete(ctx context.Context, sessionID string) error
	DeleteByDocument(ctx context.Context, documentID string) error
}

type ChatMessageStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data *types.ChatMessage) error
	GetOne(ctx context.Context, id string) (*types.ChatMessage, error)
	ListSessionMessage(ctx context.Context, sessionID string, page, pageSize uint64) ([]*types.ChatMessage, error)
	ListLatestSessionMessage(ctx context.Context, sessionID string, limit uint64) ([]*types.ChatMessage, error)
	TotalSessionMessage(ctx context.Context, sessionID string) (int64, error)
	DeleteSessionMessage(ctx context.Context, sessionID string) error
	DeleteByDocument(ctx context.Context, documentID string) error
}

type TimestampStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Timestamp) error
	GetByDocument(ctx context.Context, documentID string) (*types.Timestamp, error)
	Delete(ctx context.Context, documentID string) error
}
