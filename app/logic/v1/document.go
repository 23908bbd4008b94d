package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/documind-ai/documind/app/core"
	"github.com/documind-ai/documind/pkg/errors"
	"github.com/documind-ai/documind/pkg/types"
	"github.com/documind-ai/documind/pkg/utils"
)

type DocumentLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewDocumentLogic(ctx context.Context, core *core.Core) *DocumentLogic {
	return &DocumentLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *DocumentLogic) GetDocument(documentID string) (*types.Document, error) {
	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, documentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("DocumentLogic.GetDocument", "document not found", err).
				Code(http.StatusNotFound).Kind(errors.KIND_NOT_FOUND)
		}
		return nil, errors.New("DocumentLogic.GetDocument", "failed to get document", err)
	}
	return doc, nil
}

// GetTimestamps returns the topic timeline of a media document. Documents
// without one get an empty result, not an error.
func (l *DocumentLogic) GetTimestamps(documentID string) (*types.Timestamp, error) {
	if _, err := l.GetDocument(documentID); err != nil {
		return nil, err
	}

	ts, err := l.core.Store().TimestampStore().GetByDocument(l.ctx, documentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &types.Timestamp{DocumentID: documentID, Entries: types.TimestampEntries{}}, nil
		}
		return nil, errors.New("DocumentLogic.GetTimestamps", "failed to get timestamps", err)
	}
	return ts, nil
}

// SaveTimestamps replaces the document's topic timeline with the
// pipeline's extraction output. One timeline per document.
func (l *DocumentLogic) SaveTimestamps(documentID string, entries types.TimestampEntries, modelUsed string) (*types.Timestamp, error) {
	if _, err := l.GetDocument(documentID); err != nil {
		return nil, err
	}

	ts := types.Timestamp{
		ID:          utils.GenUniqIDStr(),
		DocumentID:  documentID,
		Entries:     entries,
		TotalTopics: len(entries),
		ModelUsed:   modelUsed,
	}

	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().TimestampStore().Delete(ctx, documentID); err != nil {
			return err
		}
		return l.core.Store().TimestampStore().Create(ctx, ts)
	})
	if err != nil {
		return nil, errors.New("DocumentLogic.SaveTimestamps.Transaction", "failed to save timestamps", err)
	}
	return &ts, nil
}
