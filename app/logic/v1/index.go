package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/documind-ai/documind/app/core"
	"github.com/documind-ai/documind/pkg/chunker"
	"github.com/documind-ai/documind/pkg/errors"
	"github.com/documind-ai/documind/pkg/types"
	"github.com/documind-ai/documind/pkg/vectorindex"
)

type IndexLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewIndexLogic(ctx context.Context, core *core.Core) *IndexLogic {
	return &IndexLogic{
		ctx:  ctx,
		core: core,
	}
}

type BuildIndexResult struct {
	DocumentID string `json:"document_id"`
	Chunks     int    `json:"chunks"`
	Model      string `json:"model,omitempty"`
}

// BuildDocumentIndex splits the document's extracted text, embeds every
// chunk and replaces the document's index namespace. Rebuilding an already
// indexed document yields the same state, never duplicates. The document
// status tracks the build so questions arriving early get a clean
// not-indexed answer instead of an empty retrieval.
//
// A non-empty text is the pipeline handing over fresh extraction output;
// it is persisted on the document before indexing. Empty text reindexes
// the stored content. A document with nothing to index succeeds with zero
// chunks and stays unindexed.
func (l *IndexLogic) BuildDocumentIndex(documentID, text string) (BuildIndexResult, error) {
	var result BuildIndexResult

	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, documentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return result, errors.New("IndexLogic.BuildDocumentIndex.GetDocument", "document not found", err).
				Code(http.StatusNotFound).Kind(errors.KIND_NOT_FOUND)
		}
		return result, errors.New("IndexLogic.BuildDocumentIndex.GetDocument", "failed to get document", err)
	}

	if text != "" && text != doc.Content {
		if err = l.core.Store().DocumentStore().UpdateContent(l.ctx, documentID, text); err != nil {
			return result, errors.New("IndexLogic.BuildDocumentIndex.UpdateContent", "failed to store extracted text", err)
		}
		doc.Content = text
	}

	cfg := l.core.Cfg().RAG
	chunks := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap).Split(doc.Content, map[string]string{"document_id": doc.ID})
	if len(chunks) == 0 {
		// nothing to index, the document simply stays unindexed
		slog.Info("document has no indexable text", slog.String("document_id", documentID))
		return BuildIndexResult{DocumentID: documentID}, nil
	}

	if err = l.core.Store().DocumentStore().UpdateStatus(l.ctx, documentID, types.PROCESSING_STATUS_PROCESSING); err != nil {
		return result, errors.New("IndexLogic.BuildDocumentIndex.UpdateStatus", "failed to mark document processing", err)
	}

	result, err = l.buildIndex(doc, chunks)
	if err != nil {
		if serr := l.core.Store().DocumentStore().UpdateStatus(l.ctx, documentID, types.PROCESSING_STATUS_FAILED); serr != nil {
			slog.Error("failed to mark document failed", slog.String("document_id", documentID), slog.String("error", serr.Error()))
		}
		return result, err
	}

	if err = l.core.Store().DocumentStore().UpdateStatus(l.ctx, documentID, types.PROCESSING_STATUS_COMPLETED); err != nil {
		return result, errors.New("IndexLogic.BuildDocumentIndex.UpdateStatus", "failed to mark document completed", err)
	}
	return result, nil
}

func (l *IndexLogic) buildIndex(doc *types.Document, chunks []chunker.Chunk) (BuildIndexResult, error) {
	var result BuildIndexResult

	contents := lo.Map(chunks, func(item chunker.Chunk, _ int) string {
		return item.Content
	})

	start := time.Now()
	embedRes, err := l.core.Srv().AI().Embedder().EmbeddingForDocument(l.ctx, contents)
	if err != nil {
		return result, errors.New("IndexLogic.buildIndex.EmbeddingForDocument", "failed to embed document chunks", err).Kind(errors.KIND_INDEX_BUILD)
	}
	if len(embedRes.Data) != len(chunks) {
		return result, errors.New("IndexLogic.buildIndex.EmbeddingForDocument", "embedding count does not match chunk count", nil).Kind(errors.KIND_INDEX_BUILD)
	}

	records := make([]vectorindex.Record, 0, len(chunks))
	for i, c := range chunks {
		records = append(records, vectorindex.Record{
			Content:   c.Content,
			Seq:       c.Seq,
			Embedding: embedRes.Data[i],
		})
	}

	if err = l.core.VectorIndex().Build(l.ctx, doc.ID, records); err != nil {
		return result, errors.New("IndexLogic.buildIndex.Build", "failed to build vector index", err).Kind(errors.KIND_INDEX_BUILD)
	}

	if err = l.core.Store().DocumentStore().UpdateVectorCount(l.ctx, doc.ID, len(records)); err != nil {
		return result, errors.New("IndexLogic.buildIndex.UpdateVectorCount", "failed to record vector count", err)
	}

	slog.Info("document index built",
		slog.String("document_id", doc.ID),
		slog.Int("chunks", len(records)),
		slog.Duration("embedding_cost", time.Since(start)))

	return BuildIndexResult{
		DocumentID: doc.ID,
		Chunks:     len(records),
		Model:      embedRes.Model,
	}, nil
}

// DeleteDocumentIndex drops the document's index namespace. Deleting a
// namespace that never existed is a no-op.
func (l *IndexLogic) DeleteDocumentIndex(documentID string) error {
	if err := l.core.VectorIndex().Delete(l.ctx, documentID); err != nil {
		return errors.New("IndexLogic.DeleteDocumentIndex.Delete", "failed to delete vector index", err)
	}

	if err := l.core.Store().DocumentStore().UpdateVectorCount(l.ctx, documentID, 0); err != nil && err != sql.ErrNoRows {
		slog.Error("failed to reset vector count", slog.String("document_id", documentID), slog.String("error", err.Error()))
	}
	return nil
}
