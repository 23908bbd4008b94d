package v1_test

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"

	"github.com/documind-ai/documind/app/core"
	v1 "github.com/documind-ai/documind/app/logic/v1"
	"github.com/documind-ai/documind/pkg/errors"
	"github.com/documind-ai/documind/pkg/types"
	"github.com/documind-ai/documind/pkg/utils"
)

// newTestCore boots a full core from TEST_DOCUMIND_CONFIG_PATH. Tests in
// this file exercise the real pipeline (database, embedding endpoint) and
// are skipped when no environment is configured.
func newTestCore(t *testing.T) *core.Core {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	path := os.Getenv("TEST_DOCUMIND_CONFIG_PATH")
	if path == "" {
		t.Skip("TEST_DOCUMIND_CONFIG_PATH not set")
	}

	utils.SetupIDWorker(1)
	return core.MustSetupCore(core.MustLoadBaseConfig(path))
}

func seedDocument(t *testing.T, app *core.Core, kind types.DocumentKind, content string) string {
	t.Helper()
	id := utils.GenUniqIDStr()
	err := app.Store().DocumentStore().Create(context.Background(), types.Document{
		ID:       id,
		UserID:   "test-user",
		FileName: "fixture",
		Kind:     kind,
		Status:   types.PROCESSING_STATUS_PENDING,
		Content:  content,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = v1.NewIndexLogic(ctx, app).DeleteDocumentIndex(id)
		_ = app.Store().ChatMessageStore().DeleteByDocument(ctx, id)
		_ = app.Store().ChatSessionStore().DeleteByDocument(ctx, id)
		_ = app.Store().DocumentStore().Delete(ctx, id)
	})
	return id
}

const fixtureText = `Machine learning is a field of study that gives computers the ability to learn without being explicitly programmed.

Neural networks are computing systems inspired by biological brains. They are trained on large datasets and adjust their weights through backpropagation.

Deployment moves a trained model into production, where it serves predictions behind an API.`

func TestAskOverUnindexedDocument(t *testing.T) {
	app := newTestCore(t)
	docID := seedDocument(t, app, types.DOCUMENT_KIND_PDF, fixtureText)

	_, err := v1.NewChatLogic(context.Background(), app).Ask(docID, "test-user", "what are neural networks?")
	if err == nil {
		t.Fatal("expected a not-indexed error before the index is built")
	}
	if !errors.Is(err, errors.KIND_NOT_INDEXED) {
		t.Fatalf("expected KIND_NOT_INDEXED, got %v", err)
	}
}

func TestBuildIndexAndAsk(t *testing.T) {
	app := newTestCore(t)
	ctx := context.Background()
	docID := seedDocument(t, app, types.DOCUMENT_KIND_PDF, fixtureText)

	result, err := v1.NewIndexLogic(ctx, app).BuildDocumentIndex(docID, "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Chunks == 0 {
		t.Fatal("index build produced no chunks")
	}

	// rebuilding must not duplicate anything
	again, err := v1.NewIndexLogic(ctx, app).BuildDocumentIndex(docID, "")
	if err != nil {
		t.Fatal(err)
	}
	if again.Chunks != result.Chunks {
		t.Fatalf("rebuild changed chunk count: %d != %d", again.Chunks, result.Chunks)
	}

	answer, err := v1.NewChatLogic(ctx, app).Ask(docID, "test-user", "How are neural networks trained?")
	if err != nil {
		t.Fatal(err)
	}
	if answer.Answer == "" {
		t.Fatal("empty answer")
	}
	if len(answer.Sources) == 0 {
		t.Fatal("answer carries no source chunk texts")
	}
	if answer.SourceChunks != len(answer.Sources) {
		t.Fatalf("source count %d disagrees with %d source texts", answer.SourceChunks, len(answer.Sources))
	}

	history, err := v1.NewChatLogic(ctx, app).History(docID, "test-user", 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(history.Messages) != 2 {
		t.Fatalf("expected one persisted turn (2 messages), got %d", len(history.Messages))
	}
	if history.TotalMessages != 2 {
		t.Fatalf("session totals not updated, got %d", history.TotalMessages)
	}
}

func TestAskStreamMatchesBatchShape(t *testing.T) {
	app := newTestCore(t)
	ctx := context.Background()
	docID := seedDocument(t, app, types.DOCUMENT_KIND_PDF, fixtureText)

	if _, err := v1.NewIndexLogic(ctx, app).BuildDocumentIndex(docID, ""); err != nil {
		t.Fatal(err)
	}

	var (
		order []string
		full  strings.Builder
		done  v1.AskResult
	)
	err := v1.NewChatLogic(ctx, app).AskStream(docID, "test-user", "What is machine learning?", func(ev v1.StreamEvent) error {
		order = append(order, ev.Type)
		switch ev.Type {
		case v1.STREAM_EVENT_CONTENT:
			full.WriteString(ev.Data.(v1.StreamContentData).Delta)
		case v1.STREAM_EVENT_DONE:
			done = ev.Data.(v1.AskResult)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(order) < 2 || order[0] != v1.STREAM_EVENT_START || order[len(order)-1] != v1.STREAM_EVENT_DONE {
		t.Fatalf("unexpected event order: %v", order)
	}
	if full.String() != done.Answer {
		t.Fatal("concatenated deltas do not equal the final answer")
	}
	if len(done.Sources) == 0 {
		t.Fatal("done event carries no source chunk texts")
	}
}

func TestBuildIndexOverEmptyDocument(t *testing.T) {
	app := newTestCore(t)
	ctx := context.Background()
	docID := seedDocument(t, app, types.DOCUMENT_KIND_PDF, "")

	result, err := v1.NewIndexLogic(ctx, app).BuildDocumentIndex(docID, "   \n\n  ")
	if err != nil {
		t.Fatal(err)
	}
	if result.Chunks != 0 {
		t.Fatalf("expected zero chunks, got %d", result.Chunks)
	}

	doc, err := app.Store().DocumentStore().GetDocument(ctx, docID)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Status == types.PROCESSING_STATUS_COMPLETED {
		t.Fatal("a document with nothing to index must stay unindexed")
	}
}

// the ask response and the done event share AskResult, so one shape check
// covers both payloads
func TestAskResultPayloadCarriesSources(t *testing.T) {
	raw, err := json.Marshal(v1.AskResult{
		SessionID:    "s1",
		Answer:       "answer",
		Sources:      []string{"first chunk", "second chunk"},
		SourceChunks: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"sources":["first chunk","second chunk"]`) {
		t.Fatalf("payload lost the source texts: %s", raw)
	}
}

func TestStreamErrorEventShape(t *testing.T) {
	raw, err := json.Marshal(v1.StreamEvent{
		Type: v1.STREAM_EVENT_ERROR,
		Data: v1.StreamErrorData{Message: "answer generation failed"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"message":"answer generation failed"`) {
		t.Fatalf("error event payload is not typed: %s", raw)
	}
}
