package sqlstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/documind-ai/documind/pkg/types"
)

type testPGConfig struct {
	DSN string
}

func (m testPGConfig) FormatDSN() string {
	return m.DSN
}

func TestVectorQuery(t *testing.T) {
	dsn := os.Getenv("TEST_DOCUMIND_POSTGRESQL_DSN")
	if dsn == "" {
		t.Skip("TEST_DOCUMIND_POSTGRESQL_DSN not set")
	}

	provider := MustSetup(testPGConfig{DSN: dsn})()
	if err := provider.Install(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	docID := "test-doc-query"
	t.Cleanup(func() {
		_ = provider.stores.VectorStore.BatchDelete(context.Background(), docID)
	})

	embedding := make([]float32, 1536)
	embedding[0] = 1
	err := provider.stores.VectorStore.BatchCreate(ctx, []types.Vector{
		{ID: "v1", DocumentID: docID, Content: "first", Seq: 0, Embedding: pgvector.NewVector(embedding)},
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := provider.stores.VectorStore.Query(ctx, types.GetVectorsOptions{DocumentID: docID}, pgvector.NewVector(embedding), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Content != "first" {
		t.Fatalf("unexpected query result: %+v", res)
	}
}
