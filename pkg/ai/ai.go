package ai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/documind-ai/documind/pkg/types"
)

type ModelName struct {
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

// Message is one prompt turn. Role values mirror the chat wire roles.
type Message struct {
	Role    types.MessageUserRole
	Content string
}

type GenerateResponse struct {
	Message string
	Model   string
	Usage   *openai.Usage
}

type EmbeddingResult struct {
	Data  [][]float32
	Model string
	Usage *openai.Usage
}

// StreamReader is a consumer-pull sequence of answer increments.
// Recv returns io.EOF after the final increment; Close releases the
// underlying model call and is safe to call at any point.
type StreamReader interface {
	Recv() (string, error)
	Close() error
}

// Generator produces answers over an assembled prompt, whole or as a
// stream whose increments concatenate to the batch answer. Drivers are
// selected once at startup and never inspected structurally.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (GenerateResponse, error)
	GenerateStream(ctx context.Context, messages []Message) (StreamReader, error)
}

// Embedder maps text to fixed-dimension vectors, deterministically for a
// given model version.
type Embedder interface {
	EmbeddingForQuery(ctx context.Context, content []string) (EmbeddingResult, error)
	EmbeddingForDocument(ctx context.Context, content []string) (EmbeddingResult, error)
}

// Driver is the full capability surface a configured provider exposes.
type Driver interface {
	Generator
	Embedder
}
