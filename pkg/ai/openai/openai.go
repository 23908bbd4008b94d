package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"

	"github.com/documind-ai/documind/pkg/ai"
)

const NAME = "openai"

// Driver speaks to any OpenAI-compatible endpoint (OpenAI, Groq, a local
// proxy) selected by base URL.
type Driver struct {
	client *openai.Client
	model  ai.ModelName
}

func New(token, endpoint string, model ai.ModelName) *Driver {
	cfg := openai.DefaultConfig(token)
	if endpoint != "" {
		cfg.BaseURL = endpoint
	}

	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4oMini
	}
	if model.EmbeddingModel == "" {
		model.EmbeddingModel = string(openai.SmallEmbedding3)
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *Driver) embedding(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	slog.Debug("Embedding", slog.String("driver", NAME), slog.Int("inputs", len(content)))

	queryReq := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(s.model.EmbeddingModel),
	}

	var (
		groups   [][]string
		result   [][]float32
		batchMax = 6
	)

	for i, v := range content {
		if i%batchMax == 0 {
			groups = append(groups, []string{})
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], v)
	}

	r := ai.EmbeddingResult{
		Usage: &openai.Usage{},
	}
	for _, v := range groups {
		queryReq.Input = v
		resp, err := s.client.CreateEmbeddings(ctx, queryReq)
		if err != nil {
			return r, fmt.Errorf("Error creating embedding: %w", err)
		}
		for _, item := range resp.Data {
			result = append(result, item.Embedding)
		}

		r.Usage.PromptTokens += resp.Usage.PromptTokens
		r.Usage.TotalTokens += resp.Usage.TotalTokens
		r.Model = string(resp.Model)
	}

	r.Data = result
	return r, nil
}

func (s *Driver) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, content)
}

func (s *Driver) EmbeddingForDocument(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, content)
}

func toChatMessages(messages []ai.Message) []openai.ChatCompletionMessage {
	return lo.Map(messages, func(item ai.Message, _ int) openai.ChatCompletionMessage {
		return openai.ChatCompletionMessage{
			Role:    item.Role.String(),
			Content: item.Content,
		}
	})
}

func (s *Driver) Generate(ctx context.Context, messages []ai.Message) (ai.GenerateResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:    s.model.ChatModel,
		Messages: toChatMessages(messages),
	}

	var result ai.GenerateResponse
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return result, fmt.Errorf("Completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("Completion error: empty choices")
	}

	slog.Debug("Generate", slog.String("driver", NAME), slog.String("model", s.model.ChatModel))

	result.Message = resp.Choices[0].Message.Content
	result.Model = resp.Model
	result.Usage = &resp.Usage
	return result, nil
}

func (s *Driver) GenerateStream(ctx context.Context, messages []ai.Message) (ai.StreamReader, error) {
	req := openai.ChatCompletionRequest{
		Model:    s.model.ChatModel,
		Stream:   true,
		Messages: toChatMessages(messages),
	}

	resp, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Completion error: %w", err)
	}

	slog.Debug("GenerateStream", slog.String("driver", NAME), slog.String("model", s.model.ChatModel))
	return &streamReader{stream: resp}, nil
}

// streamReader narrows *openai.ChatCompletionStream to ai.StreamReader,
// skipping keep-alive frames that carry no content delta.
type streamReader struct {
	stream *openai.ChatCompletionStream
}

func (s *streamReader) Recv() (string, error) {
	for {
		msg, err := s.stream.Recv()
		if err != nil {
			// io.EOF passes through as the end-of-stream marker
			return "", err
		}
		for _, choice := range msg.Choices {
			if choice.Delta.Content != "" {
				return choice.Delta.Content, nil
			}
		}
	}
}

func (s *streamReader) Close() error {
	return s.stream.Close()
}
