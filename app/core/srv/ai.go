package srv

import (
	"os"

	"github.com/documind-ai/documind/pkg/ai"
	"github.com/documind-ai/documind/pkg/ai/openai"
)

// AIConfig points every model role at one OpenAI-compatible endpoint.
type AIConfig struct {
	Token    string       `toml:"token"`
	Endpoint string       `toml:"endpoint"`
	Models   ai.ModelName `toml:"models"`
}

func (c *AIConfig) FromENV() {
	c.Token = os.Getenv("DOCUMIND_AI_TOKEN")
	c.Endpoint = os.Getenv("DOCUMIND_AI_ENDPOINT")
	c.Models.ChatModel = os.Getenv("DOCUMIND_AI_CHAT_MODEL")
	c.Models.EmbeddingModel = os.Getenv("DOCUMIND_AI_EMBEDDING_MODEL")
}

// AI fronts the configured driver. The rest of the system depends on the
// ai.Generator and ai.Embedder interfaces, never on a concrete client.
type AI struct {
	driver ai.Driver
	models ai.ModelName
}

func SetupAI(cfg AIConfig) *AI {
	return &AI{
		driver: openai.New(cfg.Token, cfg.Endpoint, cfg.Models),
		models: cfg.Models,
	}
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		s.ai = SetupAI(cfg)
	}
}

func (s *AI) Generator() ai.Generator {
	return s.driver
}

func (s *AI) Embedder() ai.Embedder {
	return s.driver
}

func (s *AI) Models() ai.ModelName {
	return s.models
}
