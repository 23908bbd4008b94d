package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/documind-ai/documind/app/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}
	conf.RAG.SetDefaults()

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.RAG.SetDefaults()
	return c
}

type CoreConfig struct {
	Addr     string      `toml:"addr"`
	Log      Log         `toml:"log"`
	Postgres PGConfig    `toml:"postgres"`
	Redis    RedisConfig `toml:"redis"`

	AI     srv.AIConfig `toml:"ai"`
	Vector VectorConfig `toml:"vector"`
	RAG    RAGConfig    `toml:"rag"`
}

const (
	VECTOR_DRIVER_PGVECTOR = "pgvector"
	VECTOR_DRIVER_MEMORY   = "memory"
)

// VectorConfig selects the retrieval backend. "pgvector" queries the
// database directly, "memory" keeps per-document indexes in process and
// persists them as snapshots on the document row.
type VectorConfig struct {
	Driver string `toml:"driver"`
}

// RAGConfig carries the retrieval tunables. Defaults match the shipped
// pipeline: 1000/200 splitting, top 4 chunks, 0.1 timestamp threshold.
type RAGConfig struct {
	TopK               int     `toml:"top_k"`
	ChunkSize          int     `toml:"chunk_size"`
	ChunkOverlap       int     `toml:"chunk_overlap"`
	HistoryTurns       int     `toml:"history_turns"`
	MinMatchSimilarity float64 `toml:"min_match_similarity"`
}

func (c *RAGConfig) SetDefaults() {
	if c.TopK <= 0 {
		c.TopK = 4
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 1000
	}
	if c.ChunkOverlap <= 0 {
		c.ChunkOverlap = 200
	}
	if c.HistoryTurns <= 0 {
		c.HistoryTurns = 2
	}
	if c.MinMatchSimilarity <= 0 {
		c.MinMatchSimilarity = 0.1
	}
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("DOCUMIND_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Redis.FromENV()
	c.AI.FromENV()
	c.Vector.Driver = os.Getenv("DOCUMIND_VECTOR_DRIVER")
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("DOCUMIND_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("DOCUMIND_REDIS_ADDR")
	r.Password = os.Getenv("DOCUMIND_REDIS_PASSWORD")
	if dbStr := os.Getenv("DOCUMIND_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("DOCUMIND_LOG_LEVEL")
	l.Path = os.Getenv("DOCUMIND_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
