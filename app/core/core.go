package core

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/documind-ai/documind/app/core/srv"
	"github.com/documind-ai/documind/app/store/sqlstore"
	"github.com/documind-ai/documind/pkg/vectorindex"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores      func() *sqlstore.Provider
	vectorIndex vectorindex.Index
	httpClient  *http.Client
	httpEngine  *gin.Engine
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	core := &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		httpEngine: gin.New(),
	}

	setupSqlStore(core)
	setupVectorIndex(core)

	opts := []srv.ApplyFunc{srv.ApplyAI(cfg.AI)}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		opts = append(opts, srv.ApplySessionLocker(srv.NewRedisSessionLocker(client)))
	}

	core.srv = srv.SetupSrvs(opts...)

	return core
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	if err := core.stores().Install(); err != nil {
		panic(err)
	}
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) VectorIndex() vectorindex.Index {
	return s.vectorIndex
}
