package service

import (
	"github.com/documind-ai/documind/app/core"
	"github.com/documind-ai/documind/app/response"
	"github.com/documind-ai/documind/cmd/service/handler"
	"github.com/documind-ai/documind/cmd/service/middleware"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(response.NewResponse())
	s.Engine.Use(middleware.Cors)

	apiV1 := s.Engine.Group("/api/v1")
	apiV1.Use(middleware.Identity())
	{
		chat := apiV1.Group("/chat")
		{
			chat.POST("/:document/ask", s.Ask)
			chat.POST("/:document/ask/stream", s.AskStream)
			chat.GET("/:document/history", s.ChatHistory)
		}

		documents := apiV1.Group("/documents")
		{
			documents.GET("/:document", s.GetDocument)
			documents.GET("/:document/timestamps", s.GetDocumentTimestamps)
		}
	}

	internal := s.Engine.Group("/internal/v1")
	{
		internal.POST("/documents/:document/index", s.BuildDocumentIndex)
		internal.DELETE("/documents/:document/index", s.DeleteDocumentIndex)
		internal.PUT("/documents/:document/timestamps", s.SaveDocumentTimestamps)
	}
}
