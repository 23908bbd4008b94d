package handler

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	v1 "github.com/documind-ai/documind/app/logic/v1"
	"github.com/documind-ai/documind/app/response"
	"github.com/documind-ai/documind/pkg/safe"
)

type BuildIndexRequest struct {
	Text  string `json:"text"`
	Async bool   `json:"async"`
}

func (s *HttpSrv) BuildDocumentIndex(c *gin.Context) {
	var req BuildIndexRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	documentID, _ := c.Params.Get("document")

	if req.Async {
		go safe.Run(func() {
			if _, err := v1.NewIndexLogic(context.Background(), s.Core).BuildDocumentIndex(documentID, req.Text); err != nil {
				slog.Error("async index build failed", slog.String("document_id", documentID), slog.String("error", err.Error()))
			}
		})
		response.APISuccess(c, v1.BuildIndexResult{DocumentID: documentID})
		return
	}

	result, err := v1.NewIndexLogic(c, s.Core).BuildDocumentIndex(documentID, req.Text)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) DeleteDocumentIndex(c *gin.Context) {
	documentID, _ := c.Params.Get("document")

	if err := v1.NewIndexLogic(c, s.Core).DeleteDocumentIndex(documentID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
