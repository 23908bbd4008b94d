package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/documind-ai/documind/app/logic/v1"
	"github.com/documind-ai/documind/app/response"
	"github.com/documind-ai/documind/pkg/types"
	"github.com/documind-ai/documind/pkg/utils"
)

func (s *HttpSrv) GetDocument(c *gin.Context) {
	documentID, _ := c.Params.Get("document")

	doc, err := v1.NewDocumentLogic(c, s.Core).GetDocument(documentID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, doc)
}

type SaveTimestampsRequest struct {
	Entries   types.TimestampEntries `json:"entries" binding:"required"`
	ModelUsed string                 `json:"model_used"`
}

func (s *HttpSrv) SaveDocumentTimestamps(c *gin.Context) {
	var req SaveTimestampsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	documentID, _ := c.Params.Get("document")

	ts, err := v1.NewDocumentLogic(c, s.Core).SaveTimestamps(documentID, req.Entries, req.ModelUsed)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ts)
}

func (s *HttpSrv) GetDocumentTimestamps(c *gin.Context) {
	documentID, _ := c.Params.Get("document")

	ts, err := v1.NewDocumentLogic(c, s.Core).GetTimestamps(documentID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ts)
}
