package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"

	v1 "github.com/documind-ai/documind/app/logic/v1"
	"github.com/documind-ai/documind/app/response"
	"github.com/documind-ai/documind/cmd/service/middleware"
	"github.com/documind-ai/documind/pkg/utils"
)

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *HttpSrv) Ask(c *gin.Context) {
	var req AskRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	documentID, _ := c.Params.Get("document")
	userID := middleware.InjectUser(c)

	result, err := v1.NewChatLogic(c, s.Core).Ask(documentID, userID, req.Question)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

// AskStream answers over server-sent events. One start event, content
// deltas, then a single done event whose answer equals the concatenated
// deltas. Failures before the stream opens return a plain error response;
// failures after it surface as an error event.
func (s *HttpSrv) AskStream(c *gin.Context) {
	var req AskRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	documentID, _ := c.Params.Get("document")
	userID := middleware.InjectUser(c)

	started := false
	emit := func(ev v1.StreamEvent) error {
		if !started {
			c.Writer.Header().Set("Content-Type", "text/event-stream")
			c.Writer.Header().Set("Cache-Control", "no-cache")
			c.Writer.Header().Set("Connection", "keep-alive")
			started = true
		}

		raw, err := json.Marshal(ev.Data)
		if err != nil {
			return err
		}
		c.SSEvent(ev.Type, string(raw))
		c.Writer.Flush()

		select {
		case <-c.Request.Context().Done():
			return c.Request.Context().Err()
		default:
			return nil
		}
	}

	if err := v1.NewChatLogic(c, s.Core).AskStream(documentID, userID, req.Question, emit); err != nil {
		if !started {
			response.APIError(c, err)
			return
		}
		slog.Error("ask stream aborted", slog.String("document_id", documentID), slog.String("error", err.Error()))
	}
}

func (s *HttpSrv) ChatHistory(c *gin.Context) {
	documentID, _ := c.Params.Get("document")
	userID := middleware.InjectUser(c)

	page, pageSize := utils.PageFromQuery(c)
	result, err := v1.NewChatLogic(c, s.Core).History(documentID, userID, page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
