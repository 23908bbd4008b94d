package v1

import (
	"io"
	"strings"

	"github.com/documind-ai/documind/pkg/ai"
	"github.com/documind-ai/documind/pkg/errors"
)

const (
	STREAM_EVENT_START   = "start"
	STREAM_EVENT_CONTENT = "content"
	STREAM_EVENT_DONE    = "done"
	STREAM_EVENT_ERROR   = "error"
)

type StreamEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type StreamStartData struct {
	SessionID string `json:"session_id"`
}

type StreamContentData struct {
	Delta string `json:"delta"`
}

type StreamErrorData struct {
	Message string `json:"message"`
}

// AskStream is the streaming variant of Ask. Events arrive through emit in
// order: one start, any number of content deltas, then exactly one done.
// The turn is persisted only after the final increment, so an interrupted
// stream leaves no partial history; the concatenated deltas always equal
// the done payload's answer. Errors before the first event are returned
// directly for a plain error response.
func (l *ChatLogic) AskStream(documentID, userID, question string, emit func(StreamEvent) error) error {
	round, err := l.prepareRound(documentID, userID, question)
	if err != nil {
		return err
	}
	defer round.unlock()

	reader, err := l.core.Srv().AI().Generator().GenerateStream(l.ctx, ai.BuildQAMessages(round.chunks, round.history, question))
	if err != nil {
		return errors.New("ChatLogic.AskStream.GenerateStream", "failed to start answer stream", err).Kind(errors.KIND_GENERATION_FAILED)
	}
	defer reader.Close()

	if err = emit(StreamEvent{Type: STREAM_EVENT_START, Data: StreamStartData{SessionID: round.session.ID}}); err != nil {
		return err
	}

	var full strings.Builder
	for {
		delta, err := reader.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			// the client already saw partial output, surface the failure in-band
			_ = emit(StreamEvent{Type: STREAM_EVENT_ERROR, Data: StreamErrorData{Message: "answer generation failed"}})
			return errors.New("ChatLogic.AskStream.Recv", "answer stream broke", err).Kind(errors.KIND_GENERATION_FAILED)
		}

		full.WriteString(delta)
		if err = emit(StreamEvent{Type: STREAM_EVENT_CONTENT, Data: StreamContentData{Delta: delta}}); err != nil {
			// client went away mid-stream, drop the turn
			return err
		}
	}

	answer := full.String()
	model := l.core.Cfg().AI.Models.ChatModel
	suggested := l.suggestTimestamp(round.doc, answer, round.chunks)

	msgID, err := l.persistTurn(round.session, userID, question, answer, model, round.chunks, suggested)
	if err != nil {
		_ = emit(StreamEvent{Type: STREAM_EVENT_ERROR, Data: StreamErrorData{Message: "failed to save the answer"}})
		return err
	}

	return emit(StreamEvent{Type: STREAM_EVENT_DONE, Data: AskResult{
		SessionID:     round.session.ID,
		MessageID:     msgID,
		Answer:        answer,
		Model:         model,
		Sources:       round.chunks,
		SourceChunks:  len(round.chunks),
		SuggestedTime: suggested,
	}})
}
