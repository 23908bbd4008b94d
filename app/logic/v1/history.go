package v1

import (
	"database/sql"

	"github.com/documind-ai/documind/pkg/errors"
	"github.com/documind-ai/documind/pkg/types"
)

type ChatHistory struct {
	SessionID     string               `json:"session_id,omitempty"`
	TotalMessages int64                `json:"total_messages"`
	TotalTokens   int64                `json:"total_tokens"`
	Messages      []*types.ChatMessage `json:"messages"`
}

// History returns the caller's full conversation over a document, oldest
// first. A user who never asked anything gets an empty history.
func (l *ChatLogic) History(documentID, userID string, page, pageSize uint64) (*ChatHistory, error) {
	session, err := l.core.Store().ChatSessionStore().GetChatSession(l.ctx, documentID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &ChatHistory{Messages: []*types.ChatMessage{}}, nil
		}
		return nil, errors.New("ChatLogic.History.GetChatSession", "failed to get chat session", err)
	}

	msgs, err := l.core.Store().ChatMessageStore().ListSessionMessage(l.ctx, session.ID, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ChatLogic.History.ListSessionMessage", "failed to list session messages", err)
	}
	if msgs == nil {
		msgs = []*types.ChatMessage{}
	}

	return &ChatHistory{
		SessionID:     session.ID,
		TotalMessages: session.TotalMessages,
		TotalTokens:   session.TotalTokens,
		Messages:      msgs,
	}, nil
}
