package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type MessageUserRole string

const (
	USER_ROLE_SYSTEM    MessageUserRole = "system"
	USER_ROLE_USER      MessageUserRole = "user"
	USER_ROLE_ASSISTANT MessageUserRole = "assistant"
)

func (r MessageUserRole) String() string {
	return string(r)
}

type ChatSession struct {
	ID            string `json:"id" db:"id"`
	DocumentID    string `json:"document_id" db:"document_id"`
	UserID        string `json:"user_id" db:"user_id"`
	TotalMessages int64  `json:"total_messages" db:"total_messages"`
	TotalTokens   int64  `json:"total_tokens" db:"total_tokens"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
	UpdatedAt     int64  `json:"updated_at" db:"updated_at"`
}

// ChatMessage is one immutable turn within a session. Assistant turns carry
// the source chunks used to ground the answer in Meta.
type ChatMessage struct {
	ID         string          `json:"id" db:"id"`
	SessionID  string          `json:"session_id" db:"session_id"`
	DocumentID string          `json:"document_id" db:"document_id"`
	UserID     string          `json:"user_id" db:"user_id"`
	Role       MessageUserRole `json:"role" db:"role"`
	Message    string          `json:"message" db:"message"`
	TokenCount int64           `json:"token_count" db:"token_count"`
	Sequence   int64           `json:"sequence" db:"sequence"`
	SendTime   int64           `json:"send_time" db:"send_time"`
	Meta       ChatMessageMeta `json:"meta" db:"meta"`
}

type ChatMessageMeta struct {
	SourceChunks    []string `json:"source_chunks,omitempty"`
	Model           string   `json:"model,omitempty"`
	SuggestedTime   *int     `json:"suggested_time,omitempty"`
	RetrievedChunks int      `json:"retrieved_chunks,omitempty"`
}

func (m ChatMessageMeta) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *ChatMessageMeta) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return m.scanBytes(src)
	case string:
		return m.scanBytes([]byte(src))
	case nil:
		*m = ChatMessageMeta{}
		return nil
	}
	return fmt.Errorf("pq: cannot convert %T to ChatMessageMeta", src)
}

func (m *ChatMessageMeta) scanBytes(src []byte) error {
	if len(src) == 0 {
		*m = ChatMessageMeta{}
		return nil
	}
	return json.Unmarshal(src, m)
}

// QA turn pair used to replay history into the prompt. A pair with an empty
// Answer represents a trailing unanswered question and is skipped by the
// prompt assembler rather than misaligned.
type QAPair struct {
	Question string
	Answer   string
}
