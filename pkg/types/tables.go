package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "documind_"

const (
	TABLE_DOCUMENT     = TableName("document")
	TABLE_VECTORS      = TableName("vectors")
	TABLE_CHAT_SESSION = TableName("chat_session")
	TABLE_CHAT_MESSAGE = TableName("chat_message")
	TABLE_TIMESTAMPS   = TableName("timestamps")
)
