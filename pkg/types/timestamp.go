package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TimestampEntry is one topic marker on a media document's timeline,
// produced by the extraction pipeline and read-only afterwards.
type TimestampEntry struct {
	ID          string   `json:"id"`
	Time        int      `json:"time"` // seconds from the start of the media
	Topic       string   `json:"topic"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Confidence  float64  `json:"confidence,omitempty"`
}

type TimestampEntries []TimestampEntry

func (e TimestampEntries) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *TimestampEntries) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return e.scanBytes(src)
	case string:
		return e.scanBytes([]byte(src))
	case nil:
		*e = nil
		return nil
	}
	return fmt.Errorf("pq: cannot convert %T to TimestampEntries", src)
}

func (e *TimestampEntries) scanBytes(src []byte) error {
	if len(src) == 0 {
		*e = nil
		return nil
	}
	return json.Unmarshal(src, e)
}

type Timestamp struct {
	ID          string           `json:"id" db:"id"`
	DocumentID  string           `json:"document_id" db:"document_id"`
	Entries     TimestampEntries `json:"entries" db:"entries"`
	TotalTopics int              `json:"total_topics" db:"total_topics"`
	ModelUsed   string           `json:"model_used" db:"model_used"`
	CreatedAt   int64            `json:"created_at" db:"created_at"`
	UpdatedAt   int64            `json:"updated_at" db:"updated_at"`
}
