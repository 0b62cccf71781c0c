package domain

import (
	"encoding/json"
	"time"
)

type JournalAction string

const (
	JournalCreate JournalAction = "create"
	JournalUpdate JournalAction = "update"
	JournalDelete JournalAction = "delete"
	JournalSave   JournalAction = "save"
)

// JournalEntry records one write issued against the repository.
type JournalEntry struct {
	ID        int64           `json:"id"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Action    JournalAction   `json:"action"`
	Brand     string          `json:"brand"`
	RequestID string          `json:"request_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedOn time.Time       `json:"created_on"`
}
