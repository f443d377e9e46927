package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryID uniquely identifies a history entry.
type HistoryID string

// NewHistoryID generates a new unique HistoryID.
func NewHistoryID() HistoryID {
	return HistoryID(uuid.New().String())
}

// Outcome records how a presented pair ended.
type Outcome string

const (
	// OutcomeSparked means the pair produced a reflection note.
	OutcomeSparked Outcome = "sparked"
	// OutcomeSkipped means the pair was dismissed without a note.
	OutcomeSkipped Outcome = "skipped"
)

// HistoryEntry is one recorded pair outcome. The log it lives in is
// append-only and capped to the most recent 200 entries.
type HistoryEntry struct {
	ID      HistoryID `json:"id"`
	NoteA   string    `json:"note_a"`
	NoteB   string    `json:"note_b"`
	Outcome Outcome   `json:"outcome"`

	// SparkPath is the vault-relative path of the reflection note,
	// set only when Outcome is OutcomeSparked.
	SparkPath *string `json:"spark_path,omitempty"`

	CreatedAt time.Time `json:"created"`
}
