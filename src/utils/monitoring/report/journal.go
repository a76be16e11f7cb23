package report

import (
	"go.uber.org/atomic"
)

type JournalErrors struct {
	DbInsert  atomic.Uint64 `json:"db_insert"`
	Dropped   atomic.Uint64 `json:"dropped"`
	Permanent atomic.Uint64 `json:"permanent"`
}

type JournalState struct {
	EventsSaved        atomic.Uint64 `json:"events_saved"`
	TokensSaved        atomic.Uint64 `json:"tokens_saved"`
	LastSavedSequence  atomic.Uint64 `json:"last_saved_sequence"`
	LastInsertDuration atomic.Int64  `json:"last_insert_duration_ms"`
}

type JournalReport struct {
	State  JournalState  `json:"state"`
	Errors JournalErrors `json:"errors"`
}
