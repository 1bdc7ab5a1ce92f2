package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one graded submission inside a session's history.
type HistoryEntry struct {
	ID            uuid.UUID     `json:"id"`
	Theme         string        `json:"theme"`
	Result        GradingResult `json:"result"`
	SequenceIndex int           `json:"sequence_index"`
	GradedAt      time.Time     `json:"graded_at"`
}

// TotalScore is a shortcut for e.Result.TotalScore.
func (e HistoryEntry) TotalScore() *int {
	return e.Result.TotalScore
}

// Clone returns a copy of e whose result shares no memory with e.
func (e HistoryEntry) Clone() HistoryEntry {
	e.Result = e.Result.Clone()
	return e
}
