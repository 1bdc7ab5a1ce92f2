package models

type EssayRequest struct {
	Theme string `json:"theme"`
	Text  string `json:"text"`
}

type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	Count     int            `json:"count"`
	Entries   []HistoryEntry `json:"entries"`
}

type RankingResponse struct {
	SessionID string         `json:"session_id"`
	N         int            `json:"n"`
	Entries   []HistoryEntry `json:"entries"`
}

// SubmissionResponse carries either a live session entry or an archived record.
type SubmissionResponse struct {
	Source     string        `json:"source"`
	Entry      *HistoryEntry `json:"entry,omitempty"`
	Submission *Submission   `json:"submission,omitempty"`
}

const (
	SourceSession = "session"
	SourceArchive = "archive"
)
