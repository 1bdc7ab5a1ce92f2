package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the archived copy of a graded essay.
type Submission struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID        string    `gorm:"type:text;index" json:"session_id"`
	SequenceIndex    int       `gorm:"not null" json:"sequence_index"`
	Theme            string    `gorm:"type:text" json:"theme"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename,omitempty"`
	FileType         string    `gorm:"type:text" json:"file_type,omitempty"`
	TotalScore       *int      `json:"total_score,omitempty"`
	Criterion1Score  *int      `json:"criterion_1_score,omitempty"`
	Criterion2Score  *int      `json:"criterion_2_score,omitempty"`
	Criterion3Score  *int      `json:"criterion_3_score,omitempty"`
	Criterion4Score  *int      `json:"criterion_4_score,omitempty"`
	Criterion5Score  *int      `json:"criterion_5_score,omitempty"`
	Degraded         bool      `gorm:"not null;default:false" json:"degraded"`
	RawText          string    `gorm:"type:text" json:"raw_text"`
	GradedAt         time.Time `json:"graded_at"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SourceFile describes the uploaded file an essay came from, if any.
type SourceFile struct {
	OriginalName string
	FileType     string
}

// NewSubmission flattens a history entry into its archived form.
func NewSubmission(sessionID string, entry HistoryEntry, src SourceFile) *Submission {
	scores := entry.Result.CriterionScores()
	return &Submission{
		ID:               entry.ID,
		SessionID:        sessionID,
		SequenceIndex:    entry.SequenceIndex,
		Theme:            entry.Theme,
		OriginalFileName: src.OriginalName,
		FileType:         src.FileType,
		TotalScore:       entry.Result.TotalScore,
		Criterion1Score:  scores[0],
		Criterion2Score:  scores[1],
		Criterion3Score:  scores[2],
		Criterion4Score:  scores[3],
		Criterion5Score:  scores[4],
		Degraded:         entry.Result.Degraded(),
		RawText:          entry.Result.RawText,
		GradedAt:         entry.GradedAt,
	}
}
