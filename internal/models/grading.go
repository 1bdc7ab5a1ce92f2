package models

import "alfredoptarigan/essay-grader/internal/criteria"

type DiagnosticKind string

const (
	KindExtractionMiss        DiagnosticKind = "extraction_miss"
	KindMalformedSegmentation DiagnosticKind = "malformed_segmentation"
	KindOutOfRangeScore       DiagnosticKind = "out_of_range_score"
)

// MissReason names why a field could not be extracted.
type MissReason string

const (
	MissNone       MissReason = ""
	MissAbsent     MissReason = "absent"
	MissOutOfRange MissReason = "out_of_range"
	MissUnparsable MissReason = "unparsable"
	MissEmpty      MissReason = "empty"
	MissDuplicate  MissReason = "duplicate"
)

// Field names used in diagnostics.
const (
	FieldTotalScore   = "total_score"
	FieldTitle        = "title"
	FieldScore        = "score"
	FieldAnalysis     = "analysis"
	FieldSegmentation = "segmentation"
)

// Diagnostic flags a field that degraded while parsing a model reply.
// CriterionID is 0 for fields that are not tied to a competency.
type Diagnostic struct {
	Kind        DiagnosticKind `json:"kind"`
	Field       string         `json:"field"`
	CriterionID int            `json:"criterion_id,omitempty"`
	Reason      MissReason     `json:"reason"`
}

type CriterionResult struct {
	CriterionID int    `json:"criterion_id"`
	Title       string `json:"title"`
	Score       *int   `json:"score"`
	Analysis    string `json:"analysis"`
}

// GradingResult is the structured form of one model reply. Criteria always
// holds one entry per competency, ordered by CriterionID.
type GradingResult struct {
	TotalScore  *int                            `json:"total_score"`
	Criteria    [criteria.Count]CriterionResult `json:"criteria"`
	Preamble    string                          `json:"preamble,omitempty"`
	RawText     string                          `json:"raw_text"`
	Diagnostics []Diagnostic                    `json:"diagnostics,omitempty"`
}

// Degraded reports whether any field fell back to a placeholder.
func (r GradingResult) Degraded() bool {
	return len(r.Diagnostics) > 0
}

// Scored reports whether the headline score was extracted.
func (r GradingResult) Scored() bool {
	return r.TotalScore != nil
}

// CriterionScores returns the per-competency scores in order, nil where missing.
func (r GradingResult) CriterionScores() [criteria.Count]*int {
	var scores [criteria.Count]*int
	for i, c := range r.Criteria {
		scores[i] = c.Score
	}
	return scores
}

// Clone returns a copy of r that shares no pointers or slices with it.
func (r GradingResult) Clone() GradingResult {
	out := r
	out.TotalScore = cloneInt(r.TotalScore)
	for i := range out.Criteria {
		out.Criteria[i].Score = cloneInt(r.Criteria[i].Score)
	}
	if r.Diagnostics != nil {
		out.Diagnostics = append([]Diagnostic(nil), r.Diagnostics...)
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
