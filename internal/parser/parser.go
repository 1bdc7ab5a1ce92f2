// Package parser turns the free-text reply of the grading model into a
// models.GradingResult.
//
// The reply is expected, but never guaranteed, to follow the template the
// prompt asks for:
//
//	Nota da Redação: 880
//
//	Competência 1
//	Domínio da modalidade escrita formal da língua portuguesa.
//	**Sua nota nessa competência foi: 180**
//	<analysis>
//	...
//
// Every structural element is optional. Missing or invalid fields degrade to
// nil scores and placeholder text, each recorded as a models.Diagnostic, and
// the result always carries exactly one entry per competency.
package parser

import (
	"fmt"

	"alfredoptarigan/essay-grader/internal/criteria"
	"alfredoptarigan/essay-grader/internal/models"
)

// Parse extracts the total score and the per-competency breakdown from raw.
// It never panics and never fails.
func Parse(raw string) (result models.GradingResult) {
	defer func() {
		if r := recover(); r != nil {
			result = placeholderResult(raw, fmt.Sprint(r))
		}
	}()

	text := normalize(raw)
	result.RawText = raw

	total := TotalScoreRule(text)
	if total.Found() {
		result.TotalScore = intPtr(total.Value)
	} else {
		result.Diagnostics = append(result.Diagnostics, scoreDiagnostic(models.FieldTotalScore, 0, total.Miss))
	}

	pre, blocks := split(text)
	result.Preamble = pre

	var assigned [criteria.Count]*block
	for i := range blocks {
		b := &blocks[i]
		switch {
		case !criteria.ValidID(b.number):
			result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
				Kind:   models.KindMalformedSegmentation,
				Field:  models.FieldSegmentation,
				Reason: models.MissOutOfRange,
			})
		case assigned[b.number-1] != nil:
			result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
				Kind:        models.KindMalformedSegmentation,
				Field:       models.FieldSegmentation,
				CriterionID: b.number,
				Reason:      models.MissDuplicate,
			})
		default:
			assigned[b.number-1] = b
		}
	}

	for i := range result.Criteria {
		id := i + 1
		if assigned[i] == nil {
			result.Criteria[i] = placeholder(id)
			result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
				Kind:        models.KindMalformedSegmentation,
				Field:       models.FieldSegmentation,
				CriterionID: id,
				Reason:      models.MissAbsent,
			})
			continue
		}
		var diags []models.Diagnostic
		result.Criteria[i], diags = parseBlock(id, assigned[i].text)
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	return result
}

// ExtractTotalScore returns only the headline score, applying the same rule
// Parse uses.
func ExtractTotalScore(raw string) *int {
	total := TotalScoreRule(normalize(raw))
	if !total.Found() {
		return nil
	}
	return intPtr(total.Value)
}

func parseBlock(id int, text string) (models.CriterionResult, []models.Diagnostic) {
	var diags []models.Diagnostic
	res := models.CriterionResult{CriterionID: id}

	if title := TitleRule(text); title.Found() {
		res.Title = title.Value
	} else {
		res.Title = criteria.FallbackTitle(id)
		diags = append(diags, models.Diagnostic{
			Kind: models.KindExtractionMiss, Field: models.FieldTitle, CriterionID: id, Reason: title.Miss,
		})
	}

	if score := ScoreRule(text); score.Found() {
		res.Score = intPtr(score.Value)
	} else {
		diags = append(diags, scoreDiagnostic(models.FieldScore, id, score.Miss))
	}

	analysis := AnalysisRule(text)
	switch analysis.Miss {
	case models.MissNone:
		res.Analysis = analysis.Value
	case models.MissAbsent:
		res.Analysis = AnalysisNotFound
	}
	if !analysis.Found() {
		diags = append(diags, models.Diagnostic{
			Kind: models.KindExtractionMiss, Field: models.FieldAnalysis, CriterionID: id, Reason: analysis.Miss,
		})
	}

	return res, diags
}

func scoreDiagnostic(field string, id int, reason models.MissReason) models.Diagnostic {
	kind := models.KindExtractionMiss
	if reason == models.MissOutOfRange {
		kind = models.KindOutOfRangeScore
	}
	return models.Diagnostic{Kind: kind, Field: field, CriterionID: id, Reason: reason}
}

func placeholder(id int) models.CriterionResult {
	return models.CriterionResult{
		CriterionID: id,
		Title:       criteria.FallbackTitle(id),
		Analysis:    AnalysisNotFound,
	}
}

func placeholderResult(raw, cause string) models.GradingResult {
	res := models.GradingResult{RawText: raw}
	for i := range res.Criteria {
		res.Criteria[i] = placeholder(i + 1)
	}
	res.Diagnostics = []models.Diagnostic{{
		Kind:   models.KindMalformedSegmentation,
		Field:  models.FieldSegmentation,
		Reason: models.MissReason("panic: " + cause),
	}}
	return res
}

func intPtr(v int) *int {
	return &v
}
