package parser

import (
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/essay-grader/internal/criteria"
	"alfredoptarigan/essay-grader/internal/models"
)

// AnalysisNotFound replaces the analysis of a competency whose score line is missing.
const AnalysisNotFound = "Análise não encontrada."

var (
	totalScorePattern = regexp.MustCompile(`(?i)nota[ \t]+da[ \t]+reda[cç][aã]o[ \t*_]*:[^\d\n]*?(-?\d+(?:[.,]\d+)*)`)
	headingPattern    = regexp.MustCompile(`(?im)^[ \t#*>_\-]*compet[eê]ncia[ \t]*(\d+)`)
	headingLine       = regexp.MustCompile(`(?im)^[ \t#*>_\-]*(compet[eê]ncia[ \t]*\d+.*)$`)
	scoreLinePattern  = regexp.MustCompile(`(?im)^.*\bnota[ \t]+(?:nessa|nesta|desta|da)[ \t]+compet[eê]ncia(?:[ \t]+foi)?[ \t*_]*:(.*)$`)
	numberPattern     = regexp.MustCompile(`-?\d+(?:[.,]\d+)*`)
	thousandsPattern  = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+$`)

	markdownTrimmer = strings.NewReplacer("**", "", "__", "", "`", "")
)

// Extraction is the outcome of one rule: either a value or the reason it is missing.
type Extraction[T any] struct {
	Value T
	Miss  models.MissReason
}

func (e Extraction[T]) Found() bool {
	return e.Miss == models.MissNone
}

func found[T any](v T) Extraction[T] {
	return Extraction[T]{Value: v}
}

func missed[T any](reason models.MissReason) Extraction[T] {
	return Extraction[T]{Miss: reason}
}

// TotalScoreRule finds the first "Nota da Redação:" label followed by an
// integer on the same line.
func TotalScoreRule(text string) Extraction[int] {
	m := totalScorePattern.FindStringSubmatch(text)
	if m == nil {
		return missed[int](models.MissAbsent)
	}
	return parseScore(m[1], criteria.InTotalRange)
}

// TitleRule returns the first heading line of a block without markdown decoration.
func TitleRule(block string) Extraction[string] {
	m := headingLine.FindStringSubmatch(block)
	if m == nil {
		return missed[string](models.MissAbsent)
	}
	title := strings.Trim(markdownTrimmer.Replace(m[1]), " \t*_#:")
	if title == "" {
		return missed[string](models.MissEmpty)
	}
	return found(title)
}

// ScoreRule reads the integer announced on the competency score line.
func ScoreRule(block string) Extraction[int] {
	m := scoreLinePattern.FindStringSubmatch(block)
	if m == nil {
		return missed[int](models.MissAbsent)
	}
	number := numberPattern.FindString(m[1])
	if number == "" {
		return missed[int](models.MissAbsent)
	}
	return parseScore(number, criteria.InRange)
}

// AnalysisRule returns everything after the score line up to the end of the block.
func AnalysisRule(block string) Extraction[string] {
	loc := scoreLinePattern.FindStringIndex(block)
	if loc == nil {
		return missed[string](models.MissAbsent)
	}
	analysis := strings.TrimSpace(block[loc[1]:])
	if analysis == "" {
		return missed[string](models.MissEmpty)
	}
	return found(analysis)
}

// parseScore reads a signed integer. "1.000" is read as a thousands group;
// any other decimal form is unparsable rather than truncated.
func parseScore(number string, inRange func(int) bool) Extraction[int] {
	if strings.ContainsAny(number, ".,") {
		if !thousandsPattern.MatchString(number) {
			return missed[int](models.MissUnparsable)
		}
		number = strings.ReplaceAll(number, ".", "")
	}
	v, err := strconv.Atoi(number)
	if err != nil {
		return missed[int](models.MissUnparsable)
	}
	if !inRange(v) {
		return missed[int](models.MissOutOfRange)
	}
	return found(v)
}

// normalize folds line endings and non-breaking spaces so every rule sees the same text.
func normalize(raw string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u00a0", " ").Replace(raw)
}
