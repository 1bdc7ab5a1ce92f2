// Package criteria holds the five fixed ENEM competencies an essay is graded on.
package criteria

import "fmt"

const (
	// Count is the number of competencies every grading result carries.
	Count = 5

	MinScore = 0
	MaxScore = 200

	MinTotalScore = 0
	MaxTotalScore = Count * MaxScore
)

// Definition describes one competency and its score range.
type Definition struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MinScore    int    `json:"min_score"`
	MaxScore    int    `json:"max_score"`
}

var definitions = [Count]Definition{
	{
		ID:          1,
		Title:       "Competência 1",
		Description: "Domínio da modalidade escrita formal da língua portuguesa.",
	},
	{
		ID:          2,
		Title:       "Competência 2",
		Description: "Compreender a proposta de redação e aplicar conceitos das várias áreas de conhecimento para desenvolver o tema.",
	},
	{
		ID:          3,
		Title:       "Competência 3",
		Description: "Selecionar, relacionar, organizar e interpretar informações, fatos, opiniões e argumentos em defesa de um ponto de vista.",
	},
	{
		ID:          4,
		Title:       "Competência 4",
		Description: "Demonstrar conhecimento dos mecanismos linguísticos necessários para a construção da argumentação.",
	},
	{
		ID:          5,
		Title:       "Competência 5",
		Description: "Elaborar proposta de intervenção para o problema abordado, respeitando os direitos humanos.",
	},
}

func init() {
	for i := range definitions {
		definitions[i].MinScore = MinScore
		definitions[i].MaxScore = MaxScore
	}
}

// All returns a copy of the definitions ordered by ID.
func All() [Count]Definition {
	return definitions
}

// ByID returns the definition for id, or false when id is outside 1..Count.
func ByID(id int) (Definition, bool) {
	if !ValidID(id) {
		return Definition{}, false
	}
	return definitions[id-1], true
}

// ValidID reports whether id names one of the competencies.
func ValidID(id int) bool {
	return id >= 1 && id <= Count
}

// FallbackTitle is the label used when a competency heading is missing from a reply.
func FallbackTitle(id int) string {
	return fmt.Sprintf("Competência %d", id)
}

// InRange reports whether score is a valid per-competency score.
func InRange(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// InTotalRange reports whether score is a valid overall essay score.
func InTotalRange(score int) bool {
	return score >= MinTotalScore && score <= MaxTotalScore
}
