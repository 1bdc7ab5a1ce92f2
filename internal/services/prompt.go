package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/essay-grader/internal/criteria"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEssayGradingPrompt asks for the fixed reply layout the parser understands.
func (pb *PromptBuilder) BuildEssayGradingPrompt(theme, referenceContext string) string {
	var criteriaList, template strings.Builder
	for _, def := range criteria.All() {
		fmt.Fprintf(&criteriaList, "- **%s**: %s\n", def.Title, def.Description)
		fmt.Fprintf(&template, "%s\n%s\n**Sua nota nessa competência foi: [nota de %d a %d]**\n[Análise técnica detalhada e objetiva da competência %d, justificando a nota com exemplos do texto, se necessário.]\n\n",
			def.Title, def.Description, def.MinScore, def.MaxScore, def.ID)
	}

	reference := ""
	if strings.TrimSpace(referenceContext) != "" {
		reference = fmt.Sprintf("\n**Material de referência:**\n%s\n", referenceContext)
	}

	return fmt.Sprintf(`Você é um Agente de IA especialista em correção de redações do ENEM. Sua única função é avaliar uma redação com base nas %d competências oficiais. Seja rigoroso, técnico e siga o formato de saída à risca.

**Tema da redação:** "%s"

**Critérios de Avaliação (ENEM):**
%s%s
**Pontuação:**
A pontuação total da redação do ENEM é de %d a %d pontos.
Forneça uma pontuação para cada competência (%d a %d) e uma pontuação total.

**Formato de Saída Obrigatório:**
Siga estritamente este formato. Não inclua saudações, despedidas, dicas, sugestões ou qualquer texto fora da estrutura definida abaixo.

Nota da Redação: [Pontuação total de %d a %d]

%s`,
		criteria.Count, theme,
		criteriaList.String(), reference,
		criteria.MinTotalScore, criteria.MaxTotalScore,
		criteria.MinScore, criteria.MaxScore,
		criteria.MinTotalScore, criteria.MaxTotalScore,
		strings.TrimRight(template.String(), "\n"))
}

// BuildRetrievalQuery creates the query used to look up reference material for a theme.
func (pb *PromptBuilder) BuildRetrievalQuery(theme string) string {
	return fmt.Sprintf("Critérios de correção das competências do ENEM e redações nota 1000 sobre o tema: %s", theme)
}

// FormatRAGContext renders retrieved reference chunks for the prompt.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Referência %d (%s, relevância: %.2f) ---\n%s",
			i+1, result.Source, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
