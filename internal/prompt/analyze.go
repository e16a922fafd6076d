package prompt

import (
	"fmt"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

const analyzeTemplate = `Analyze the following AI use case for ethical risks.
Return JSON-like sections:

- Risks: bullet list with short labels + 1-line rationale
- RelatedIncidents: 2-4 items; each include what happened and the risk theme
- Mitigations: prioritized, concrete steps (policy, data, modeling, evaluation, oversight)

UseCase:
%s

RelevantIncidents:
%s
`

// BuildUseCaseAnalysis builds the ethical-risk analysis prompt for an AI
// use-case description.
func BuildUseCaseAnalysis(useCase string, incidents []model.Evidence) string {
	lines := make([]string, 0, len(incidents))
	for _, e := range incidents {
		lines = append(lines, "- "+e.Snippet)
	}
	return fmt.Sprintf(analyzeTemplate, useCase, joinOrNone(lines))
}
