package prompt

import (
	"fmt"
	"strings"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

const watchdogTemplate = `You are a misinformation watchdog assistant. The user gave this content:

%s

Claims (rough):
%s

Heuristic signals (0..1):
%s

Similar past incidents:
%s

Task:
- Briefly explain the top 2-3 risks and why they apply.
- Suggest 3 concrete verification steps a non-technical person can do offline (dates, reverse image steps, local corroboration, sourcing).
- Keep it under 180 words, bullet points preferred.
`

// BuildWatchdogSummary builds the summary prompt from all prior stage
// outputs. Empty sections render as the literal "None".
func BuildWatchdogSummary(content string, claims []model.Claim, signals []model.Signal, incidents []model.Evidence) string {
	claimLines := make([]string, 0, len(claims))
	for _, c := range claims {
		claimLines = append(claimLines, "- "+c.Text)
	}

	signalLines := make([]string, 0, len(signals))
	for _, s := range signals {
		signalLines = append(signalLines, fmt.Sprintf("- %s: %.2f", s.Name, s.Score))
	}

	incidentLines := make([]string, 0, len(incidents))
	for _, e := range incidents {
		incidentLines = append(incidentLines, "- "+e.Snippet)
	}

	return fmt.Sprintf(watchdogTemplate,
		content,
		joinOrNone(claimLines),
		joinOrNone(signalLines),
		joinOrNone(incidentLines),
	)
}

func joinOrNone(lines []string) string {
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}
