// Package render formats assessment reports for terminals and files.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

// JSON renders the report as indented JSON.
func JSON(report *model.WatchReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

// Text renders the report as a human-readable block for the terminal.
func Text(report *model.WatchReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Risk: %.2f (%s)\n", report.OverallRisk, report.Label)

	b.WriteString("\nClaims:\n")
	if len(report.Claims) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range report.Claims {
		fmt.Fprintf(&b, "  - %s\n", c.Text)
	}

	b.WriteString("\nSignals:\n")
	for _, s := range report.Signals {
		fmt.Fprintf(&b, "  - %-22s %.2f\n", s.Name, s.Score)
	}

	b.WriteString("\nRelated incidents:\n")
	if len(report.RelatedIncidents) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range report.RelatedIncidents {
		line := e.Snippet
		if e.Source != "" {
			line += " [" + e.Source + "]"
		}
		fmt.Fprintf(&b, "  - %s\n", line)
	}

	if report.LLMSummary != "" {
		b.WriteString("\nSummary:\n")
		b.WriteString(indent(report.LLMSummary, "  "))
		b.WriteString("\n")
	}

	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
