package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

func sampleReport() *model.WatchReport {
	return &model.WatchReport{
		OverallRisk: 0.87,
		Label:       model.LabelLikelyMisinfo,
		Claims:      []model.Claim{{Text: "A new AI will fire all nurses by next week."}},
		Signals: []model.Signal{
			{Name: "sensational_language", Score: 0.67, Details: "sensational_language=0.67"},
			{Name: "missing_source", Score: 0.6, Details: "missing_source=0.60"},
		},
		RelatedIncidents: []model.Evidence{
			{Snippet: "Hospital chatbot gave unsafe advice", Source: "aiid"},
		},
		LLMSummary: "High risk.\nVerify with local sources.",
	}
}

func TestJSONRoundTrips(t *testing.T) {
	out, err := JSON(sampleReport())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var report model.WatchReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("parse rendered JSON: %v", err)
	}
	if report.Label != model.LabelLikelyMisinfo {
		t.Errorf("label = %q", report.Label)
	}
	if !strings.Contains(out, `"overall_risk"`) {
		t.Error("rendered JSON missing overall_risk field")
	}
}

func TestText(t *testing.T) {
	out := Text(sampleReport())

	for _, want := range []string{
		"Risk: 0.87 (Likely Misinfo)",
		"A new AI will fire all nurses by next week.",
		"sensational_language",
		"Hospital chatbot gave unsafe advice [aiid]",
		"High risk.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextEmptySections(t *testing.T) {
	out := Text(&model.WatchReport{Label: model.LabelLow})

	if strings.Count(out, "(none)") != 2 {
		t.Errorf("expected (none) for claims and incidents:\n%s", out)
	}
	if strings.Contains(out, "Summary:") {
		t.Error("empty summary should not render a Summary section")
	}
}
