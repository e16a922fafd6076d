package model

// Label is the discrete risk category derived from the overall risk score.
type Label string

const (
	LabelLow               Label = "Low"
	LabelNeedsVerification Label = "Needs Verification"
	LabelLikelyMisinfo     Label = "Likely Misinfo"
)

// WatchReport is the complete result of one watchdog assessment. It is
// created once per pipeline run, immutable thereafter, and handed by value
// to every consumer (API, CLI, batch output).
//
// Label is always the deterministic projection of OverallRisk; the two
// never disagree.
type WatchReport struct {
	OverallRisk      float64    `json:"overall_risk"` // Fused risk score in [0,1]
	Label            Label      `json:"label"`
	Claims           []Claim    `json:"claims"`
	Signals          []Signal   `json:"signals"`
	RelatedIncidents []Evidence `json:"related_incidents"`

	// LLMSummary holds the generated explanation. Empty when the summary was
	// streamed directly to a sink instead of captured.
	LLMSummary string `json:"llm_summary"`
}
