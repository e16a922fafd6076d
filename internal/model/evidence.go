package model

// Evidence represents one retrieved historical incident similar to the
// assessed text. The retriever only reads stored incidents, never mutates
// them.
type Evidence struct {
	Snippet string `json:"snippet"`          // Stored incident text
	Source  string `json:"source,omitempty"` // Provenance/citation, if recorded
	Note    string `json:"note,omitempty"`   // Reserved for future annotation
}

// Signal represents one named heuristic risk measurement. Scores are always
// clamped to [0,1]; the slice order of signals in a report is the evaluation
// order and is stable across runs.
type Signal struct {
	Name    string  `json:"name"`    // Stable identifier (e.g. "sensational_language")
	Score   float64 `json:"score"`   // Risk score in [0,1]
	Details string  `json:"details"` // Human-readable rationale
}
