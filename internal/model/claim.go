package model

// Claim represents a single factual assertion extracted from input text.
// Claims are created fresh for each assessment and owned by the report
// that contains them.
type Claim struct {
	Text string `json:"text"` // The claim text itself, trimmed
}
