package llm

import "strings"

// ContentPart is one fragment of a structured provider response. Providers
// that return content-part lists (Anthropic message blocks, multi-part
// chat deltas) normalize through this shape.
type ContentPart struct {
	Type string
	Text string
}

// FlattenParts coerces a content-part list to a single flat string by
// concatenating the text-bearing parts. This is the one conversion rule
// for structured response shapes; providers never flatten ad hoc at call
// sites.
func FlattenParts(parts []ContentPart) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Type != "" && p.Type != "text" {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
