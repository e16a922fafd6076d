// Package prompt builds the structured prompts sent to the generative
// collaborator. Prompts are instruction contracts: the pipeline does not
// validate that responses honor them.
package prompt

import "fmt"

const claimExtractTemplate = `Extract concise factual claims (1 sentence each) from the content below.
Only include verifiable, concrete assertions (who/what/when/where). Skip opinions.

Return as bullet points.

Content:
%s
`

// BuildClaimExtraction builds the claim-extraction prompt for the LLM
// extraction path.
func BuildClaimExtraction(content string) string {
	return fmt.Sprintf(claimExtractTemplate, content)
}
