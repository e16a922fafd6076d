package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"

	"github.com/sirupsen/logrus"
)

// Prompt log modes.
const (
	PromptLogOff     = "off"
	PromptLogPreview = "preview"
	PromptLogFull    = "full"
)

var (
	reEmail  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reBearer = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]+`)
	reAPIKey = regexp.MustCompile(`(?i)(api[-_\s]?key)\s*[:=]\s*[A-Za-z0-9._-]+`)
)

// LogPrompt records an audit line for a prompt before it is sent to the
// generative collaborator: a stable fingerprint plus, depending on mode,
// nothing, a bounded redacted preview, or the full redacted prompt.
func LogPrompt(entry *logrus.Entry, prompt, mode string, previewLen int) {
	if mode == PromptLogOff {
		return
	}
	if previewLen <= 0 {
		previewLen = 240
	}

	fields := logrus.Fields{
		"prompt_sha":   Fingerprint(prompt),
		"prompt_bytes": len(prompt),
	}

	switch mode {
	case PromptLogFull:
		fields["prompt"] = Redact(prompt)
	default: // preview
		preview := prompt
		if len(preview) > previewLen {
			preview = preview[:previewLen]
		}
		fields["prompt_preview"] = Redact(preview)
	}

	entry.WithFields(fields).Debug("llm.prompt")
}

// Fingerprint returns a short stable hash of the text.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:12]
}

// Redact masks obvious secrets and contact details in logged text.
func Redact(text string) string {
	text = reEmail.ReplaceAllString(text, "<redacted:email>")
	text = reBearer.ReplaceAllString(text, "<redacted:token>")
	text = reAPIKey.ReplaceAllString(text, "$1=<redacted:token>")
	return text
}
