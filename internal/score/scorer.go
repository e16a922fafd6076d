package score

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

// Signal names, in evaluation order. The order is part of the contract:
// report consumers and tests rely on it being stable.
const (
	SignalSensational   = "sensational_language"
	SignalMissingSource = "missing_source"
	SignalTimeAmbiguity = "time_ambiguity"
)

// Fixed confidence levels for the binary-ish signals. Claiming authority
// without citation and dateless urgency are discrete patterns, not graded
// ones, so they fire at a fixed score or not at all.
const (
	missingSourceScore = 0.6
	timeAmbiguityScore = 0.5
)

// sensationalPatterns are matched against the lower-cased text. Three or
// more hits saturate the signal at 1.0.
var sensationalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`shocking`),
	regexp.MustCompile(`you won't believe`),
	regexp.MustCompile(`exposed`),
	regexp.MustCompile(`the truth (they|they're) hiding`),
	regexp.MustCompile(`secret plan`),
	regexp.MustCompile(`breaking`),
	regexp.MustCompile(`urgent`),
	regexp.MustCompile(`!!!`),
}

var (
	studyWords = regexp.MustCompile(`\b(study|report|research)\b`)
	linkRe     = regexp.MustCompile(`https?://`)
	vagueTime  = regexp.MustCompile(`\b(today|now|currently|breaking)\b`)
	yearRe     = regexp.MustCompile(`\b\d{4}\b`)
)

// Scorer computes independent heuristic risk signals from surface text
// patterns. It is pure, total and deterministic: identical input always
// yields identical output, and no input can make it fail.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score evaluates all signals against the text and returns them in fixed
// order: sensational_language, missing_source, time_ambiguity.
func (s *Scorer) Score(text string) []model.Signal {
	lower := strings.ToLower(text)

	return []model.Signal{
		newSignal(SignalSensational, sensationalScore(lower)),
		newSignal(SignalMissingSource, missingSource(lower, text)),
		newSignal(SignalTimeAmbiguity, timeAmbiguity(lower, text)),
	}
}

func newSignal(name string, score float64) model.Signal {
	score = clamp01(score)
	return model.Signal{
		Name:    name,
		Score:   score,
		Details: fmt.Sprintf("%s=%.2f", name, score),
	}
}

// sensationalScore counts sensational phrase hits; saturates at three.
func sensationalScore(lower string) float64 {
	hits := 0
	for _, p := range sensationalPatterns {
		if p.MatchString(lower) {
			hits++
		}
	}
	return math.Min(1.0, float64(hits)/3.0)
}

// missingSource fires when the text claims study/report/research authority
// without citing any URL.
func missingSource(lower, text string) float64 {
	if studyWords.MatchString(lower) && !linkRe.MatchString(text) {
		return missingSourceScore
	}
	return 0.0
}

// timeAmbiguity fires when the text uses vague temporal language without a
// 4-digit year anywhere.
func timeAmbiguity(lower, text string) float64 {
	if vagueTime.MatchString(lower) && !yearRe.MatchString(text) {
		return timeAmbiguityScore
	}
	return 0.0
}

func clamp01(x float64) float64 {
	return math.Max(0.0, math.Min(1.0, x))
}
