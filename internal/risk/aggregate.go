// Package risk fuses heuristic signals and retrieval volume into a single
// bounded risk score and a discrete label.
package risk

import (
	"math"

	"github.com/ethicswatch/ethicswatch/internal/model"
)

const (
	// Each related incident adds incidentBoost to the risk score, up to
	// maxBoost. Retrieval hits amplify the heuristic signal but never
	// dominate it.
	incidentBoost = 0.1
	maxBoost      = 0.3

	likelyThreshold = 0.7
	verifyThreshold = 0.4
)

// Aggregate fuses signal scores and incident volume into one overall risk
// score in [0,1] and its label. Pure and total: empty inputs yield
// (0, Low).
func Aggregate(signals []model.Signal, incidents []model.Evidence) (float64, model.Label) {
	base := 0.0
	for _, s := range signals {
		if s.Score > base {
			base = s.Score
		}
	}

	boost := math.Min(maxBoost, incidentBoost*float64(len(incidents)))
	overall := math.Max(0.0, math.Min(1.0, base+boost))

	return overall, ScoreToLabel(overall)
}

// ScoreToLabel maps an overall risk score to its discrete label.
// Thresholds are closed on the lower bound: 0.7 exactly is Likely Misinfo,
// 0.4 exactly is Needs Verification.
func ScoreToLabel(x float64) model.Label {
	switch {
	case x >= likelyThreshold:
		return model.LabelLikelyMisinfo
	case x >= verifyThreshold:
		return model.LabelNeedsVerification
	default:
		return model.LabelLow
	}
}
