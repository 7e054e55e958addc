package risk

import "math"

const (
	positiveDampening   = 0.3
	keywordPenaltyStep  = 0.1
	maxKeywordPenalty   = 0.5
	categoryPenaltyStep = 0.15
)

// CalculateRiskScore combines sentiment and keyword evidence into a risk
// score in [0, 1]. The base is the sentiment magnitude; negative
// sentiment carries full weight while neutral or positive sentiment is
// dampened to 30%. Each matched keyword adds 0.1 up to a cap of 0.5,
// each triggered category adds 0.15, and the total is capped at 1.0.
func CalculateRiskScore(sentimentScore float64, matchedKeywords, categories []string) float64 {
	base := math.Abs(sentimentScore)
	rawRisk := base
	if sentimentScore >= 0 {
		rawRisk = base * positiveDampening
	}

	keywordPenalty := math.Min(maxKeywordPenalty, float64(len(matchedKeywords))*keywordPenaltyStep)
	categoryPenalty := float64(len(categories)) * categoryPenaltyStep

	return math.Min(1.0, rawRisk+keywordPenalty+categoryPenalty)
}
