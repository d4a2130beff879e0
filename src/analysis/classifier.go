package analysis

import "token-scanner/src/models"

// Score floors for each tier, inclusive.
const (
	HighRiskScore   = 5000
	MediumRiskScore = 2000
	LowRiskScore    = 500
)

// Classify maps a profile to its risk tier. A rugged token is always high.
func Classify(profile models.TokenProfile) models.RiskTier {
	switch {
	case profile.Rugged:
		return models.TierHigh
	case profile.RiskScore >= HighRiskScore:
		return models.TierHigh
	case profile.RiskScore >= MediumRiskScore:
		return models.TierMedium
	case profile.RiskScore >= LowRiskScore:
		return models.TierLow
	default:
		return models.TierClean
	}
}
