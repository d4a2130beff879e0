package server

import (
	"token-scanner/src/models"

	"github.com/gin-gonic/gin"
)

// historySize is how many finished analyses the server keeps for /api/recent.
// The newest one is replayed to each new feed client.
const historySize = 50

const (
	errInvalidAddress = "Invalid contract address"
	errAnalyzeFailed  = "Failed to analyze contract"
)

// Live feed event types
const (
	EventInitial    = "INITIAL"
	EventAnalysis   = "ANALYSIS"
	EventSubscribed = "SUBSCRIBED"
)

// -----------------------------------------------------------------------------

type analyzeRequest struct {
	ContractAddress string `json:"contractAddress" binding:"required"`
}

type analyzeResponse struct {
	ID        string              `json:"id"`
	Analysis  string              `json:"analysis"`
	RugRisk   models.RiskTier     `json:"rugRisk"`
	TokenData models.TokenProfile `json:"tokenData"`
	Coverage  models.Coverage     `json:"coverage"`
}

func newAnalyzeResponse(a *models.Analysis, text string) analyzeResponse {
	return analyzeResponse{
		ID:        a.ID,
		Analysis:  text,
		RugRisk:   a.Tier,
		TokenData: a.Profile,
		Coverage:  a.Coverage,
	}
}

type recentQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// -----------------------------------------------------------------------------

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

// -----------------------------------------------------------------------------

// knownTiers drops anything that is not a real tier.
func knownTiers(tiers []models.RiskTier) map[models.RiskTier]struct{} {
	set := make(map[models.RiskTier]struct{}, len(tiers))
	for _, t := range tiers {
		if t.Severity() >= 0 {
			set[t] = struct{}{}
		}
	}
	return set
}
