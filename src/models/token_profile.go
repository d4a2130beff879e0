package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenProfile is the normalized view of a token built from both upstream reports.
// Every field has a neutral default so a profile exists even with no upstream data.
type TokenProfile struct {
	Name                   string          `json:"name"`
	Symbol                 string          `json:"symbol"`
	Price                  decimal.Decimal `json:"price"`
	MarketCap              float64         `json:"marketCap"`
	Liquidity              float64         `json:"liquidity"`
	Volume24h              float64         `json:"volume24h"`
	PriceChange24h         float64         `json:"priceChange24h"`
	RiskScore              int             `json:"riskScore"`
	Findings               []string        `json:"risks"`
	Rugged                 bool            `json:"rugged"`
	TopHolderConcentration float64         `json:"topHolderConcentration"`
	HasMintAuthority       bool            `json:"hasMintAuthority"`
	HasFreezeAuthority     bool            `json:"hasFreezeAuthority"`
}

// -----------------------------------------------------------------------------

// RiskTier is the discrete classification of a profile.
type RiskTier string

const (
	TierHigh   RiskTier = "high"
	TierMedium RiskTier = "medium"
	TierLow    RiskTier = "low"
	TierClean  RiskTier = "clean"
)

// Severity orders tiers from clean (0) to high (3). Unknown tiers are -1.
func (t RiskTier) Severity() int {
	switch t {
	case TierClean:
		return 0
	case TierLow:
		return 1
	case TierMedium:
		return 2
	case TierHigh:
		return 3
	default:
		return -1
	}
}

// -----------------------------------------------------------------------------

// Coverage records which upstream reports contributed to a profile. A clean tier
// without the risk report means "no risk data", not "verified safe".
type Coverage struct {
	RiskReport   bool `json:"riskReport"`
	MarketReport bool `json:"marketReport"`
}

// Degraded is true when any upstream report was missing.
func (c Coverage) Degraded() bool {
	return !c.RiskReport || !c.MarketReport
}

// -----------------------------------------------------------------------------

// Analysis is the result of one analyze call.
type Analysis struct {
	ID         string       `json:"id"`
	Identifier string       `json:"contractAddress"`
	Profile    TokenProfile `json:"tokenData"`
	Tier       RiskTier     `json:"rugRisk"`
	Coverage   Coverage     `json:"coverage"`
	AnalyzedAt time.Time    `json:"analyzedAt"`
}
