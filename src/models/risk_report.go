package models

// MRiskReport is the on-chain risk report returned by the risk provider
// (RugCheck /v1/tokens/{mint}/report). Only the fields the scanner reads are mapped.
type MRiskReport struct {
	TokenMeta       *MTokenMeta        `json:"tokenMeta"`
	Token           string             `json:"token"`
	Risks           []MRiskFinding     `json:"risks"`
	Score           int                `json:"score"`
	Rugged          bool               `json:"rugged"`
	Markets         []MLiquidityMarket `json:"markets"`
	TopHolders      []MHolder          `json:"topHolders"`
	MintAuthority   *string            `json:"mintAuthority"`
	FreezeAuthority *string            `json:"freezeAuthority"`
}

type MTokenMeta struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

// MRiskFinding is one risk entry. Level is "danger", "warn" or "info".
type MRiskFinding struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Score       int    `json:"score"`
}

type MLiquidityMarket struct {
	MarketType string `json:"marketType"`
	LP         *struct {
		LPLockedUSD   float64 `json:"lpLockedUSD"`
		LPUnlockedUSD float64 `json:"lpUnlockedUSD"`
	} `json:"lp"`
}

// MHolder is a top-holder entry. Pct is the percentage of supply held.
type MHolder struct {
	Address string  `json:"address"`
	Pct     float64 `json:"pct"`
	Insider bool    `json:"insider"`
}

const (
	RiskLevelDanger = "danger"
	RiskLevelWarn   = "warn"
)
