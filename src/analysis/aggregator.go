package analysis

import (
	"fmt"

	"token-scanner/src/analysis/core"
	"token-scanner/src/models"

	"github.com/shopspring/decimal"
)

const (
	UnknownName   = "Unknown"
	UnknownSymbol = "UNKNOWN"

	// TopHolderCount is how many leading holder entries make up the concentration.
	TopHolderCount = 10
)

// ConcentrationLimit is the holder share, in percent, above which a finding is raised.
var ConcentrationLimit = decimal.NewFromInt(50)

const (
	FindingMintAuthority   = "Mint Authority enabled - Team can create unlimited tokens"
	FindingFreezeAuthority = "Freeze Authority enabled - Team can freeze your tokens"
	findingConcentration   = "Top 10 holders own %s%% of supply"
)

// -----------------------------------------------------------------------------
// Field precedence
// -----------------------------------------------------------------------------

type sources struct {
	risk      models.MRiskReport
	hasRisk   bool
	market    models.MMarketReport
	hasMarket bool
}

// stringRule yields a candidate value for a field. The first rule whose
// extract returns a non-empty value wins.
type stringRule struct {
	source  string
	extract func(s sources) string
}

type numberRule struct {
	source  string
	extract func(s sources) (float64, bool)
}

var nameRules = []stringRule{
	{"risk.tokenMeta.name", func(s sources) string {
		if !s.hasRisk || s.risk.TokenMeta == nil {
			return ""
		}
		return s.risk.TokenMeta.Name
	}},
	{"market.baseToken.name", func(s sources) string {
		if !s.hasMarket || s.market.BaseToken == nil {
			return ""
		}
		return s.market.BaseToken.Name
	}},
}

var symbolRules = []stringRule{
	{"risk.tokenMeta.symbol", func(s sources) string {
		if !s.hasRisk || s.risk.TokenMeta == nil {
			return ""
		}
		return s.risk.TokenMeta.Symbol
	}},
	{"market.baseToken.symbol", func(s sources) string {
		if !s.hasMarket || s.market.BaseToken == nil {
			return ""
		}
		return s.market.BaseToken.Symbol
	}},
}

var marketCapRules = []numberRule{
	{"market.marketCap", func(s sources) (float64, bool) {
		if !s.hasMarket {
			return 0, false
		}
		return deref(s.market.MarketCap)
	}},
	{"market.fdv", func(s sources) (float64, bool) {
		if !s.hasMarket {
			return 0, false
		}
		return deref(s.market.Fdv)
	}},
}

func resolveString(rules []stringRule, s sources, fallback string) string {
	for _, r := range rules {
		if v := r.extract(s); v != "" {
			return v
		}
	}
	return fallback
}

// resolveNumber takes the first value that is present. A reported 0 is kept;
// only a missing field falls through to the next rule.
func resolveNumber(rules []numberRule, s sources) float64 {
	for _, r := range rules {
		if v, ok := r.extract(s); ok {
			return v
		}
	}
	return 0
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// -----------------------------------------------------------------------------
// Aggregate
// -----------------------------------------------------------------------------

// Aggregate merges the two upstream reports into one profile. Either report,
// or both, may be absent; missing fields take neutral defaults.
func Aggregate(risk models.Maybe[models.MRiskReport], market models.Maybe[models.MMarketReport]) models.TokenProfile {
	var s sources
	s.risk, s.hasRisk = risk.Get()
	s.market, s.hasMarket = market.Get()

	profile := models.TokenProfile{
		Name:      resolveString(nameRules, s, UnknownName),
		Symbol:    resolveString(symbolRules, s, UnknownSymbol),
		Price:     decimal.Zero,
		MarketCap: resolveNumber(marketCapRules, s),
		Findings:  []string{},
	}

	if s.hasMarket {
		profile.Price = core.ParsePrice(s.market.PriceUsd)
		if s.market.Liquidity != nil {
			profile.Liquidity, _ = deref(s.market.Liquidity.USD)
		}
		if s.market.Volume != nil {
			profile.Volume24h, _ = deref(s.market.Volume.H24)
		}
		if s.market.PriceChange != nil {
			profile.PriceChange24h, _ = deref(s.market.PriceChange.H24)
		}
	}

	if !s.hasRisk {
		return profile
	}

	profile.RiskScore = s.risk.Score
	profile.Rugged = s.risk.Rugged
	profile.HasMintAuthority = s.risk.MintAuthority != nil
	profile.HasFreezeAuthority = s.risk.FreezeAuthority != nil

	shares := make([]float64, len(s.risk.TopHolders))
	for i, h := range s.risk.TopHolders {
		shares[i] = h.Pct
	}
	concentration := core.SumLeading(shares, TopHolderCount)
	profile.TopHolderConcentration = concentration.InexactFloat64()

	profile.Findings = deriveFindings(s.risk, profile, concentration)
	return profile
}

// -----------------------------------------------------------------------------

func deriveFindings(report models.MRiskReport, profile models.TokenProfile, concentration decimal.Decimal) []string {
	findings := make([]string, 0, len(report.Risks)+3)

	for _, r := range report.Risks {
		if r.Level == models.RiskLevelDanger || r.Level == models.RiskLevelWarn {
			findings = append(findings, r.Name+": "+r.Description)
		}
	}

	if profile.HasMintAuthority {
		findings = append(findings, FindingMintAuthority)
	}
	if profile.HasFreezeAuthority {
		findings = append(findings, FindingFreezeAuthority)
	}

	if concentration.GreaterThan(ConcentrationLimit) {
		findings = append(findings, fmt.Sprintf(findingConcentration, concentration.StringFixed(1)))
	}

	return findings
}
