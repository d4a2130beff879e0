package narrative

import (
	"fmt"
	"math"
	"strings"

	"token-scanner/src/models"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// SystemPersona frames the text generator's voice.
const SystemPersona = `You are a blunt on-chain risk analyst for Solana tokens.
Write 2-3 short paragraphs grounded only in the metrics you are given.
Cite concrete numbers. Call out mint or freeze authority, holder concentration,
thin liquidity relative to market cap and a high risk score when present.
Never invent data and never give financial advice.`

const noRisksLine = "No major risks identified"

// -----------------------------------------------------------------------------

// BuildPrompt renders the user prompt for one analysis. The output only
// depends on its arguments.
func BuildPrompt(identifier string, profile models.TokenProfile, tier models.RiskTier, coverage models.Coverage) string {
	var b strings.Builder

	b.WriteString("Analyze this Solana token for rug pull risk:\n\n")
	fmt.Fprintf(&b, "Contract: %s\n\n", identifier)

	b.WriteString("TOKEN ANALYSIS DATA:\n")
	fmt.Fprintf(&b, "- Name: %s (%s)\n", profile.Name, profile.Symbol)
	fmt.Fprintf(&b, "- Price: $%s\n", profile.Price.StringFixed(8))
	fmt.Fprintf(&b, "- Market Cap: $%s\n", wholeDollars(profile.MarketCap))
	fmt.Fprintf(&b, "- Liquidity: $%s\n", wholeDollars(profile.Liquidity))
	fmt.Fprintf(&b, "- 24h Volume: $%s\n", wholeDollars(profile.Volume24h))
	fmt.Fprintf(&b, "- 24h Price Change: %s%%\n", signed(profile.PriceChange24h))
	fmt.Fprintf(&b, "- Risk Score: %d (lower is better)\n", profile.RiskScore)
	fmt.Fprintf(&b, "- Rugged: %s\n", yesNo(profile.Rugged, "YES - THIS TOKEN WAS RUGGED", "No"))
	fmt.Fprintf(&b, "- Mint Authority: %s\n", yesNo(profile.HasMintAuthority, "ENABLED (dangerous)", "Disabled"))
	fmt.Fprintf(&b, "- Freeze Authority: %s\n", yesNo(profile.HasFreezeAuthority, "ENABLED (dangerous)", "Disabled"))
	fmt.Fprintf(&b, "- Top 10 Holder Concentration: %.1f%%\n", profile.TopHolderConcentration)

	if !coverage.RiskReport {
		b.WriteString("- NOTE: the risk report was unavailable, the score and findings are unverified\n")
	}
	if !coverage.MarketReport {
		b.WriteString("- NOTE: market data was unavailable, price figures are placeholders\n")
	}

	b.WriteString("\nIDENTIFIED RISKS:\n")
	if len(profile.Findings) == 0 {
		fmt.Fprintf(&b, "• %s\n", noRisksLine)
	}
	for _, f := range profile.Findings {
		fmt.Fprintf(&b, "• %s\n", f)
	}

	fmt.Fprintf(&b, "\nRisk Level Detected: %s\n\n", strings.ToUpper(string(tier)))
	b.WriteString("Provide your risk assessment based on this real data.")

	return b.String()
}

// -----------------------------------------------------------------------------

func yesNo(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

// signed renders a percentage with two decimals and an explicit plus sign.
// Rounding is half away from zero on the decimal value, so 12.345 gives +12.35.
func signed(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	if v > 0 {
		return "+" + s
	}
	return s
}

// wholeDollars rounds to a whole amount with comma separators, e.g. 1234567.8 -> "1,234,568".
func wholeDollars(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}
