package narrative

import (
	"context"
	"fmt"
	"strings"

	"token-scanner/src/metrics"
	"token-scanner/src/models"
)

// StaticNarrator summarises an analysis without calling out to a model. It is
// used when no API key is configured.
type StaticNarrator struct{}

func (StaticNarrator) Narrate(ctx context.Context, analysis *models.Analysis) (string, error) {
	p := analysis.Profile
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s) is rated %s risk with a score of %d.",
		p.Name, p.Symbol, strings.ToUpper(string(analysis.Tier)), p.RiskScore)

	if p.Rugged {
		b.WriteString(" The token has already been rugged.")
	}

	if !analysis.Coverage.RiskReport {
		b.WriteString(" Risk data was unavailable, so this rating is not a safety verdict.")
	}

	if len(p.Findings) == 0 {
		fmt.Fprintf(&b, " %s.", noRisksLine)
	} else {
		fmt.Fprintf(&b, " Findings: %s.", strings.Join(p.Findings, "; "))
	}

	metrics.NarrativeTotal.WithLabelValues("static", "ok").Inc()
	return b.String(), nil
}
