package analysis

import (
	"context"
	"strings"
	"time"

	datasource "token-scanner/src/data_source"
	"token-scanner/src/helpers"
	"token-scanner/src/logger"
	"token-scanner/src/metrics"
	"token-scanner/src/models"

	"github.com/google/uuid"
)

type AnalysisFacade struct {
	Sources *datasource.MultiSourceManager
	Logger  *logger.Logger
	now     func() time.Time
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(sources *datasource.MultiSourceManager, log *logger.Logger) *AnalysisFacade {
	return &AnalysisFacade{
		Sources: sources,
		Logger:  log,
		now:     time.Now,
	}
}

// -----------------------------------------------------------------------------

// Analyze fetches both reports concurrently, then aggregates and classifies.
// The only error is a ValidationError for a blank identifier; upstream
// problems show up as a degraded Coverage instead.
func (a *AnalysisFacade) Analyze(ctx context.Context, identifier string) (*models.Analysis, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, helpers.NewValidationError("contract address is required")
	}

	start := a.now()

	reports := a.Sources.FetchReports(ctx, identifier)
	profile := Aggregate(reports.Risk, reports.Market)
	tier := Classify(profile)
	coverage := reports.Coverage()

	analysis := &models.Analysis{
		ID:         uuid.NewString(),
		Identifier: identifier,
		Profile:    profile,
		Tier:       tier,
		Coverage:   coverage,
		AnalyzedAt: a.now().UTC(),
	}

	metrics.AnalysisTotal.WithLabelValues(string(tier)).Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if coverage.Degraded() {
		metrics.AnalysisDegradedTotal.Inc()
		a.Logger.Warning("Analysis %s for %s is degraded (risk=%v market=%v)",
			analysis.ID, identifier, coverage.RiskReport, coverage.MarketReport)
	}

	a.Logger.Info("Analyzed %s: tier=%s score=%d findings=%d", identifier, tier, profile.RiskScore, len(profile.Findings))
	return analysis, nil
}
