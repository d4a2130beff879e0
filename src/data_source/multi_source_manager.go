package datasource

import (
	"context"
	"time"

	"token-scanner/src/interfaces"
	"token-scanner/src/logger"
	"token-scanner/src/models"

	"golang.org/x/sync/errgroup"
)

// Reports is the fan-in result of one fetch round. Either slot may be absent.
type Reports struct {
	Risk   models.Maybe[models.MRiskReport]
	Market models.Maybe[models.MMarketReport]
}

// Coverage reports which slots were filled.
func (r Reports) Coverage() models.Coverage {
	return models.Coverage{
		RiskReport:   r.Risk.Present(),
		MarketReport: r.Market.Present(),
	}
}

// -----------------------------------------------------------------------------

// MultiSourceManager queries the risk and market providers for the same token
// at the same time.
type MultiSourceManager struct {
	Risk   interfaces.IRiskReportProvider
	Market interfaces.IMarketReportProvider
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMultiSourceManager(risk interfaces.IRiskReportProvider, market interfaces.IMarketReportProvider, log *logger.Logger) *MultiSourceManager {
	return &MultiSourceManager{
		Risk:   risk,
		Market: market,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Name returns "MultiSourceManager"
func (m *MultiSourceManager) Name() string {
	return "MultiSourceManager"
}

// -----------------------------------------------------------------------------

// SourceNames lists the configured providers, risk first.
func (m *MultiSourceManager) SourceNames() []string {
	return []string{m.Risk.Name(), m.Market.Name()}
}

// -----------------------------------------------------------------------------

// FetchReports issues both provider calls concurrently and waits for both.
// Each goroutine writes only its own slot, so no lock is needed. Providers
// never fail, so the group never cancels a sibling; a slow provider is bounded
// by ctx and the HTTP client timeout.
func (m *MultiSourceManager) FetchReports(ctx context.Context, identifier string) Reports {
	var reports Reports
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reports.Risk = m.Risk.FetchRiskReport(gctx, identifier)
		return nil
	})

	g.Go(func() error {
		reports.Market = m.Market.FetchMarketReport(gctx, identifier)
		return nil
	})

	_ = g.Wait()

	m.Logger.Debug("Fetched reports for %s in %s (risk=%v market=%v)",
		identifier, time.Since(start).Round(time.Millisecond), reports.Risk.Present(), reports.Market.Present())

	return reports
}
