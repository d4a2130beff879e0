package rugcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"token-scanner/src/helpers"
	"token-scanner/src/interfaces"
	"token-scanner/src/logger"
	"token-scanner/src/metrics"
	"token-scanner/src/models"

	"golang.org/x/time/rate"
)

const SourceName = "rugcheck"

// RugCheckSource reads token risk reports from the RugCheck API.
type RugCheckSource struct {
	SourceConfig models.MProviderConfig
	Network      interfaces.INetworkManager
	Logger       *logger.Logger
	limiter      *rate.Limiter
}

// -----------------------------------------------------------------------------

func NewRugCheckSource(sourceCfg models.MProviderConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *RugCheckSource {
	return &RugCheckSource{
		SourceConfig: sourceCfg,
		Network:      netMgr,
		Logger:       log,
		limiter:      helpers.NewSourceLimiter(sourceCfg),
	}
}

// -----------------------------------------------------------------------------

func (s *RugCheckSource) Name() string {
	return SourceName
}

// -----------------------------------------------------------------------------

// FetchRiskReport never fails: every problem ends as an absent report whose
// reason is logged here.
func (s *RugCheckSource) FetchRiskReport(ctx context.Context, identifier string) models.Maybe[models.MRiskReport] {
	start := time.Now()

	report, err := s.fetch(ctx, identifier)
	metrics.ObserveFetch(SourceName, start, err)

	if err != nil {
		s.Logger.Warning("RugCheck report unavailable for %s: %v", identifier, err)
		return models.None[models.MRiskReport](err)
	}

	s.Logger.Debug("RugCheck report for %s: score=%d rugged=%v risks=%d", identifier, report.Score, report.Rugged, len(report.Risks))
	return models.Some(*report)
}

// -----------------------------------------------------------------------------

func (s *RugCheckSource) fetch(ctx context.Context, identifier string) (*models.MRiskReport, error) {
	if !s.limiter.Allow() {
		return nil, fmt.Errorf("%s: %w", SourceName, helpers.ErrRateLimited)
	}

	endpoint := fmt.Sprintf("%s/v1/tokens/%s/report",
		strings.TrimRight(s.SourceConfig.BaseURL, "/"), url.PathEscape(identifier))

	respBytes, err := s.Network.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	return parseReport(respBytes)
}

// -----------------------------------------------------------------------------

func parseReport(data []byte) (*models.MRiskReport, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, helpers.NewUpstreamError(SourceName, 0, "empty report", nil)
	}

	var report *models.MRiskReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, helpers.NewUpstreamError(SourceName, 0, "json unmarshal failed", err)
	}

	return report, nil
}
