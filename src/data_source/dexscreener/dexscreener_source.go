package dexscreener

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

const SourceName = "dexscreener"

// DexScreenerSource reads live pair data from the DexScreener token endpoint.
type DexScreenerSource struct {
	SourceConfig models.MProviderConfig
	Network      interfaces.INetworkManager
	Logger       *logger.Logger
	limiter      *rate.Limiter
}

// -----------------------------------------------------------------------------

func NewDexScreenerSource(sourceCfg models.MProviderConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *DexScreenerSource {
	return &DexScreenerSource{
		SourceConfig: sourceCfg,
		Network:      netMgr,
		Logger:       log,
		limiter:      helpers.NewSourceLimiter(sourceCfg),
	}
}

// -----------------------------------------------------------------------------

func (s *DexScreenerSource) Name() string {
	return SourceName
}

// -----------------------------------------------------------------------------

// FetchMarketReport returns the first pair the provider lists for the token.
// DexScreener orders pairs by relevance, so the first one is treated as the
// primary pair.
func (s *DexScreenerSource) FetchMarketReport(ctx context.Context, identifier string) models.Maybe[models.MMarketReport] {
	start := time.Now()

	pair, err := s.fetch(ctx, identifier)
	metrics.ObserveFetch(SourceName, start, err)

	if err != nil {
		s.Logger.Warning("DexScreener pair unavailable for %s: %v", identifier, err)
		return models.None[models.MMarketReport](err)
	}

	s.Logger.Debug("DexScreener pair for %s: dex=%s pair=%s price=%s", identifier, pair.DexID, pair.PairAddress, pair.PriceUsd)
	return models.Some(*pair)
}

// -----------------------------------------------------------------------------

func (s *DexScreenerSource) fetch(ctx context.Context, identifier string) (*models.MMarketReport, error) {
	if !s.limiter.Allow() {
		return nil, fmt.Errorf("%s: %w", SourceName, helpers.ErrRateLimited)
	}

	endpoint := fmt.Sprintf("%s/tokens/v1/%s/%s",
		strings.TrimRight(s.SourceConfig.BaseURL, "/"),
		url.PathEscape(s.SourceConfig.Chain),
		url.PathEscape(identifier))

	respBytes, err := s.Network.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	return parsePairs(respBytes)
}

// -----------------------------------------------------------------------------

func parsePairs(data []byte) (*models.MMarketReport, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, helpers.NewUpstreamError(SourceName, 0, "expected a JSON array of pairs", nil)
	}

	var pairs []models.MMarketReport
	if err := json.Unmarshal(trimmed, &pairs); err != nil {
		return nil, helpers.NewUpstreamError(SourceName, 0, "json unmarshal failed", err)
	}

	if len(pairs) == 0 {
		return nil, helpers.NewUpstreamError(SourceName, 0, "no pairs listed", nil)
	}

	return &pairs[0], nil
}
