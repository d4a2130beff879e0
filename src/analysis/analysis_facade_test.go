package analysis

import (
	"context"
	"io"
	"testing"

	datasource "token-scanner/src/data_source"
	"token-scanner/src/helpers"
	"token-scanner/src/logger"
	"token-scanner/src/metrics"
	"token-scanner/src/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRisk struct {
	report models.Maybe[models.MRiskReport]
	seen   string
}

func (s *stubRisk) Name() string { return "stub-risk" }

func (s *stubRisk) FetchRiskReport(ctx context.Context, identifier string) models.Maybe[models.MRiskReport] {
	s.seen = identifier
	return s.report
}

type stubMarket struct {
	report models.Maybe[models.MMarketReport]
}

func (s *stubMarket) Name() string { return "stub-market" }

func (s *stubMarket) FetchMarketReport(ctx context.Context, identifier string) models.Maybe[models.MMarketReport] {
	return s.report
}

func newFacade(risk *stubRisk, market *stubMarket) *AnalysisFacade {
	log := logger.NewLogger(nil, "facade")
	log.SetOutput(io.Discard)
	return NewAnalysisFacade(datasource.NewMultiSourceManager(risk, market, log), log)
}

// -----------------------------------------------------------------------------

func TestAnalyze_BlankIdentifierIsValidationError(t *testing.T) {
	f := newFacade(&stubRisk{}, &stubMarket{})

	for _, id := range []string{"", "   ", "\t\n"} {
		_, err := f.Analyze(context.Background(), id)
		require.Error(t, err)
		assert.True(t, helpers.IsValidation(err))
	}
}

func TestAnalyze_TrimsIdentifier(t *testing.T) {
	risk := &stubRisk{report: models.Some(models.MRiskReport{Score: 2500})}
	f := newFacade(risk, &stubMarket{report: absentMarket()})

	got, err := f.Analyze(context.Background(), "  mint123  ")
	require.NoError(t, err)

	assert.Equal(t, "mint123", risk.seen)
	assert.Equal(t, "mint123", got.Identifier)
	assert.Equal(t, models.TierMedium, got.Tier)
	_, err = uuid.Parse(got.ID)
	assert.NoError(t, err)
	assert.False(t, got.AnalyzedAt.IsZero())
}

func TestAnalyze_BothAbsentStillSucceeds(t *testing.T) {
	f := newFacade(&stubRisk{report: absentRisk()}, &stubMarket{report: absentMarket()})
	before := testutil.ToFloat64(metrics.AnalysisDegradedTotal)

	got, err := f.Analyze(context.Background(), "mint")
	require.NoError(t, err)

	assert.Equal(t, models.TierClean, got.Tier)
	assert.Equal(t, models.Coverage{}, got.Coverage)
	assert.True(t, got.Coverage.Degraded())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AnalysisDegradedTotal))
}

func TestAnalyze_EndToEndRugged(t *testing.T) {
	risk := &stubRisk{report: models.Some(models.MRiskReport{Score: 6000, Rugged: true, MintAuthority: ptr("Abc")})}
	f := newFacade(risk, &stubMarket{report: absentMarket()})
	before := testutil.ToFloat64(metrics.AnalysisTotal.WithLabelValues("high"))

	got, err := f.Analyze(context.Background(), "mint")
	require.NoError(t, err)

	assert.Equal(t, models.TierHigh, got.Tier)
	assert.True(t, got.Profile.HasMintAuthority)
	assert.Equal(t, models.Coverage{RiskReport: true, MarketReport: false}, got.Coverage)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AnalysisTotal.WithLabelValues("high")))
}

func TestAnalyze_IDsAreUnique(t *testing.T) {
	f := newFacade(&stubRisk{report: absentRisk()}, &stubMarket{report: absentMarket()})

	a, err := f.Analyze(context.Background(), "mint")
	require.NoError(t, err)
	b, err := f.Analyze(context.Background(), "mint")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
