package datasource

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"token-scanner/src/logger"
	"token-scanner/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRisk struct {
	report models.Maybe[models.MRiskReport]
	delay  time.Duration
	wait   *sync.WaitGroup
}

func (f *fakeRisk) Name() string { return "fake-risk" }

func (f *fakeRisk) FetchRiskReport(ctx context.Context, identifier string) models.Maybe[models.MRiskReport] {
	if f.wait != nil {
		f.wait.Done()
		f.wait.Wait()
	}
	time.Sleep(f.delay)
	return f.report
}

type fakeMarket struct {
	report models.Maybe[models.MMarketReport]
	delay  time.Duration
	wait   *sync.WaitGroup
}

func (f *fakeMarket) Name() string { return "fake-market" }

func (f *fakeMarket) FetchMarketReport(ctx context.Context, identifier string) models.Maybe[models.MMarketReport] {
	if f.wait != nil {
		f.wait.Done()
		f.wait.Wait()
	}
	time.Sleep(f.delay)
	return f.report
}

func quietLogger() *logger.Logger {
	log := logger.NewLogger(nil, "test")
	log.SetOutput(io.Discard)
	return log
}

func TestFetchReports_BothPresent(t *testing.T) {
	risk := &fakeRisk{report: models.Some(models.MRiskReport{Score: 42})}
	market := &fakeMarket{report: models.Some(models.MMarketReport{PriceUsd: "1.5"})}

	reports := NewMultiSourceManager(risk, market, quietLogger()).FetchReports(context.Background(), "mint")

	r, ok := reports.Risk.Get()
	require.True(t, ok)
	assert.Equal(t, 42, r.Score)
	mk, ok := reports.Market.Get()
	require.True(t, ok)
	assert.Equal(t, "1.5", mk.PriceUsd)
	assert.False(t, reports.Coverage().Degraded())
}

func TestFetchReports_OneAbsentDoesNotAffectTheOther(t *testing.T) {
	risk := &fakeRisk{report: models.None[models.MRiskReport](errors.New("boom"))}
	market := &fakeMarket{report: models.Some(models.MMarketReport{PriceUsd: "2"})}

	reports := NewMultiSourceManager(risk, market, quietLogger()).FetchReports(context.Background(), "mint")

	assert.False(t, reports.Risk.Present())
	assert.EqualError(t, reports.Risk.Reason(), "boom")
	assert.True(t, reports.Market.Present())
	assert.Equal(t, models.Coverage{RiskReport: false, MarketReport: true}, reports.Coverage())
}

func TestFetchReports_RunsProvidersConcurrently(t *testing.T) {
	// Each fake blocks until both have started, so a sequential fan-out would
	// deadlock and trip the test timeout below.
	var started sync.WaitGroup
	started.Add(2)

	risk := &fakeRisk{report: models.Some(models.MRiskReport{}), wait: &started}
	market := &fakeMarket{report: models.Some(models.MMarketReport{}), wait: &started}
	mgr := NewMultiSourceManager(risk, market, quietLogger())

	done := make(chan Reports, 1)
	go func() { done <- mgr.FetchReports(context.Background(), "mint") }()

	select {
	case reports := <-done:
		assert.True(t, reports.Risk.Present())
		assert.True(t, reports.Market.Present())
	case <-time.After(2 * time.Second):
		t.Fatal("providers were not called concurrently")
	}
}

func TestSourceNames(t *testing.T) {
	mgr := NewMultiSourceManager(&fakeRisk{}, &fakeMarket{}, quietLogger())
	assert.Equal(t, []string{"fake-risk", "fake-market"}, mgr.SourceNames())
}
