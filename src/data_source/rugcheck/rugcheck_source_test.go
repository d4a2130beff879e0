package rugcheck

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"token-scanner/src/helpers"
	"token-scanner/src/logger"
	"token-scanner/src/models"
	"token-scanner/src/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `{
  "token": "So11111111111111111111111111111111111111112",
  "tokenMeta": {"name": "Sample", "symbol": "SMPL"},
  "score": 2500,
  "rugged": false,
  "mintAuthority": "Auth111",
  "freezeAuthority": null,
  "risks": [
    {"name": "Low Liquidity", "description": "Low amount of LP Providers", "level": "danger", "score": 2000},
    {"name": "Mutable metadata", "description": "Token metadata can be changed", "level": "info", "score": 100}
  ],
  "topHolders": [{"address": "h1", "pct": 12.5, "insider": false}]
}`

func newTestSource(t *testing.T, baseURL string, rps float64, burst int) *RugCheckSource {
	t.Helper()
	log := logger.NewLogger(nil, "rugcheck")
	log.SetOutput(io.Discard)
	cfg := &models.MConfig{Network: models.MNetworkConfig{RequestTimeout: 2, UserAgent: "scanner-test"}}
	srcCfg := models.MProviderConfig{BaseURL: baseURL, RequestsPerSecond: rps, Burst: burst}
	return NewRugCheckSource(srcCfg, network.NewAsyncNetworkManager(cfg, log), log)
}

func TestFetchRiskReport_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tokens/So11111111111111111111111111111111111111112/report", r.URL.Path)
		w.Write([]byte(sampleReport))
	}))
	defer srv.Close()

	got := newTestSource(t, srv.URL, 0, 0).FetchRiskReport(context.Background(), "So11111111111111111111111111111111111111112")

	report, ok := got.Get()
	require.True(t, ok)
	assert.NoError(t, got.Reason())
	assert.Equal(t, 2500, report.Score)
	require.NotNil(t, report.TokenMeta)
	assert.Equal(t, "SMPL", report.TokenMeta.Symbol)
	require.NotNil(t, report.MintAuthority)
	assert.Nil(t, report.FreezeAuthority)
	assert.Len(t, report.Risks, 2)
	assert.Len(t, report.TopHolders, 1)
}

func TestFetchRiskReport_BadStatusIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	got := newTestSource(t, srv.URL, 0, 0).FetchRiskReport(context.Background(), "missing")

	assert.False(t, got.Present())
	assert.Equal(t, http.StatusNotFound, helpers.StatusCode(got.Reason()))
}

func TestFetchRiskReport_MalformedBodyIsAbsent(t *testing.T) {
	for name, body := range map[string]string{
		"null":     `null`,
		"empty":    ``,
		"garbage":  `<html>oops</html>`,
		"bad type": `{"score": "high"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			got := newTestSource(t, srv.URL, 0, 0).FetchRiskReport(context.Background(), "mint")

			assert.False(t, got.Present())
			assert.Equal(t, "malformed", helpers.Outcome(got.Reason()))
		})
	}
}

func TestFetchRiskReport_RateLimitedDoesNotCallUpstream(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(sampleReport))
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL, 0.001, 1)

	first := src.FetchRiskReport(context.Background(), "mint")
	second := src.FetchRiskReport(context.Background(), "mint")

	assert.True(t, first.Present())
	assert.False(t, second.Present())
	assert.True(t, errors.Is(second.Reason(), helpers.ErrRateLimited))
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRiskReport_UnreachableIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	got := newTestSource(t, url, 0, 0).FetchRiskReport(context.Background(), "mint")

	assert.False(t, got.Present())
	assert.True(t, helpers.IsNetwork(got.Reason()))
}
