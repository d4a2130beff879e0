package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"token-scanner/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("GET https://api.example", cause)

	assert.Equal(t, "GET https://api.example: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsValidation(err))
}

func TestStatusCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("fetch: %w", NewUpstreamError("rugcheck", 503, "bad status", nil))
	assert.Equal(t, 503, StatusCode(err))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"network", NewNetworkError("dial", errors.New("x")), "network_error"},
		{"throttled", NewUpstreamError("dexscreener", 429, "bad status", nil), "rate_limited"},
		{"local limiter", fmt.Errorf("rugcheck: %w", ErrRateLimited), "rate_limited"},
		{"oversized", NewUpstreamError("dexscreener", 0, "read", ErrBodyTooLarge), "too_large"},
		{"status", NewUpstreamError("dexscreener", 500, "bad status", nil), "bad_status"},
		{"decode", NewUpstreamError("rugcheck", 0, "decode", errors.New("eof")), "malformed"},
		{"other", errors.New("boom"), "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Outcome(tc.err))
		})
	}
}

func TestErrorHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(nil, "test")
	log.SetOutput(&buf)
	h := NewErrorHandler(log)

	h.Handle(nil, "noop")
	require.Empty(t, buf.String())

	h.Handle(NewValidationError("empty address"), "analyze")
	assert.Contains(t, buf.String(), "WARNING: Rejected input in analyze: empty address")

	h.Handle(errors.New("boom"), "analyze")
	assert.Contains(t, buf.String(), "ERROR: Error in analyze: boom")
}
