package helpers

import (
	"token-scanner/src/models"

	"golang.org/x/time/rate"
)

// NewSourceLimiter builds the request budget of one provider. A zero rate means
// unlimited; a missing burst allows one request at a time.
func NewSourceLimiter(cfg models.MProviderConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}
