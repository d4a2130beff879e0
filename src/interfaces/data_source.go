package interfaces

import (
	"context"

	"token-scanner/src/models"
)

// -----------------------------------------------------------------------------
// Upstream report providers. Implementations never return an error: network
// failures, bad statuses and undecodable payloads all come back as an absent
// report carrying the reason.
// -----------------------------------------------------------------------------

type IRiskReportProvider interface {

	// Name returns the unique identifier of the source
	Name() string

	// FetchRiskReport reads the risk report for a token identifier.
	FetchRiskReport(ctx context.Context, identifier string) models.Maybe[models.MRiskReport]
}

// -----------------------------------------------------------------------------

type IMarketReportProvider interface {

	// Name returns the unique identifier of the source
	Name() string

	// FetchMarketReport reads the primary trading pair for a token identifier.
	FetchMarketReport(ctx context.Context, identifier string) models.Maybe[models.MMarketReport]
}
