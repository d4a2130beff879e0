package interfaces

import (
	"context"

	"token-scanner/src/models"
)

// -----------------------------------------------------------------------------
// IAnalyzer runs the full fetch, aggregate and classify pipeline for one token.
// -----------------------------------------------------------------------------

type IAnalyzer interface {
	Analyze(ctx context.Context, identifier string) (*models.Analysis, error)
}

// -----------------------------------------------------------------------------
// INarrator turns an analysis into prose for the end user.
// -----------------------------------------------------------------------------

type INarrator interface {
	Narrate(ctx context.Context, analysis *models.Analysis) (string, error)
}
