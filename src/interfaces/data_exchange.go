package interfaces

import (
	"context"

	"token-scanner/src/models"
)

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing results with external systems (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Publish pushes a finished analysis to live listeners.
	Publish(event *models.MAnalysisEvent)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop(ctx context.Context) error
}
