// Package narrative turns a finished analysis into prose for end users.
package narrative

import (
	"token-scanner/src/interfaces"
	"token-scanner/src/logger"
	"token-scanner/src/models"
)

// New picks the OpenAI narrator when it is enabled and keyed, and the static
// one otherwise.
func New(cfg models.MNarrativeConfig, log *logger.Logger) interfaces.INarrator {
	if cfg.Enabled && cfg.APIKey != "" {
		return NewOpenAINarrator(cfg, log)
	}
	log.Info("Narrative model disabled, using static summaries")
	return StaticNarrator{}
}
