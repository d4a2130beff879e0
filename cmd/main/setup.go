package main

import (
	"token-scanner/src/analysis"
	datasource "token-scanner/src/data_source"
	"token-scanner/src/data_source/dexscreener"
	"token-scanner/src/data_source/rugcheck"
	"token-scanner/src/interfaces"
	"token-scanner/src/logger"
	"token-scanner/src/models"
	"token-scanner/src/narrative"
	"token-scanner/src/network"
)

// app holds the wired components shared by every command.
type app struct {
	sources  *datasource.MultiSourceManager
	analyzer interfaces.IAnalyzer
	narrator interfaces.INarrator
}

// -----------------------------------------------------------------------------

// setupApp wires network, providers, analysis and narrative. Every component
// logs through a named child of appLogger so they share its output.
func setupApp(config *models.MConfig, appLogger *logger.Logger) *app {
	networkManager := setupNetwork(config, appLogger)
	sources := setupDataSources(config, appLogger, networkManager)

	return &app{
		sources:  sources,
		analyzer: setupAnalysis(sources, appLogger),
		narrator: narrative.New(config.Narrative, appLogger.Named("Narrative")),
	}
}

// -----------------------------------------------------------------------------

// setupNetwork initializes the network manager
func setupNetwork(config *models.MConfig, appLogger *logger.Logger) interfaces.INetworkManager {
	return network.NewAsyncNetworkManager(config, appLogger.Named("NetworkManager"))
}

// -----------------------------------------------------------------------------

// setupDataSources builds both providers and wraps them in a manager
func setupDataSources(config *models.MConfig, appLogger *logger.Logger, networkManager interfaces.INetworkManager) *datasource.MultiSourceManager {
	appLogger.Info("Initializing data sources...")

	risk := rugcheck.NewRugCheckSource(config.Providers.Risk, networkManager, appLogger.Named("RugCheck"))
	market := dexscreener.NewDexScreenerSource(config.Providers.Market, networkManager, appLogger.Named("DexScreener"))

	appLogger.Info("Risk source: %s (%s)", risk.Name(), config.Providers.Risk.BaseURL)
	appLogger.Info("Market source: %s (%s, chain=%s)", market.Name(), config.Providers.Market.BaseURL, config.Providers.Market.Chain)

	return datasource.NewMultiSourceManager(risk, market, appLogger.Named("MultiSourceManager"))
}

// -----------------------------------------------------------------------------

// setupAnalysis initializes the analysis facade
func setupAnalysis(sources *datasource.MultiSourceManager, appLogger *logger.Logger) *analysis.AnalysisFacade {
	return analysis.NewAnalysisFacade(sources, appLogger.Named("Analysis"))
}
