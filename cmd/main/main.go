package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token-scanner/src/config"
	"token-scanner/src/logger"
	"token-scanner/src/models"

	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	narrate    bool
	outPath    string
	force      bool

	rootCmd = &cobra.Command{
		Use:   "token-scanner",
		Short: "Rug-risk scanner for Solana tokens",
		Long: `token-scanner merges a RugCheck risk report and DexScreener market data
into one token profile and rates it high, medium, low or clean.`,
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP, websocket and gRPC servers",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	scanCmd = &cobra.Command{
		Use:   "scan [contract address]",
		Short: "Analyze one token and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the scanner configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to a file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/default.yaml", "path to config file")

	scanCmd.Flags().BoolVar(&narrate, "narrate", false, "also generate the written assessment")

	configInitCmd.Flags().StringVarP(&outPath, "out", "o", "config/default.yaml", "where to write the file")
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(serveCmd, scanCmd, configCmd)
}

// -----------------------------------------------------------------------------

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

func runServe(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	appLogger := logger.NewLogger(conf.MConfig, conf.Name)
	app := setupApp(conf.MConfig, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := startServers(app, conf.MConfig, appLogger)

	select {
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received")
	case err := <-servers.errs:
		appLogger.Error("Server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	servers.shutdown(shutdownCtx)

	appLogger.Info("Shutdown complete.")
	return nil
}

// -----------------------------------------------------------------------------

func runScan(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	appLogger := logger.NewLogger(conf.MConfig, conf.Name)
	appLogger.SetOutput(cmd.ErrOrStderr())
	app := setupApp(conf.MConfig, appLogger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analysis, err := app.analyzer.Analyze(ctx, args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if !narrate {
		return enc.Encode(analysis)
	}

	text, err := app.narrator.Narrate(ctx, analysis)
	if err != nil {
		return err
	}
	return enc.Encode(narratedAnalysis{Analysis: analysis, Narrative: text})
}

type narratedAnalysis struct {
	*models.Analysis
	Narrative string `json:"narrative"`
}

// -----------------------------------------------------------------------------

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(outPath); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", outPath)
	}

	if err := config.Default().Save(outPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", outPath)
	return nil
}
