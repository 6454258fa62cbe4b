package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/Krimson/growth-monitory/docs" // Swagger docs
	"github.com/Krimson/growth-monitory/internal/config"
	"github.com/Krimson/growth-monitory/internal/growth"
	"github.com/Krimson/growth-monitory/internal/journal"
	"github.com/Krimson/growth-monitory/internal/kpsp"
	"github.com/Krimson/growth-monitory/internal/logger"
	"github.com/Krimson/growth-monitory/internal/reftable"
	"github.com/Krimson/growth-monitory/internal/service"
)

// @title PeduliGiziBalita Growth API
// @version 3.3.0
// @description WHO child growth z-scores, Permenkes 2020 classification and KPSP developmental screening.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "growthd",
		Short: "Child growth monitoring service",
		Long: `growthd computes WHO child growth z-scores (WAZ, HAZ, WHZ, BAZ, HCZ),
classifies them per Permenkes No. 2/2020 and scores KPSP developmental
screening questionnaires.

Run "growthd serve" to start the HTTP, gRPC and websocket servers, or use
the zscore and kpsp subcommands for one-off calculations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.LogLevel = "debug"
			}
			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg, a.logger = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.serveCmd(),
		a.zscoreCmd(),
		a.kpspCmd(),
		a.versionCmd(),
	)
	return root
}

// loadTables returns the embedded WHO tables unless dir is set.
func loadTables(dir string) (*reftable.Set, error) {
	if dir == "" {
		return reftable.LoadEmbedded()
	}
	return reftable.LoadDir(dir)
}

// newService builds the growth service. tracker may be nil.
func (a *app) newService(tracker *journal.Manager) (*service.GrowthService, error) {
	tables, err := loadTables(a.cfg.ReferenceTableDir)
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}
	a.logger.Debug("reference tables loaded", zap.Strings("indices", tables.Indices()))

	return service.NewGrowthService(
		growth.NewEngine(growth.NewStandards(tables)),
		kpsp.NewEvaluator(kpsp.DefaultBank()),
		tracker,
		a.logger,
	), nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "growthd %s\n", service.Version)
		},
	}
}
