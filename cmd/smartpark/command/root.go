// Package command provides the smartpark CLI. The root command runs the
// HTTP server; the other commands act on the stored parking data directly.
//
//	./smartpark [serve]
//	./smartpark export [-o smartpark-data.json]
//	./smartpark slots add <zone> <count>
//	./smartpark reset
//	./smartpark store clear
//	./smartpark hash-password [--cost 10] < password.txt
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/smartpark-backend/internal/app"
	"github.com/nekogravitycat/smartpark-backend/internal/config"
	"github.com/nekogravitycat/smartpark-backend/internal/kv"
	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "smartpark",
	Short: "Parking slot booking service",
	Long: `SmartPark tracks the car, bike and bicycle zones of a parking site,
lets users reserve free slots for a time window and prices them with
a flat base plan plus an hourly surcharge.
Without a sub-command it starts the HTTP API server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the rootCmd and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openParking loads the offline configuration, opens the configured store
// and builds a parking service on top of it.
func openParking(ctx context.Context) (parking.Service, func(), error) {
	cfg, err := config.LoadOffline()
	if err != nil {
		return nil, nil, fmt.Errorf("config.LoadOffline: %w", err)
	}
	log.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := kv.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}

	svc := parking.NewService(ctx, parking.Options{
		Store: store,
		Rand:  app.SeededRand(cfg.Seed),
	})
	return svc, closeStore, nil
}
