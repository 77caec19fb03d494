package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/TFMV/tetherlayout/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		port int
		tps  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation in the background and serve it over HTTP",
		Long: `Tick the layout continuously and expose it over HTTP.

  GET  /              live SVG page
  GET  /visualize     snapshot (?format=svg|ascii|json|dot)
  GET  /api/graph     snapshot as JSON
  GET  /api/stats     tick counters and diagnostics
  POST /api/drag      {"node":3,"x":10,"y":-4,"has_position":true}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("tps") {
				cfg.Server.TPS = tps
			}

			driver, err := buildDriver(cfg.Simulation)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			fmt.Printf("  %s  %s\n", brand.Sprint("tetherlayout"), subtle.Sprintf("http://localhost:%d", cfg.Server.Port))
			srv := server.New(&server.Config{
				Port:      cfg.Server.Port,
				TPS:       cfg.Server.TPS,
				DebugMode: debugMode,
			}, driver)
			if err := srv.Start(ctx); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			log.Println("Server stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	cmd.Flags().IntVar(&tps, "tps", 60, "Simulation ticks per second")

	return cmd
}
