package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peerlink/signaling-server/internal/app"
	"github.com/peerlink/signaling-server/internal/config"
	"github.com/peerlink/signaling-server/internal/log"
)

func main() {
	var (
		configPath string
		addr       string
		logLevel   string
		maxPeers   int
		staticDir  string
	)

	root := &cobra.Command{
		Use:          "signaling-server",
		Short:        "WebSocket signaling relay for WebRTC peers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return err
			}
			logger.Info().Str("config", path).Msg("configuration loaded")

			// Flags win over config file and env.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("max-peers") {
				cfg.MaxPeersPerRoom = maxPeers
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.StaticDir = staticDir
			}
			logger = log.New(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().
				Str("addr", cfg.Addr).
				Int("max_peers_per_room", cfg.MaxPeersPerRoom).
				Msg("starting signaling server")
			if err := app.New(cfg, logger).Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml")
	flags.StringVar(&addr, "addr", ":8080", "HTTP listen address")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.IntVar(&maxPeers, "max-peers", 32, "maximum peers per room, 0 disables the overflow policy")
	flags.StringVar(&staticDir, "static-dir", "", "directory with the browser client to serve")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
