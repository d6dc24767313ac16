package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"salesdash/internal/config"
	"salesdash/internal/log"
	"salesdash/internal/server"
	"salesdash/internal/util"
)

var (
	port    = flag.Int("port", 0, "HTTP port (overrides config.toml)")
	devMode = flag.Bool("dev", false, "development mode")
	dataDir = flag.String("dataDir", "", "data directory (overrides config.toml)")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger := log.New(cfg.Server.DevMode)

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("salesdash listening", "addr", addr)
		if err := srv.Run(addr); err != nil {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	if cfg.Server.DevMode {
		if err := util.OpenBrowser(fmt.Sprintf("http://localhost:%d", cfg.Server.Port)); err != nil {
			logger.Warn("could not open browser", "err", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := srv.Close(); err != nil {
		logger.Error("close failed", "err", err)
	}
}
