// dungeond serves dungeon generation over a WebSocket.
//
// Clients send {"seed": 42, "config": {...}} on /ws and receive the
// generated dungeon as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lawnchairsociety/dungeongen/internal/config"
	"github.com/lawnchairsociety/dungeongen/internal/logger"
	"github.com/lawnchairsociety/dungeongen/internal/server"
	"github.com/lawnchairsociety/dungeongen/internal/store"
)

func main() {
	configFile := flag.String("config", "data/dungeond.yaml", "Path to service config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging config: %v\n", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configFile, *addr); err != nil {
		logger.Error("dungeond stopped", "error", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(configFile, addr string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(cfg.WebSocket.AllowedOrigins) == 0 {
		logger.Info("websocket origin policy", "mode", "same-origin")
	} else {
		logger.Info("websocket origin policy", "allowed", cfg.WebSocket.AllowedOrigins)
	}

	var archive server.Archive
	if cfg.Storage.Enabled {
		s, err := store.Open(cfg.Storage.Config)
		if err != nil {
			return err
		}
		defer s.Close()
		archive = s
		logger.Info("archive enabled", "driver", s.Driver())
	}

	srv := server.New(cfg, archive)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe(addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errc:
		return err
	case sig := <-sigChan:
		logger.Notice("shutting down", "signal", sig.String(), "connections", srv.Connections())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errc
}
