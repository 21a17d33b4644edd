package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/five82/rastreo/internal/logging"
	"github.com/five82/rastreo/internal/mockapi"
)

type settings struct {
	Addr      string `env:"RASTREO_MOCK_ADDR, default=:5000"`
	LogLevel  string `env:"RASTREO_LOG_LEVEL, default=info"`
	LogPretty bool   `env:"RASTREO_LOG_PRETTY, default=true"`
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cfg settings
	if err := envconfig.Process(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "rastreo-mockapi: read environment: %v\n", err)
		return 1
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "rastreo-mockapi: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	store := mockapi.NewStore(mockapi.SeedShipments(time.Now())...)
	srv := mockapi.New(store, mockapi.WithLogger(logger))
	if err := srv.Start(ctx, cfg.Addr); err != nil {
		logger.Error().Err(err).Msg("mock api stopped")
		return 1
	}
	return 0
}
