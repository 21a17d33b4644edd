package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/rastreo/internal/backend"
	"github.com/five82/rastreo/internal/config"
	"github.com/five82/rastreo/internal/logging"
	"github.com/five82/rastreo/internal/prefs"
	"github.com/five82/rastreo/internal/tracking"
	"github.com/five82/rastreo/internal/ui"
)

// Options configure the rastreo application. Non-empty fields override the
// loaded config.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/rastreo/prefs.toml
	APIURL     string
	LogLevel   string
}

// Run boots the rastreo TUI until the operator quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = closeLog() }()

	client, err := backend.NewClient(cfg.APIURL,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	theme := pickTheme(cfg.Theme, prefsPath, logger)
	logger.Info().Str("api_url", client.BaseURL()).Str("theme", theme).Msg("rastreo starting")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tracking.Event, eventBuffer)
	ctrl := tracking.NewController(client, channelSink(ctx, events), tracking.WithLogger(logger))
	errc := startController(ctx, ctrl, events, logger)

	uiErr := ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Events:     events,
		ThemeName:  theme,
		APIURL:     client.BaseURL(),
		PrefsPath:  prefsPath,
		Logger:     &logger,
	})
	cancel()
	ctrlErr := <-errc

	return shutdownError(ctx, uiErr, ctrlErr, logger)
}

func loadConfig(ctx context.Context, opts Options) (config.Config, error) {
	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// pickTheme prefers a theme saved from the UI over the configured one.
func pickTheme(configured, prefsPath string, log zerolog.Logger) string {
	p, err := prefs.Load(prefsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", prefsPath).Msg("ignoring unreadable prefs")
		return configured
	}
	if p.Theme != "" {
		return p.Theme
	}
	return configured
}

// shutdownError folds the UI and controller results into Run's error. A UI
// killed by cancellation is a normal exit.
func shutdownError(ctx context.Context, uiErr, ctrlErr error, log zerolog.Logger) error {
	if uiErr != nil && errors.Is(uiErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		uiErr = nil
	}
	if uiErr != nil {
		log.Error().Err(uiErr).Msg("ui exited with error")
		return fmt.Errorf("run ui: %w", uiErr)
	}
	if ctrlErr != nil {
		return fmt.Errorf("run controller: %w", ctrlErr)
	}
	log.Info().Msg("rastreo stopped")
	return nil
}
