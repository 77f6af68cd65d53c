package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/karbonsync/cmd/invoices/internal/view"
	"github.com/MrJamesThe3rd/karbonsync/internal/config"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
)

func main() {
	if err := run(); err != nil {
		slog.Error("invoice export failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, envPath, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	runID := uuid.NewString()
	newLogger := func(w io.Writer) *slog.Logger {
		return slog.New(slog.NewTextHandler(io.MultiWriter(w, logFile), nil)).With("run", runID)
	}

	slog.SetDefault(newLogger(os.Stderr))

	if envPath != "" {
		slog.Info("loaded environment", "path", envPath)
	}

	warnTokenExpiry(cfg.Karbon.BearerToken, time.Now())

	choices, err := view.AskChoices()
	if err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}

	if !choices.Any() {
		slog.Info("nothing selected")
		return nil
	}

	client := karbon.NewClient(karbon.Options{
		BaseURL:     cfg.Karbon.BaseURL,
		BearerToken: cfg.Karbon.BearerToken,
		AccessKey:   cfg.Karbon.AccessKey,
	}, nil)

	stages := buildStages(cfg, client, choices, time.Now)

	model := view.NewProgressModel(context.Background(), stages)
	defer model.Close()

	stderrLogger := slog.Default()
	slog.SetDefault(newLogger(model.LogWriter()))

	final, err := tea.NewProgram(model).Run()

	slog.SetDefault(stderrLogger)

	if err != nil {
		return fmt.Errorf("running progress view: %w", err)
	}

	pm, ok := final.(view.ProgressModel)
	if !ok {
		return errors.New("unexpected final model")
	}

	return pm.Err()
}

func warnTokenExpiry(token string, now time.Time) {
	exp, ok := karbon.TokenExpiry(token)
	if !ok {
		return
	}

	if exp.Before(now) {
		slog.Warn("bearer token has expired", "expired_at", exp)
	}
}
