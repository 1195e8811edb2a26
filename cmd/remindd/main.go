package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/scheduler"
	"github.com/sandeepkv93/remindd/internal/storage"
	"github.com/sandeepkv93/remindd/internal/store"
	"github.com/sandeepkv93/remindd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "remindd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	dataDir, err := resolveDataDir(cfg)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logger, closeLog := openLogger(filepath.Join(dataDir, "remindd.log"))
	defer closeLog()

	doc := storage.NewDocument(filepath.Join(dataDir, "reminders.json"))
	reminders := store.Open(doc, store.WithLogger(logger))

	// A broken firing log degrades the history screen, nothing else.
	var history update.HistorySource
	firingLog, err := storage.OpenFiringLog(filepath.Join(dataDir, "history.db"))
	if err != nil {
		logger.Warn("firing history disabled", "error", err)
	} else {
		defer firingLog.Close()
		history = firingLog
		pruneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
		if n, perr := firingLog.Prune(pruneCtx, cutoff); perr != nil {
			logger.Warn("prune firing history failed", "error", perr)
		} else if n > 0 {
			logger.Info("pruned firing history", "removed", n, "cutoff", cutoff)
		}
		cancel()
	}

	notifier := scheduler.NewNotifier(
		scheduler.WithQueueSize(cfg.QueueSize),
		scheduler.WithDrainPeriod(time.Duration(cfg.DrainMillis)*time.Millisecond),
		scheduler.WithNotifierLogger(logger),
	)
	engine := scheduler.NewEngine(reminders, notifier,
		scheduler.WithTickInterval(time.Duration(cfg.TickMillis)*time.Millisecond),
		scheduler.WithEngineLogger(logger),
	)

	var desktop update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		desktop = update.ExecDesktopNotifier{}
	}

	m := update.NewModelWithConfig(reminders, history, desktop, cfg)
	program := tea.NewProgram(m)

	notifier.SetCallback(func(r model.Reminder) {
		now := time.Now()
		if history != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			if err := firingLog.Record(ctx, storage.Firing{
				ReminderID: r.ID,
				Title:      r.Title,
				FiredAt:    now,
				Delivered:  true,
			}); err != nil {
				logger.Warn("record firing failed", "id", r.ID, "error", err)
			}
			cancel()
		}
		program.Send(update.ReminderDueMsg{Reminder: r, At: now})
	})
	notifier.Bind(update.UIDispatcher{Sender: program})

	engine.Start()
	defer engine.Stop()

	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func resolveDataDir(cfg update.RuntimeConfig) (string, error) {
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "remindd"), nil
}

func openLogger(path string) (*slog.Logger, func()) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { _ = f.Close() }
}
