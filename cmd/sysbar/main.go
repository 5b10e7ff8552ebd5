package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/ashpool/sysbar/internal/config"
	"codeberg.org/ashpool/sysbar/internal/history"
	"codeberg.org/ashpool/sysbar/internal/items"
	"codeberg.org/ashpool/sysbar/internal/logger"
	"codeberg.org/ashpool/sysbar/internal/pid"
	"codeberg.org/ashpool/sysbar/internal/scheduler"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer pid.Remove()

	manager := items.Build(cfg)
	if len(manager.Items()) == 0 {
		logger.Warn().Msg("No items available; check the items list in the configuration")
	}

	sched := scheduler.New(nil)
	manager.StartAll(sched)

	var recorder history.Recorder
	if cfg.History {
		var err error
		recorder, err = history.NewRepository(history.Config{DBPath: cfg.Database})
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize sample history; continuing without it")
			recorder = nil
		} else {
			defer recorder.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	// Console sink: publish every item's render state once per global
	// refresh interval, recording history when enabled.
	interval := time.Duration(cfg.RefreshSecs) * time.Second
	if err := sched.Register("render", interval, func() {
		publish(ctx, manager, recorder)
	}); err != nil {
		logger.Fatal().Err(err).Msg("failed to register render task")
	}

	if err := sched.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("error in scheduler loop")
	}

	manager.StopAll(sched)
	logger.Info().Msg("Exiting...")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func publish(ctx context.Context, manager *items.Manager, recorder history.Recorder) {
	now := time.Now()
	for _, item := range manager.Items() {
		state := item.Render()

		logger.Info().
			Str("item", item.Name()).
			Str("text", state.Text).
			Str("icon", state.Icon).
			Bool("stale", state.Stale).
			Msg("")

		if recorder == nil {
			continue
		}
		entry := &history.Entry{
			At:       now,
			Item:     item.Name(),
			Text:     state.Text,
			Stale:    state.Stale,
			Failures: item.Failures(),
		}
		if err := recorder.Record(ctx, entry); err != nil {
			logger.Error().Err(err).Msg("failed to record sample")
		}
	}
}
