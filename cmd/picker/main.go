package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lzx-sdu/stock-picker-auto/internal/config"
	"github.com/lzx-sdu/stock-picker-auto/internal/logging"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
	"github.com/lzx-sdu/stock-picker-auto/internal/portfolio"
	"github.com/lzx-sdu/stock-picker-auto/internal/provider"
	"github.com/lzx-sdu/stock-picker-auto/internal/recorder"
	"github.com/lzx-sdu/stock-picker-auto/internal/report"
	"github.com/lzx-sdu/stock-picker-auto/internal/runner"
	"github.com/lzx-sdu/stock-picker-auto/internal/scheduler"
	"github.com/lzx-sdu/stock-picker-auto/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stock-picker starting...")

	var (
		cfgPath  = flag.String("config", "configs/config.yaml", "path to YAML config")
		schedule = flag.Bool("schedule", false, "run on the configured cron schedule instead of once")
	)
	flag.Parse()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	logger := logging.New(log.Default())
	logger.Infof("preset: %s", cfg.Preset)

	// Data source: explicit universe list from config skips the list API.
	em := provider.NewEastMoneyProvider(cfg.DataSource.ListURL, cfg.DataSource.KlineURL,
		cfg.Screening.MinMarketCap, logger)
	var universe provider.UniverseProvider = em
	if len(cfg.DataSource.Universe) > 0 {
		instruments := make([]model.Instrument, len(cfg.DataSource.Universe))
		for i, code := range cfg.DataSource.Universe {
			instruments[i] = model.Instrument{Code: code}
		}
		universe = &provider.StaticUniverse{Instruments: instruments}
		logger.Infof("using static universe of %d codes", len(instruments))
	}

	analyzer := strategy.NewAnalyzer(cfg)
	run := runner.New(em, universe, analyzer, runner.Options{
		MaxInstruments: cfg.Runner.MaxInstruments,
		LookbackDays:   cfg.Runner.LookbackDays,
		WorkerCount:    cfg.Runner.WorkerCount,
		BatchSize:      cfg.Runner.BatchSize,
		FetchDelay:     time.Duration(cfg.Runner.FetchDelayMS) * time.Millisecond,
		IncludeAll:     cfg.Runner.IncludeAll,
		MinPrice:       cfg.Screening.MinPrice,
		MaxPrice:       cfg.Screening.MaxPrice,
	}, logger)

	rec := buildRecorder(cfg, logger)
	defer rec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	screen := func() {
		candidates, err := run.Run(ctx)
		if err != nil {
			logger.Errorf("screening run: %v", err)
			return
		}
		alloc := portfolio.Allocate(candidates, cfg.Portfolio.MaxPositions)
		if err := rec.RecordRun(candidates, alloc); err != nil {
			logger.Errorf("record run: %v", err)
		}
		fmt.Println(report.FormatRunSummary(candidates, alloc))
	}

	if !*schedule {
		screen()
		log.Println("[INFO] stock-picker done")
		return
	}

	sched := scheduler.New(logger)
	if err := sched.Register(cfg.Schedule.Cron, screen); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] stock-picker is running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] stock-picker stopped")
}

// buildRecorder wires the configured sinks; a failed sink degrades to noop
// rather than aborting the run.
func buildRecorder(cfg *config.Config, logger logging.Logger) recorder.Recorder {
	var sinks recorder.Multi
	if cfg.Output.CSVDir != "" {
		cr, err := recorder.NewCSVRecorder(cfg.Output.CSVDir, logger)
		if err != nil {
			logger.Warnf("init csv recorder failed: %v", err)
		} else {
			sinks = append(sinks, cr)
		}
	}
	if cfg.Output.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Output.SQLitePath), 0o755); err != nil {
			logger.Warnf("create sqlite dir failed: %v", err)
		} else if sr, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath, logger); err != nil {
			logger.Warnf("init sqlite recorder failed: %v", err)
		} else {
			sinks = append(sinks, sr)
		}
	}
	if len(sinks) == 0 {
		return recorder.NewNoopRecorder()
	}
	return sinks
}
