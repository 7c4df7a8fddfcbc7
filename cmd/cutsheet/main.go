package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/cutsheet/internal/analyzer"
	"github.com/nguyentantai21042004/cutsheet/internal/cache"
	"github.com/nguyentantai21042004/cutsheet/internal/config"
	"github.com/nguyentantai21042004/cutsheet/internal/history"
	"github.com/nguyentantai21042004/cutsheet/internal/llm"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"github.com/nguyentantai21042004/cutsheet/internal/processor"
	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
	"github.com/nguyentantai21042004/cutsheet/internal/templates"
	"github.com/nguyentantai21042004/cutsheet/internal/watcher"
	"github.com/nguyentantai21042004/cutsheet/internal/web"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, logCloser, err := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	log.Info(ctx, "========================================")
	log.Info(ctx, "cutsheet: subtitle to edit list service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Model: %s (%d API keys)", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	log.Info(ctx, "Max Concurrent Analyses: %d", cfg.Performance.MaxConcurrent)

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "%v", err)
		logCloser.Close()
		os.Exit(1)
	}
	log.Info(ctx, "cutsheet stopped")
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	// Initialize dependencies
	store, err := history.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	tpl, err := templates.New(cfg.Paths.Templates, log)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	log.Info(ctx, "Templates: %v", tpl.List())

	completer, err := llm.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}

	opts := analyzer.DefaultOptions()
	opts.Temperature = cfg.Analysis.Temperature
	opts.MaxTokens = cfg.Analysis.MaxTokens
	opts.MaxAttempts = cfg.Analysis.MaxAttempts
	opts.BaseDelay = cfg.Analysis.BaseDelay
	opts.AttemptTimeout = cfg.Analysis.AttemptTimeout
	an := analyzer.New(completer, cache.New(cfg.Cache.Capacity, cfg.Cache.TTL), opts, log)

	proc := processor.New(cfg, subtitle.New(log), tpl, an, store, log)

	inbox, err := watcher.New(cfg.Paths.Inbox, proc.ProcessFile, log, watcher.Options{
		Extensions:    []string{".srt", ".vtt"},
		Ops:           fsnotify.Create,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		SettleDelay:   500 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("watch inbox: %w", err)
	}
	defer inbox.Stop()

	tplWatcher, err := watcher.New(cfg.Paths.Templates, func(context.Context, string) error {
		return tpl.Reload()
	}, log, watcher.Options{
		Extensions:    []string{".txt"},
		Ops:           fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename,
		MaxConcurrent: 1,
		SettleDelay:   200 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("watch templates: %w", err)
	}
	defer tplWatcher.Stop()

	srv := web.New(cfg, proc, tpl, an, store, log)

	// Create context with cancellation
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "cutsheet is ready!")
	log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Templates: %s", cfg.Paths.Templates)
	log.Info(ctx, "HTTP: %s", cfg.HTTP.Addr)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// The deferred Stop/Close calls above must only run after every loop has drained.
	err = runLoops(ctx,
		loop{"inbox watcher", inbox.Start},
		loop{"template watcher", tplWatcher.Start},
		loop{"http server", srv.Run},
	)
	log.Info(ctx, "All workers stopped")
	return err
}

type loop struct {
	name string
	run  func(ctx context.Context) error
}

// runLoops runs every loop until ctx is canceled or one of them fails, and returns
// only once all of them have returned.
func runLoops(ctx context.Context, loops ...loop) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range loops {
		g.Go(func() error {
			if err := l.run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s: %w", l.name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Templates,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
