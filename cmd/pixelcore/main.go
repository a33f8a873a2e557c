// pixelcore runs pixel-framebuffer apps in a terminal, a desktop window,
// headless, or over SSH.
//
// Usage:
//
//	pixelcore list                 - List registered apps
//	pixelcore run <app>            - Run an app in the terminal or a window
//	pixelcore menu                 - Pick apps interactively
//	pixelcore snapshot <app>       - Run headless and save the last frame
//	pixelcore serve                - Start SSH server for remote sessions
//	pixelcore runs [app]           - Show run history
//
// Global flags:
//
//	--config <path>     - Settings file (default: ./settings.yaml, ~/.pixelcore/settings.yaml)
//	--db <path>         - Run history database (default: ~/.pixelcore/runs.db)
//	--log-level <lvl>   - Override the configured log level
//	--log-file <path>   - Log destination for terminal backends
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/engine"
	"github.com/vovakirdan/pixelcore/internal/storage"

	// Import apps to register them
	_ "github.com/vovakirdan/pixelcore/internal/apps/flappy"
	_ "github.com/vovakirdan/pixelcore/internal/apps/snake"
	_ "github.com/vovakirdan/pixelcore/internal/apps/tiles"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLogLevel  string
	flagLogFile   string
	flagFPS       int
	flagNoHistory bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelcore",
	Short: "pixelcore - a small 2D pixel framebuffer engine",
	Long: `pixelcore drives apps that draw into a fixed-size pixel framebuffer
and presents them in a terminal, a desktop window, headless, or over SSH.

Available commands:
  list      - Show all registered apps
  run       - Run an app directly
  menu      - Interactive app picker
  snapshot  - Run headless and save a PNG of the last frame
  serve     - Start SSH server for remote sessions
  runs      - View run history

Examples:
  pixelcore list
  pixelcore run snake
  pixelcore run tiles --backend window
  pixelcore snapshot snake --frames 120 -o snake.png
  pixelcore serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pixelcore/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for terminal backends (default: discard)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = from settings)")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Do not record runs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// env is what every command starts from.
type env struct {
	settings config.Settings
	source   string
	logger   *log.Logger
	closers  []io.Closer
}

// setup builds the logger and resolves settings. Terminal backends own the
// screen, so they log only to --log-file.
func setup(terminal bool) (*env, error) {
	var out io.Writer = os.Stderr
	ev := &env{}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		ev.closers = append(ev.closers, f)
	case terminal:
		out = io.Discard
	}

	ev.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "pixelcore",
	})

	ev.settings, ev.source = config.Load(flagConfig, ev.logger)
	ev.logger.SetLevel(ev.settings.LogLevel())
	if flagLogLevel != "" {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			ev.close()
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		ev.logger.SetLevel(lvl)
	}
	if flagFPS > 0 {
		ev.settings.Render.TickRate = flagFPS
	}

	ev.logger.Debug("settings resolved", "source", ev.source)
	return ev, nil
}

// openStore opens the run history, or returns nil when it is disabled or
// unavailable. Apps still run without it.
func (ev *env) openStore() *storage.Store {
	if flagNoHistory {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		ev.logger.Warn("could not open run history", "error", err)
		return nil
	}
	ev.closers = append(ev.closers, store)
	return store
}

// record saves a finished run when a store is available.
func (ev *env) record(store *storage.Store, appID, backend string, e *engine.Engine, app engine.App) {
	if store == nil || e == nil {
		return
	}
	if _, err := store.RecordRun(appID, backend, e, app); err != nil {
		ev.logger.Warn("could not save run", "app", appID, "error", err)
	}
}

func (ev *env) close() {
	for i := len(ev.closers) - 1; i >= 0; i-- {
		ev.closers[i].Close()
	}
	ev.closers = nil
}
