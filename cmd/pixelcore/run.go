package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixelcore/internal/engine"
	"github.com/vovakirdan/pixelcore/internal/platform/tui"
	"github.com/vovakirdan/pixelcore/internal/platform/window"
	"github.com/vovakirdan/pixelcore/internal/registry"
)

// Backend names, also recorded in run history.
const (
	backendTUI    = "tui"
	backendWindow = "window"
)

var (
	flagBackend       string
	flagScreenshotDir string
)

var runCmd = &cobra.Command{
	Use:   "run <app>",
	Short: "Run an app",
	Long: `Start the specified app in the terminal or in a desktop window.

Controls:
  Arrows/WASD/hjkl  - Move
  Enter/Space       - Confirm
  Esc/B             - Back
  P                 - Pause
  R                 - Restart
  Ctrl+S/F12        - Screenshot
  Q/Ctrl+C          - Quit

Examples:
  pixelcore run snake
  pixelcore run tiles --backend window
  pixelcore run snake --fps 30 --log-file pixelcore.log`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagBackend, "backend", backendTUI, "Presentation backend: tui or window")
	runCmd.Flags().StringVar(&flagScreenshotDir, "screenshots", "screenshots", "Directory for screenshots")
}

func runRun(cmd *cobra.Command, args []string) {
	appID := args[0]

	if !registry.Exists(appID) {
		fmt.Fprintf(os.Stderr, "Error: unknown app %q\n", appID)
		fmt.Fprintln(os.Stderr, "Run 'pixelcore list' to see available apps.")
		os.Exit(1)
	}
	if flagBackend != backendTUI && flagBackend != backendWindow {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q (want tui or window)\n", flagBackend)
		os.Exit(1)
	}
	if flagBackend == backendTUI && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: the tui backend needs a terminal; try --backend window or 'pixelcore snapshot'")
		os.Exit(1)
	}

	ev, err := setup(flagBackend == backendTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store := ev.openStore()

	app, err := registry.Create(appID)
	if err != nil {
		ev.close()
		fmt.Fprintf(os.Stderr, "Error creating app: %v\n", err)
		os.Exit(1)
	}

	var runErr error
	switch flagBackend {
	case backendTUI:
		_, runErr = tui.Run(cmd.Context(), app, ev.settings, tui.Options{
			AppID:   appID,
			Backend: backendTUI,
			Store:   store,
			Logger:  ev.logger,
			Engine:  []engine.Option{engine.WithScreenshotDir(flagScreenshotDir)},
		})
	case backendWindow:
		var e *engine.Engine
		e, runErr = window.Run(cmd.Context(), app, ev.settings, ev.logger, engine.WithScreenshotDir(flagScreenshotDir))
		if runErr == nil {
			ev.record(store, appID, backendWindow, e, app)
		}
	}

	ev.close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", runErr)
		os.Exit(1)
	}
}
