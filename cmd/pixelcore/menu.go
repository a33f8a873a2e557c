package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixelcore/internal/platform/tui"
	"github.com/vovakirdan/pixelcore/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an app picker menu",
	Long: `Start pixelcore in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start an app.
When an app ends, you return to the menu. Tab opens the run history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Start app
  Tab          - Run history
  Esc/B        - Back to menu (inside an app)
  Q            - Quit

Examples:
  pixelcore menu
  pixelcore menu --fps 30
  pixelcore menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: the menu needs a terminal")
		os.Exit(1)
	}

	ev, err := setup(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer ev.close()
	store := ev.openStore()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	notice := ""
	for cmd.Context().Err() == nil {
		result, err := tui.RunMenu(width, height, notice)
		if err != nil {
			ev.logger.Error("menu failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		width, height = result.Width, result.Height
		notice = ""

		switch {
		case result.Quit:
			return

		case result.WantsRuns:
			back, err := tui.RunRuns(store, width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !back {
				return
			}

		case result.AppID != "":
			app, err := registry.Create(result.AppID)
			if err != nil {
				notice = err.Error()
				continue
			}
			res, err := tui.Run(cmd.Context(), app, ev.settings, tui.Options{
				AppID:      result.AppID,
				Backend:    backendTUI,
				Store:      store,
				Logger:     ev.logger,
				BackCloses: true,
			})
			if err != nil {
				ev.logger.Error("app failed", "app", result.AppID, "error", err)
				notice = fmt.Sprintf("%s: %v", registry.Title(result.AppID), err)
			}
			if res.Quit {
				return
			}
		}
	}
}
