package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixelcore/internal/platform/tui"
	"github.com/vovakirdan/pixelcore/internal/registry"
	"github.com/vovakirdan/pixelcore/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTop   bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [app]",
	Short: "Show run history",
	Long: `Display recorded runs of an app: frames, duration, average FPS
and score. Without an app, opens the interactive history browser.

Examples:
  pixelcore runs
  pixelcore runs snake
  pixelcore runs snake --top
  pixelcore runs snake --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTop, "top", false, "Order by score instead of recency")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs of the app")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		browseRuns(store)
		return
	}

	appID := args[0]
	if !registry.Exists(appID) {
		fmt.Fprintf(os.Stderr, "Error: unknown app %q\n", appID)
		fmt.Fprintln(os.Stderr, "Run 'pixelcore list' to see available apps.")
		return
	}

	if flagRunsClear {
		if err := store.ClearRuns(appID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared run history of %s.\n", registry.Title(appID))
		return
	}

	printRuns(store, appID)
}

func browseRuns(store *storage.Store) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: the history browser needs a terminal; pass an app id")
		return
	}
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	if _, err := tui.RunRuns(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func printRuns(store *storage.Store, appID string) {
	var (
		runs []storage.RunEntry
		err  error
	)
	if flagRunsTop {
		runs, err = store.TopScores(appID, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(appID, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Runs - %s\n", registry.Title(appID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'pixelcore run %s' to record the first one!\n", appID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %-6s  %-6s  %s\n", "#", "Backend", "Frames", "Time", "FPS", "Score", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %-6s  %-6s  %s\n", "-", "-------", "------", "----", "---", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-8d  %-8s  %-6.1f  %-6d  %s\n",
			i+1, r.Backend, r.Frames, r.Duration.Round(100*time.Millisecond), r.AvgFPS, r.Score,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(appID); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("%d runs, %d frames, best score %d\n", stats.Runs, stats.TotalFrames, stats.HighScore)
	}
}
