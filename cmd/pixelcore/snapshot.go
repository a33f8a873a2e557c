package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelcore/internal/platform/headless"
	"github.com/vovakirdan/pixelcore/internal/registry"
)

const backendHeadless = "headless"

var (
	flagFrames   int
	flagOutput   string
	flagScript   string
	flagPace     time.Duration
	flagRecord bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <app>",
	Short: "Run an app headless and save its last frame",
	Long: `Run the specified app without a display for a fixed number of
iterations and write the last presented frame as PNG.

Scripted input injects actions at given iterations (counted from 0):
  --script "0:right,10:down+confirm"

Action names: up, down, left, right, confirm, back, pause, restart,
screenshot, quit.

Examples:
  pixelcore snapshot tiles
  pixelcore snapshot snake --frames 300 --pace 16ms -o snake.png
  pixelcore snapshot snake --script "5:down,20:left"`,
	Args: cobra.ExactArgs(1),
	Run:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().IntVar(&flagFrames, "frames", headless.DefaultFrames, "Iterations to run")
	snapshotCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "PNG output path (default: <app>.png)")
	snapshotCmd.Flags().StringVar(&flagScript, "script", "", "Scripted input, iteration:action[+action],...")
	snapshotCmd.Flags().DurationVar(&flagPace, "pace", 0, "Delay between iterations (0 = as fast as possible)")
	snapshotCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in history")
}

func runSnapshot(cmd *cobra.Command, args []string) {
	appID := args[0]

	if !registry.Exists(appID) {
		fmt.Fprintf(os.Stderr, "Error: unknown app %q\n", appID)
		fmt.Fprintln(os.Stderr, "Run 'pixelcore list' to see available apps.")
		os.Exit(1)
	}

	script, err := headless.ParseScript(flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := flagOutput
	if output == "" {
		output = appID + ".png"
	}

	ev, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app, err := registry.Create(appID)
	if err != nil {
		ev.close()
		fmt.Fprintf(os.Stderr, "Error creating app: %v\n", err)
		os.Exit(1)
	}

	opts := headless.Options{Frames: flagFrames, Pace: flagPace, Script: script}
	e, runErr := headless.Run(cmd.Context(), app, ev.settings, ev.logger, opts, output)
	if runErr == nil && flagRecord {
		ev.record(ev.openStore(), appID, backendHeadless, e, app)
	}
	ev.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", runErr)
		os.Exit(1)
	}

	st := e.Stats()
	fmt.Printf("Wrote %s (%d frames in %s, %.1f fps)\n", output, st.Frames, st.Duration.Round(time.Millisecond), st.AvgFPS)
}
