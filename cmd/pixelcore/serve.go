package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelcore/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeApp    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pixelcore SSH server",
	Long: `Start an SSH server that lets users connect and run apps.

Each SSH connection gets its own session and its own engine. Without
--app, sessions open the app picker; with --app they go straight into
that app and disconnect when it ends. Runs are recorded in the shared
history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pixelcore/host_key

Examples:
  pixelcore serve                           # Listen on :23234 with auto-generated key
  pixelcore serve --ssh :2222               # Listen on port 2222
  pixelcore serve --app snake               # Every session plays snake
  pixelcore serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeApp, "app", "", "Pin every session to one app")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	ev, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer ev.close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		AppID:       flagServeApp,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	if flagNoHistory {
		cfg.DBPath = ""
	}

	server, err := tui.NewSSHServer(cfg, ev.settings, ev.logger)
	if err != nil {
		ev.logger.Error("cannot create server", "error", err)
		return
	}

	fmt.Printf("Starting pixelcore SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Serve(cmd.Context()); err != nil {
		ev.logger.Error("server error", "error", err)
	}
}
