package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eposter",
	Short: "Kiosk launcher for the e-poster viewer",
	Long:  `eposter assembles the viewer configuration (poster token, cache refresh interval, display time), exports it through environment variables, and hands control to the fullscreen poster viewer. Run with no arguments to launch the timed poster loop.`,
	Run:   runLaunch,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// historyDBPath is where launch records live. Shared by run, menu,
// history and cleanup.
func historyDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local/share/eposter/eposter.db"), nil
}
