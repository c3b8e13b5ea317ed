package cli

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"eposter/internal/config"
	"eposter/internal/db"
	"eposter/internal/launcher"
	"eposter/pkg/models"
	"eposter/pkg/python"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	waitForExit bool
	baseDir     string
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the timed poster loop",
	Run:   runLaunch,
}

func init() {
	addLaunchFlags(rootCmd)
	addLaunchFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addLaunchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&waitForExit, "wait", false, "Spawn the viewer and wait instead of replacing the launcher process")
	cmd.Flags().StringVar(&baseDir, "base", "", "Directory containing the viewer script (default: launcher executable directory)")
}

func runLaunch(cmd *cobra.Command, args []string) {
	launchViewer("")
}

// launchViewer is the shared hand-off path for run and menu. posterPath is
// empty for the timed loop, or a single poster to display.
func launchViewer(posterPath string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if baseDir != "" {
		cfg.BaseDir = baseDir
	}

	viewerPath, err := launcher.ResolveViewer(cfg.BaseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	interp, err := python.Find()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s is required to run the viewer: %v\n", python.Interpreter, err)
		os.Exit(1)
	}

	if err := launcher.Export(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printStatus(cfg)

	mode := launcher.ModeExec
	if waitForExit {
		mode = launcher.ModeWait
	}

	recordLaunch(cfg, mode, viewerPath, posterPath)

	env := launcher.Environ(os.Environ(), cfg)
	code, err := launcher.Launch(interp, viewerPath, posterPath, env, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func printStatus(cfg *config.LaunchConfiguration) {
	fmt.Println(bannerStyle.Render("e-poster launcher"))
	fmt.Printf("%s=%s\n", launcher.EnvToken, launcher.MaskToken(cfg.Token))
	fmt.Printf("%s=%d\n", launcher.EnvCacheRefresh, cfg.CacheRefresh)
	fmt.Printf("%s=%d\n", launcher.EnvDisplayTime, cfg.DisplayTime)
}

// recordLaunch is best-effort: history must never block the hand-off.
func recordLaunch(cfg *config.LaunchConfiguration, mode launcher.Mode, viewerPath, posterPath string) {
	dbPath, err := historyDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: skipping launch history: %v\n", err)
		return
	}

	store, err := db.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: skipping launch history: %v\n", err)
		return
	}
	defer store.Close()

	rec := &models.LaunchRecord{
		Ts:           time.Now(),
		Mode:         mode.String(),
		ViewerPath:   viewerPath,
		PosterPath:   posterPath,
		CacheRefresh: cfg.CacheRefresh,
		DisplayTime:  cfg.DisplayTime,
	}
	rec.Hostname, _ = os.Hostname()
	if u, err := user.Current(); err == nil {
		rec.User = u.Username
	}

	if err := store.RecordLaunch(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record launch: %v\n", err)
	}
}
