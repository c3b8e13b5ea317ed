package cli

import (
	"fmt"
	"os"

	"eposter/internal/config"
	"eposter/internal/launcher"
	"eposter/pkg/python"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this host can run the viewer",
	Run:   runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&baseDir, "base", "", "Directory containing the viewer script (default: launcher executable directory)")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	failed := false

	report := func(ok bool, label, detail string) {
		mark := okStyle.Render("ok")
		if !ok {
			mark = failStyle.Render("missing")
			failed = true
		}
		if detail != "" {
			fmt.Printf("%-24s %s (%s)\n", label, mark, detail)
		} else {
			fmt.Printf("%-24s %s\n", label, mark)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if baseDir != "" {
		cfg.BaseDir = baseDir
	}

	if viewerPath, err := launcher.ResolveViewer(cfg.BaseDir); err != nil {
		report(false, "viewer script", err.Error())
	} else {
		report(true, "viewer script", viewerPath)
	}

	if status, err := python.Probe(); err != nil {
		report(false, python.Interpreter, err.Error())
	} else {
		report(true, python.Interpreter, status.Version)
		for _, mod := range status.Modules {
			report(mod.OK, "module "+mod.Name, mod.Detail)
		}
	}

	if cfg.Token == config.DefaultToken {
		fmt.Println("Note: poster token is still the built-in default.")
	}

	if failed {
		os.Exit(1)
	}
}
