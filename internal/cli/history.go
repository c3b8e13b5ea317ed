package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"eposter/internal/db"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyMode  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent viewer launches",
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of records to show")
	historyCmd.Flags().StringVar(&historyMode, "mode", "", "Filter by launch mode (exec, wait)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	dbPath, err := historyDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}

	store, err := db.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing DB: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	launches, err := store.ListLaunches(historyLimit, historyMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing launches: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMODE\tPOSTER\tREFRESH\tDISPLAY")
	for _, rec := range launches {
		poster := "(timed loop)"
		if rec.PosterPath != "" {
			poster = filepath.Base(rec.PosterPath)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.40s\t%d\t%d\n",
			rec.ID,
			rec.Ts.Local().Format("2006-01-02 15:04"),
			rec.Mode,
			poster,
			rec.CacheRefresh,
			rec.DisplayTime,
		)
	}
	w.Flush()
}
