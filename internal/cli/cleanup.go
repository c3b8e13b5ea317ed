package cli

import (
	"fmt"
	"io"
	"os"

	"eposter/internal/db"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove history records for posters no longer in the cache",
	Run:   runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

// pruneStaleRecords deletes the records whose poster file no longer exists
// and reports each removal to out. Records without a poster path (timed
// loops) are never touched.
func pruneStaleRecords(store *db.Store, out io.Writer) (int, error) {
	paths, err := store.ListPosterPaths()
	if err != nil {
		return 0, fmt.Errorf("failed to list poster paths: %w", err)
	}

	deleted := 0
	for id, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintf(out, "Removing record for evicted poster: %s (ID: %d)\n", path, id)
			if err := store.DeleteLaunch(id); err != nil {
				return deleted, fmt.Errorf("failed to delete record %d: %w", id, err)
			}
			deleted++
		}
	}
	return deleted, nil
}

func runCleanup(cmd *cobra.Command, args []string) {
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

	deletedCount, err := pruneStaleRecords(store, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if deletedCount == 0 {
		fmt.Println("History is clean. Every referenced poster is still cached.")
	} else {
		fmt.Printf("Cleaned up %d records.\n", deletedCount)
	}
}
