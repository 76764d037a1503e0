package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/newsline/internal/cache"
	"github.com/mkravets/newsline/internal/config"
)

var (
	flagHistoryLimit    int
	flagPruneOlderThan  string
	defaultRetentionStr = "90d"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently seen articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := cache.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		entries, err := db.Recent(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return nil
		}

		for _, e := range entries {
			line := fmt.Sprintf("%s  %s", e.SeenAt.Local().Format("Jan 02 15:04"), e.Title)
			if e.LastAction != "" {
				line += fmt.Sprintf("  [%s]", e.LastAction)
			}
			fmt.Println(line)
			fmt.Printf("    %s\n", e.URL)
		}
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old entries from the local history",
	Long: `Delete history entries older than the retention period and reclaim disk space.

Defaults to 90d unless overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		retention, err := parseRetention(defaultRetentionStr)
		if err != nil {
			return err
		}
		if flagPruneOlderThan != "" {
			retention, err = parseRetention(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
		}

		db, err := cache.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		deleted, err := db.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d entries older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.HistoryPath()
		db, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("History: %s\n", dbPath)
		fmt.Printf("Entries: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "number of entries to show")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
}

// parseRetention accepts Go durations plus a day suffix (7d, 90d).
func parseRetention(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
