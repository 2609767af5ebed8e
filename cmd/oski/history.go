package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oski/internal/storage"
)

var (
	flagHistoryPlayer string
	flagHistoryLimit  int
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished sessions",
	Long: `Display the latest finished sessions and overall stats.

Examples:
  oski history
  oski history --player alice --limit 5
  oski history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show this player's sessions")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the whole history")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	var results []storage.SessionResult
	if flagHistoryPlayer != "" {
		results, err = store.PlayerResults(flagHistoryPlayer, flagHistoryLimit)
	} else {
		results, err = store.RecentResults(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Finished sessions")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'oski play' and finish a game to see it here!")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-20s  %-7s  %4s  %4s  %5s\n", "Date", "Player", "Seed", "Outcome", "Beer", "Card", "Turns")
	fmt.Printf("  %-16s  %-12s  %-20s  %-7s  %4s  %4s  %5s\n", "----", "------", "----", "-------", "----", "----", "-----")
	for _, r := range results {
		fmt.Printf("  %-16s  %-12s  %-20d  %-7s  %4d  %4d  %5d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Player, r.Seed, r.Outcome, r.Beers, r.Cards, r.Turns)
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Saved Oski: %d  Eaten: %d\n", stats.Played, stats.Wins, stats.Losses)
		if stats.BestTurns > 0 {
			fmt.Printf("Best: %d turns\n", stats.BestTurns)
		}
	}
}
