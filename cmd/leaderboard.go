package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/playarcade/internal/progress"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the local high-score table",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		board := progress.NewLeaderboard(rt.kv, rt.logger)
		entries := board.Top(cmd.Context(), limit)

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No scores yet.")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-20s  %7s  %7s  %s\n", "#", "Name", "Score", "XP", "Date")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for i, e := range entries {
			fmt.Fprintf(out, "%-4d  %-20s  %7d  %7d  %s\n", i+1, truncate(e.Name, 20), e.Score, e.XP, e.Date)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "n", progress.LeaderboardSize, "Number of entries to show")
}
