package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/pennant-path/internal/standings"
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Fold the match history and print final ratings and standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		matches, err := loadMatches(ctx)
		if err != nil {
			return err
		}

		ledger, err := newExtractor().Fold(matches)
		if err != nil {
			return err
		}

		table, err := standings.Rank(standings.Source(cfg.Standings.RankingSource),
			standings.LatestSeason(matches), ledger.Teams(), ledger.Ratings(), cfg.Standings.ManualOrder)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Standings (%s)\n", cfg.Standings.RankingSource)
		fmt.Fprintf(out, "%-4s %-16s %4s %4s %4s %4s %6s %6s %9s\n", "Rank", "Team", "G", "W", "L", "T", "RF", "RA", "Rating")
		for _, s := range table {
			fmt.Fprintf(out, "%-4d %-16s %4d %4d %4d %4d %6d %6d %9.1f\n",
				s.Rank, s.Team, s.Played, s.Wins, s.Losses, s.Ties, s.RunsFor, s.RunsAgainst, s.Strength)
		}

		fmt.Fprintf(out, "\nApplied %d of %d matches", ledger.Applied(), len(matches))
		if last, ok := ledger.LastProcessed(); ok {
			fmt.Fprintf(out, " through %s", last.Format("2006-01-02"))
		}
		fmt.Fprintln(out)
		return nil
	},
}
