package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/pennant-path/internal/projection"
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Project next season's records and playoff likelihood for every team",
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

		source, closeSource, err := probabilitySource(ledger)
		if err != nil {
			return err
		}
		defer closeSource()

		rows, err := projection.NewOutlook(source, cfg.Projection.GamesPerSeason, log).Project(ctx, ledger.Teams())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s %-16s %8s %5s %5s %9s\n", "Rank", "Team", "WinProb", "W", "L", "Playoff")
		hundred := decimal.NewFromInt(100)
		for _, row := range rows {
			fmt.Fprintf(out, "%-4d %-16s %8.3f %5d %5d %8s%%\n",
				row.Rank, row.Team, row.MeanWinProb, row.ProjectedWins, row.ProjectedLosses,
				decimal.NewFromFloat(row.PlayoffLikelihood).Mul(hundred).StringFixed(1))
		}

		_, _, ratio := source.Stats()
		log.WithField("cache_hit_ratio", ratio).Debug("Outlook complete")
		return nil
	},
}
