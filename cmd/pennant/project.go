package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/pennant-path/internal/bracket"
	"github.com/yourusername/pennant-path/internal/models"
	"github.com/yourusername/pennant-path/internal/standings"
)

var projectJSON bool

func init() {
	projectCmd.Flags().BoolVar(&projectJSON, "json", false, "Print the projection as JSON")
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Estimate the focus team's chance of advancing through each playoff round",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		focus, err := requireFocus()
		if err != nil {
			return err
		}
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
		qualifiers := standings.Qualifiers(table, cfg.Simulation.QualifierCount)

		source, closeSource, err := probabilitySource(ledger)
		if err != nil {
			return err
		}
		defer closeSource()

		projection, err := bracket.NewSimulator(bracket.ConfigFrom(cfg), log).
			Project(ctx, qualifiers, focus, source)
		if err != nil {
			return err
		}

		if projectJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(projection)
		}
		printProjection(cmd.OutOrStdout(), projection)
		return nil
	},
}

func printProjection(out io.Writer, p *models.Projection) {
	fmt.Fprintf(out, "Postseason projection for %s\n", p.FocusTeam)
	fmt.Fprintf(out, "Qualifiers: %s\n", strings.Join(p.Qualifiers, ", "))
	if !p.Qualified() {
		fmt.Fprintf(out, "%s did not qualify\n", p.FocusTeam)
		return
	}

	fmt.Fprintf(out, "Seed %d, %d trials per series\n\n", p.Seed, p.Trials)
	fmt.Fprintf(out, "%-14s %-16s %5s %8s %8s %10s\n", "Stage", "Opponent", "BO", "Game", "Series", "Reach")
	percentages := p.Percentages()
	for _, stage := range p.Stages {
		opponent := stage.Opponent
		switch {
		case stage.Bye:
			opponent = "(bye)"
		case stage.OpponentWeighted:
			opponent = "(field)"
		}
		fmt.Fprintf(out, "%-14s %-16s %5d %8.3f %8.3f %9s%%\n",
			stage.Stage, opponent, stage.BestOf, stage.GameWinProb, stage.SeriesWinProb,
			percentages[stage.Stage].StringFixed(2))
	}
}
