package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/pennant-path/internal/backtest"
)

var reportPath string

func init() {
	backtestCmd.Flags().StringVar(&reportPath, "report", "", "Write per-match results to this CSV file")
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay the focus team's history through the configured predictor and score it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		focus, err := requireFocus()
		if err != nil {
			return err
		}
		btConfig, err := backtest.FromConfig(&cfg.Backtest)
		if err != nil {
			return err
		}
		matches, err := loadMatches(ctx)
		if err != nil {
			return err
		}

		vectors, _, err := newExtractor().Collect(matches, focus)
		if err != nil {
			return err
		}

		p, closePredictor, err := outcomePredictor()
		if err != nil {
			return err
		}
		defer closePredictor()

		result, err := backtest.NewReplayer(btConfig, p, log).Replay(ctx, vectors)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), backtest.GenerateConsoleReport(result))

		if reportPath == "" {
			return nil
		}
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		if err := backtest.WriteCSVReport(f, result); err != nil {
			f.Close()
			return fmt.Errorf("failed to write report: %w", err)
		}
		return f.Close()
	},
}
