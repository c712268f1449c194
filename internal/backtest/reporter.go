package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// percent renders a ratio as a percentage rounded to two decimals.
func percent(ratio float64) string {
	return decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(100)).Round(2).StringFixed(2) + "%"
}

// GenerateConsoleReport formats replay metrics for terminal output
func GenerateConsoleReport(result *Result) string {
	var builder strings.Builder
	m := result.Metrics
	builder.WriteString("Prediction Replay Report\n")
	builder.WriteString("========================\n")
	builder.WriteString(fmt.Sprintf("Period: %s to %s\n", result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02")))
	builder.WriteString(fmt.Sprintf("Games: %d\n", m.Total))
	builder.WriteString(fmt.Sprintf("Accuracy: %s (%d/%d)\n", percent(m.Accuracy), m.Correct, m.Total))
	builder.WriteString(fmt.Sprintf("Recent Accuracy: %s (%d/%d)\n", percent(m.RecentAccuracy), m.RecentCorrect, m.RecentGames))
	builder.WriteString(fmt.Sprintf("Brier Score: %.4f\n", m.BrierScore))
	builder.WriteString(fmt.Sprintf("Log Loss: %.4f\n", m.LogLoss))
	return builder.String()
}

// WriteCSVReport writes one line per replayed match
func WriteCSVReport(w io.Writer, result *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"match_id", "date", "focus_team", "opponent", "focus_is_home", "probability", "predicted", "actual", "is_correct"}); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := []string{
			row.MatchID,
			row.Date.Format("2006-01-02"),
			row.FocusTeam,
			row.Opponent,
			strconv.FormatBool(row.FocusIsHome),
			strconv.FormatFloat(row.Probability, 'f', 4, 64),
			strconv.Itoa(row.Predicted),
			strconv.Itoa(row.Actual),
			strconv.FormatBool(row.Correct),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
