package backtest

import (
	"math"
	"time"
)

// probabilityClamp keeps log loss finite for confident misses.
const probabilityClamp = 1e-15

// Row is one replayed prediction next to the observed outcome.
type Row struct {
	MatchID     string    `json:"match_id"`
	Date        time.Time `json:"date"`
	FocusTeam   string    `json:"focus_team"`
	Opponent    string    `json:"opponent"`
	FocusIsHome bool      `json:"focus_is_home"`
	Probability float64   `json:"probability"`
	Predicted   int       `json:"predicted"`
	Actual      int       `json:"actual"`
	Correct     bool      `json:"correct"`
}

// Metrics summarizes prediction quality over a replay
type Metrics struct {
	Total          int     `json:"total"`
	Correct        int     `json:"correct"`
	Accuracy       float64 `json:"accuracy"`
	RecentGames    int     `json:"recent_games"`
	RecentCorrect  int     `json:"recent_correct"`
	RecentAccuracy float64 `json:"recent_accuracy"`
	BrierScore     float64 `json:"brier_score"`
	LogLoss        float64 `json:"log_loss"`
}

// CalculateMetrics scores rows, which must be in chronological order. The
// recent figures cover the last recentWindow rows.
func CalculateMetrics(rows []Row, recentWindow int) Metrics {
	metrics := Metrics{Total: len(rows)}
	if len(rows) == 0 {
		return metrics
	}

	var brier, logLoss float64
	for _, row := range rows {
		if row.Correct {
			metrics.Correct++
		}
		y := float64(row.Actual)
		brier += (row.Probability - y) * (row.Probability - y)

		p := math.Min(math.Max(row.Probability, probabilityClamp), 1-probabilityClamp)
		logLoss -= y*math.Log(p) + (1-y)*math.Log(1-p)
	}
	n := float64(len(rows))
	metrics.Accuracy = float64(metrics.Correct) / n
	metrics.BrierScore = brier / n
	metrics.LogLoss = logLoss / n

	recent := rows
	if recentWindow > 0 && len(rows) > recentWindow {
		recent = rows[len(rows)-recentWindow:]
	}
	metrics.RecentGames = len(recent)
	for _, row := range recent {
		if row.Correct {
			metrics.RecentCorrect++
		}
	}
	metrics.RecentAccuracy = float64(metrics.RecentCorrect) / float64(metrics.RecentGames)

	return metrics
}
