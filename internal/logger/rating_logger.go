// Package logger provides rating-ledger logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RatingLogger provides dedicated logging for the rating ledger.
type RatingLogger struct {
	*logrus.Entry
}

// NewRatingLogger creates a new rating logger.
func NewRatingLogger(baseLogger logrus.FieldLogger) *RatingLogger {
	return &RatingLogger{
		Entry: OrDiscard(baseLogger).WithField("component", "rating"),
	}
}

// LogMatchApplied logs a match folded into the ledger.
func (rl *RatingLogger) LogMatchApplied(matchID, homeTeam, awayTeam string, homeDelta, homeStrength, awayStrength float64) {
	rl.WithFields(logrus.Fields{
		"match_id":      matchID,
		"home_team":     homeTeam,
		"away_team":     awayTeam,
		"home_delta":    homeDelta,
		"home_strength": homeStrength,
		"away_strength": awayStrength,
	}).Debug("Match applied")
}

// LogMatchSkipped logs a match the ledger refused to apply.
func (rl *RatingLogger) LogMatchSkipped(matchID, reason, detail string) {
	rl.WithFields(logrus.Fields{
		"match_id": matchID,
		"reason":   reason,
		"detail":   detail,
	}).Warn("Match skipped")
}

// LogSeasonReset logs a season boundary.
func (rl *RatingLogger) LogSeasonReset(previous, current time.Time, teams int) {
	rl.WithFields(logrus.Fields{
		"previous_season": previous.Year(),
		"current_season":  current.Year(),
		"teams":           teams,
	}).Info("Season boundary crossed, form and runs reset")
}

// LogFoldComplete logs the end of a pass over a match batch.
func (rl *RatingLogger) LogFoldComplete(focusTeam string, processed, emitted, skipped int) {
	rl.WithFields(logrus.Fields{
		"focus_team": focusTeam,
		"processed":  processed,
		"emitted":    emitted,
		"skipped":    skipped,
	}).Info("Feature extraction completed")
}
