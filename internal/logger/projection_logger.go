package logger

import (
	"github.com/sirupsen/logrus"
)

// ProjectionLogger provides dedicated logging for bracket projections.
type ProjectionLogger struct {
	*logrus.Entry
}

// NewProjectionLogger creates a new projection logger.
func NewProjectionLogger(baseLogger logrus.FieldLogger) *ProjectionLogger {
	return &ProjectionLogger{
		Entry: OrDiscard(baseLogger).WithField("component", "projection"),
	}
}

// LogStage logs one evaluated bracket stage.
func (pl *ProjectionLogger) LogStage(runID, stage, opponent string, bestOf int, gameProb, seriesProb, cumulative float64, bye bool) {
	pl.WithFields(logrus.Fields{
		"run_id":          runID,
		"stage":           stage,
		"opponent":        opponent,
		"best_of":         bestOf,
		"game_win_prob":   gameProb,
		"series_win_prob": seriesProb,
		"cumulative_prob": cumulative,
		"bye":             bye,
	}).Debug("Stage evaluated")
}

// LogProjectionComplete logs a finished projection.
func (pl *ProjectionLogger) LogProjectionComplete(runID, focusTeam, status string, seed int64, trials int, championProb, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"run_id":        runID,
		"focus_team":    focusTeam,
		"status":        status,
		"seed":          seed,
		"trials":        trials,
		"champion_prob": championProb,
		"duration_ms":   durationMs,
	}).Info("Bracket projection completed")
}

// LogOutlookComplete logs a finished season outlook.
func (pl *ProjectionLogger) LogOutlookComplete(teams, gamesPerSeason int, leader string) {
	pl.WithFields(logrus.Fields{
		"teams":            teams,
		"games_per_season": gamesPerSeason,
		"leader":           leader,
	}).Info("Season outlook completed")
}
