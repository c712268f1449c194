package rating

import "errors"

// Ledger errors
var (
	ErrTeamNotFound = errors.New("team not found in roster")
	ErrOutOfOrder   = errors.New("match dated before last processed match")
)

// SkipReason classifies a match the ledger refused to apply.
type SkipReason string

// Skip reasons
const (
	SkipUnknownTeam   SkipReason = "unknown_team"
	SkipNegativeScore SkipReason = "negative_score"
	SkipSelfMatch     SkipReason = "self_match"
)

// SkipWarning describes a match that was not applied. It is informational:
// the ledger state is unchanged and processing may continue.
type SkipWarning struct {
	MatchID string
	Reason  SkipReason
	Detail  string
}

func (w SkipWarning) String() string {
	return "match " + w.MatchID + " skipped (" + string(w.Reason) + "): " + w.Detail
}
