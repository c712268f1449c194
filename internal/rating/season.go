package rating

import "time"

// crossesSeason reports whether current falls in a later calendar year than
// last, the date that opened or last advanced the season. A zero last means
// no season has started yet.
func crossesSeason(last, current time.Time) bool {
	if last.IsZero() {
		return false
	}
	return current.Year() != last.Year()
}

// resetSeason clears form and run totals for every team. Strength carries over.
func (l *Ledger) resetSeason() {
	for _, state := range l.states {
		state.form.reset()
		state.runsFor = 0
		state.runsAgainst = 0
	}
}
