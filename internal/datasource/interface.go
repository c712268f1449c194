// Package datasource loads match history from a CSV export or from the
// matches table.
package datasource

import (
	"context"

	"github.com/yourusername/pennant-path/internal/models"
)

// MatchSource supplies match records in date order
type MatchSource interface {
	// LoadMatches returns every available match, sorted by date
	LoadMatches(ctx context.Context) ([]models.MatchRecord, error)

	// Name returns the name of the source
	Name() string
}
