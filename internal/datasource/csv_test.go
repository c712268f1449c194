package datasource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pennant-path/internal/models"
)

const sampleCSV = `id,date,homeTeam,awayTeam,homeScore,awayScore
g3,2024-04-02,Tigers,Bears,4,2
g1,2024-04-01,Eagles,Wolves,1,1
g2,2024-04-02,Bears,Eagles,0,3
`

func TestLoadMatchesCSV(t *testing.T) {
	matches, err := LoadMatchesCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, matches, 3)

	ids := []string{matches[0].ID, matches[1].ID, matches[2].ID}
	assert.Equal(t, []string{"g1", "g3", "g2"}, ids)

	assert.Equal(t, models.MatchRecord{
		ID:        "g3",
		Date:      time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		HomeTeam:  "Tigers",
		AwayTeam:  "Bears",
		HomeScore: 4,
		AwayScore: 2,
	}, matches[1])
}

func TestLoadMatchesCSVKeepsLedgerConcerns(t *testing.T) {
	// Negative scores and self matches are the ledger's to skip.
	input := "id,date,homeTeam,awayTeam,homeScore,awayScore\nx,2024-04-01,Tigers,Tigers,-1,2\n"
	matches, err := LoadMatchesCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, -1, matches[0].HomeScore)
}

func TestLoadMatchesCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		contain string
	}{
		{name: "empty", input: "", wantErr: ErrBadHeader},
		{name: "wrong header", input: "id,date,home,away,hs,as\n", wantErr: ErrBadHeader},
		{name: "bad date", input: "id,date,homeTeam,awayTeam,homeScore,awayScore\ng1,04/01/2024,A,B,1,0\n", wantErr: models.ErrInvalidMatch, contain: "line 2"},
		{name: "bad score", input: "id,date,homeTeam,awayTeam,homeScore,awayScore\ng1,2024-04-01,A,B,one,0\n", wantErr: models.ErrInvalidMatch},
		{name: "missing id", input: "id,date,homeTeam,awayTeam,homeScore,awayScore\n,2024-04-01,A,B,1,0\n", wantErr: models.ErrInvalidMatch},
		{name: "short row", input: "id,date,homeTeam,awayTeam,homeScore,awayScore\ng1,2024-04-01,A,B,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMatchesCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.contain != "" {
				assert.Contains(t, err.Error(), tt.contain)
			}
		})
	}
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	source := NewCSVSource(path)
	assert.Equal(t, "csv", source.Name())

	matches, err := source.LoadMatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	_, err = NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")).LoadMatches(context.Background())
	assert.Error(t, err)
}

type stubMatchRepo struct {
	from, to time.Time
	matches  []models.MatchRecord
}

func (s *stubMatchRepo) ListMatches(ctx context.Context, from, to time.Time) ([]models.MatchRecord, error) {
	s.from, s.to = from, to
	return s.matches, nil
}

func (s *stubMatchRepo) UpsertMatches(ctx context.Context, matches []models.MatchRecord) error {
	return nil
}

func TestPostgresSourcePassesRange(t *testing.T) {
	repo := &stubMatchRepo{matches: []models.MatchRecord{{ID: "g1"}}}
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	source := NewPostgresSource(repo, from, time.Time{})
	assert.Equal(t, "postgres", source.Name())

	matches, err := source.LoadMatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, from, repo.from)
	assert.True(t, repo.to.IsZero())
}
