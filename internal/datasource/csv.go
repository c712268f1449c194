package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/pennant-path/internal/models"
)

// DateLayout is the match date format in CSV exports.
const DateLayout = "2006-01-02"

// CSVColumns is the required header, in order.
var CSVColumns = []string{"id", "date", "homeTeam", "awayTeam", "homeScore", "awayScore"}

// ErrBadHeader indicates the CSV header does not match CSVColumns.
var ErrBadHeader = errors.New("unexpected csv header")

// LoadMatchesCSV parses match records from r. Rows are stably sorted by date,
// so same-day matches keep their file order.
func LoadMatchesCSV(r io.Reader) ([]models.MatchRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(CSVColumns)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrBadHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if !slices.Equal(trimAll(header), CSVColumns) {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrBadHeader, header, CSVColumns)
	}

	var matches []models.MatchRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		match, err := parseRecord(trimAll(record))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		matches = append(matches, match)
	}

	slices.SortStableFunc(matches, func(a, b models.MatchRecord) int {
		return a.Date.Compare(b.Date)
	})
	return matches, nil
}

func parseRecord(record []string) (models.MatchRecord, error) {
	date, err := time.Parse(DateLayout, record[1])
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("%w: date %q", models.ErrInvalidMatch, record[1])
	}
	homeScore, err := strconv.Atoi(record[4])
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("%w: homeScore %q", models.ErrInvalidMatch, record[4])
	}
	awayScore, err := strconv.Atoi(record[5])
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("%w: awayScore %q", models.ErrInvalidMatch, record[5])
	}
	if record[0] == "" {
		return models.MatchRecord{}, fmt.Errorf("%w: empty id", models.ErrInvalidMatch)
	}

	return models.MatchRecord{
		ID:        record[0],
		Date:      date,
		HomeTeam:  record[2],
		AwayTeam:  record[3],
		HomeScore: homeScore,
		AwayScore: awayScore,
	}, nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// CSVSource reads matches from a file on disk
type CSVSource struct {
	path string
}

// NewCSVSource creates a file-backed source
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name returns the source name
func (s *CSVSource) Name() string {
	return "csv"
}

// LoadMatches opens and parses the file
func (s *CSVSource) LoadMatches(ctx context.Context) ([]models.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open match file: %w", err)
	}
	defer f.Close()

	matches, err := LoadMatchesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return matches, nil
}
