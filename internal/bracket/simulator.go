// Package bracket projects a team's path through a five-team stepladder
// postseason by simulating each series it would have to win.
package bracket

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pennant-path/internal/logger"
	"github.com/yourusername/pennant-path/internal/metrics"
	"github.com/yourusername/pennant-path/internal/models"
)

// ProbabilitySource answers the probability that team beats opponent in a
// single game.
type ProbabilitySource interface {
	WinProbability(ctx context.Context, team, opponent string) (float64, error)
}

// ProbabilityFunc adapts a function to ProbabilitySource.
type ProbabilityFunc func(ctx context.Context, team, opponent string) (float64, error)

// WinProbability calls f.
func (f ProbabilityFunc) WinProbability(ctx context.Context, team, opponent string) (float64, error) {
	return f(ctx, team, opponent)
}

// Simulator builds Projections. It holds no per-run state and may be shared.
type Simulator struct {
	cfg    Config
	engine *SeriesEngine
	log    *logger.ProjectionLogger
}

// NewSimulator creates a simulator. A nil log discards output.
func NewSimulator(cfg Config, log logrus.FieldLogger) *Simulator {
	cfg = cfg.withDefaults()
	return &Simulator{
		cfg:    cfg,
		engine: NewSeriesEngine(cfg),
		log:    logger.NewProjectionLogger(log),
	}
}

// run carries the per-call state of one projection.
type run struct {
	id     uuid.UUID
	seed   int64
	teams  []string
	source ProbabilitySource
}

func (r *run) team(seed int) string {
	if seed < 1 || seed > len(r.teams) {
		return ""
	}
	return r.teams[seed-1]
}

// Project walks focusTeam from its entry round to the final. Only the first
// QualifierCount qualifiers are seeded; a focus team outside them yields a
// not_qualified projection without stages.
func (s *Simulator) Project(ctx context.Context, qualifiers []string, focusTeam string, source ProbabilitySource) (*models.Projection, error) {
	if s.cfg.OpponentPolicy != PolicyFavorite && s.cfg.OpponentPolicy != PolicyWeighted {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, s.cfg.OpponentPolicy)
	}

	start := time.Now()
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	top := qualifiers
	if len(top) > s.cfg.QualifierCount {
		top = top[:s.cfg.QualifierCount]
	}
	seen := make(map[string]bool, len(top))
	for _, team := range top {
		if seen[team] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQualifier, team)
		}
		seen[team] = true
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := &run{
		id:     uuid.New(),
		seed:   seed,
		teams:  append([]string(nil), top...),
		source: source,
	}

	projection := &models.Projection{
		RunID:       r.id,
		FocusTeam:   focusTeam,
		Status:      models.ProjectionNotQualified,
		Qualifiers:  r.teams,
		Trials:      s.engine.Trials(),
		GeneratedAt: start.UTC(),
	}

	focusSeed := 0
	for i, team := range r.teams {
		if team == focusTeam {
			focusSeed = i + 1
		}
	}
	if focusSeed == 0 {
		s.finish(r, projection, start)
		return projection, nil
	}

	projection.Status = models.ProjectionQualified
	projection.Seed = focusSeed
	projection.Probabilities = make(map[string]float64, len(Rounds))

	cumulative := 1.0
	first := entryRound(focusSeed)
	for i := first; i < len(Rounds); i++ {
		round := Rounds[i]
		stage := models.StageResult{Stage: round.Stage, BestOf: round.BestOf}

		if cumulative > 0 {
			var err error
			if i == first && focusSeed != lowestSeed {
				err = s.entryStage(ctx, r, i, focusSeed, &stage)
			} else {
				err = s.fixedStage(ctx, r, i, focusSeed, r.team(round.HighSeed), round.HighSeed, &stage)
			}
			if err != nil {
				return nil, fmt.Errorf("stage %s: %w", round.Stage, err)
			}
			cumulative *= stage.SeriesWinProb
		}

		stage.CumulativeProb = cumulative
		projection.Stages = append(projection.Stages, stage)
		projection.Probabilities[round.Stage] = cumulative
		s.log.LogStage(r.id.String(), stage.Stage, stage.Opponent, stage.BestOf,
			stage.GameWinProb, stage.SeriesWinProb, stage.CumulativeProb, stage.Bye)
	}

	s.finish(r, projection, start)
	return projection, nil
}

func (s *Simulator) finish(r *run, projection *models.Projection, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordProjection(string(projection.Status), elapsed.Seconds())
	for stage, p := range projection.Probabilities {
		metrics.UpdateAdvanceProbability(projection.FocusTeam, stage, p)
	}
	s.log.LogProjectionComplete(r.id.String(), projection.FocusTeam, string(projection.Status),
		r.seed, projection.Trials, projection.Champion(), float64(elapsed.Microseconds())/1000)
}

// fixedStage plays focus against a known opponent, or records a bye.
func (s *Simulator) fixedStage(ctx context.Context, r *run, round, focusSeed int, opponent string, opponentSeed int, stage *models.StageResult) error {
	if opponent == "" {
		stage.Bye = true
		stage.GameWinProb = 1
		stage.SeriesWinProb = 1
		return nil
	}
	p, series, err := s.series(ctx, r, round, focusSeed, opponentSeed)
	if err != nil {
		return err
	}
	stage.Opponent = opponent
	stage.GameWinProb = p
	stage.SeriesWinProb = series
	return nil
}

// entryStage handles the round where the focus team is the waiting high seed
// and its opponent comes out of the rounds below.
func (s *Simulator) entryStage(ctx context.Context, r *run, round, focusSeed int, stage *models.StageResult) error {
	if round == 0 {
		return s.fixedStage(ctx, r, round, focusSeed, r.team(lowestSeed), lowestSeed, stage)
	}
	if s.cfg.OpponentPolicy == PolicyFavorite {
		for _, seed := range subBracketSeeds(round) {
			if team := r.team(seed); team != "" {
				return s.fixedStage(ctx, r, round, focusSeed, team, seed, stage)
			}
		}
		return s.fixedStage(ctx, r, round, focusSeed, "", 0, stage)
	}

	dist, err := s.winnerDistribution(ctx, r, round-1)
	if err != nil {
		return err
	}
	switch len(dist) {
	case 0:
		return s.fixedStage(ctx, r, round, focusSeed, "", 0, stage)
	case 1:
		for seed := range dist {
			return s.fixedStage(ctx, r, round, focusSeed, r.team(seed), seed, stage)
		}
	}

	likeliest, best := 0, -1.0
	for _, seed := range subBracketSeeds(round) {
		weight, ok := dist[seed]
		if !ok {
			continue
		}
		p, series, err := s.series(ctx, r, round, focusSeed, seed)
		if err != nil {
			return err
		}
		stage.GameWinProb += weight * p
		stage.SeriesWinProb += weight * series
		if weight > best {
			likeliest, best = seed, weight
		}
	}
	stage.Opponent = r.team(likeliest)
	stage.OpponentWeighted = true
	return nil
}

// winnerDistribution returns, by seed, the probability of each team winning
// round i. Rounds with no participants yield an empty map.
func (s *Simulator) winnerDistribution(ctx context.Context, r *run, i int) (map[int]float64, error) {
	high := Rounds[i].HighSeed

	var low map[int]float64
	if i == 0 {
		low = map[int]float64{}
		if r.team(lowestSeed) != "" {
			low[lowestSeed] = 1
		}
	} else {
		var err error
		if low, err = s.winnerDistribution(ctx, r, i-1); err != nil {
			return nil, err
		}
	}

	if r.team(high) == "" {
		return low, nil
	}
	if len(low) == 0 {
		return map[int]float64{high: 1}, nil
	}

	dist := make(map[int]float64, len(low)+1)
	for seed, weight := range low {
		_, series, err := s.series(ctx, r, i, high, seed)
		if err != nil {
			return nil, err
		}
		dist[high] += weight * series
		dist[seed] += weight * (1 - series)
	}
	return dist, nil
}

// series asks the source for the single-game probability of seed a over seed
// b and simulates round i's series between them.
func (s *Simulator) series(ctx context.Context, r *run, round, a, b int) (float64, float64, error) {
	teamA, teamB := r.team(a), r.team(b)
	p, err := r.source.WinProbability(ctx, teamA, teamB)
	if err != nil {
		return 0, 0, fmt.Errorf("win probability %s vs %s: %w", teamA, teamB, err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, 0, fmt.Errorf("%w: %s vs %s returned %v", ErrInvalidProbability, teamA, teamB, p)
	}

	series, err := s.engine.WinProbability(ctx, p, Rounds[round].BestOf, deriveSeed(r.seed, uint64(round), uint64(a), uint64(b)))
	if err != nil {
		return 0, 0, err
	}
	return p, series, nil
}
