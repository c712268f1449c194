package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/pennant-path/internal/database"
	"github.com/yourusername/pennant-path/internal/datasource"
	"github.com/yourusername/pennant-path/internal/features"
	"github.com/yourusername/pennant-path/internal/models"
	"github.com/yourusername/pennant-path/internal/predictor"
	"github.com/yourusername/pennant-path/internal/rating"
	"github.com/yourusername/pennant-path/internal/repository"
)

const predictorSourceModel = "model"

var errNoMatchSource = errors.New("no match source: pass --matches or configure the database")

func openRepositories(ctx context.Context) (*repository.Repositories, func(), error) {
	if !cfg.HasDatabase() {
		return nil, nil, errors.New("database is not configured")
	}
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repos, db.Close, nil
}

func loadMatches(ctx context.Context) ([]models.MatchRecord, error) {
	var source datasource.MatchSource
	if matchesPath != "" {
		source = datasource.NewCSVSource(matchesPath)
	} else {
		if !cfg.HasDatabase() {
			return nil, errNoMatchSource
		}
		repos, closeDB, err := openRepositories(ctx)
		if err != nil {
			return nil, err
		}
		defer closeDB()
		source = datasource.NewPostgresSource(repos.Match, time.Time{}, time.Time{})
	}

	matches, err := source.LoadMatches(ctx)
	if err != nil {
		return nil, err
	}
	log.WithField("source", source.Name()).WithField("matches", len(matches)).Info("Loaded match history")
	return matches, nil
}

func newExtractor() *features.Extractor {
	return features.NewExtractor(cfg.Ledger.Roster,
		features.WithLogger(log),
		features.WithLedgerOptions(
			rating.WithInitialStrength(cfg.Ledger.InitialStrength),
			rating.WithKFactor(cfg.Ledger.KFactor),
			rating.WithFormWindow(cfg.Ledger.FormWindow),
		),
	)
}

func outcomePredictor() (predictor.Predictor, func(), error) {
	if cfg.Predictor.Source != predictorSourceModel {
		return predictor.NewEloPredictor(), func() {}, nil
	}
	client, err := predictor.NewHTTPPredictor(&cfg.Predictor, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// probabilitySource answers pairwise probabilities from the configured
// predictor, cached for the run.
func probabilitySource(ledger *rating.Ledger) (*predictor.CachedSource, func(), error) {
	if cfg.Predictor.Source != predictorSourceModel {
		return predictor.NewCachedSource(predictor.NewEloSource(ledger), cfg.CacheTTL()), func() {}, nil
	}
	p, closePredictor, err := outcomePredictor()
	if err != nil {
		return nil, nil, err
	}
	return predictor.NewCachedSource(predictor.NewModelSource(ledger, p), cfg.CacheTTL()), closePredictor, nil
}
