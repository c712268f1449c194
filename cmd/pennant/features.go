package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/pennant-path/internal/models"
)

var persistFeatures bool

func init() {
	featuresCmd.Flags().BoolVar(&persistFeatures, "persist", false, "Upsert the vectors into the match_features table")
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Emit pre-match feature vectors for the focus team as JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		focus, err := requireFocus()
		if err != nil {
			return err
		}
		matches, err := loadMatches(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		var vectors []models.FeatureVector
		for vector, err := range newExtractor().Run(matches, focus) {
			if err != nil {
				return err
			}
			if err := enc.Encode(vector); err != nil {
				return err
			}
			if persistFeatures {
				vectors = append(vectors, vector)
			}
		}

		if !persistFeatures {
			return nil
		}
		repos, closeDB, err := openRepositories(ctx)
		if err != nil {
			return err
		}
		defer closeDB()
		if err := repos.Feature.UpsertFeatures(ctx, vectors); err != nil {
			return fmt.Errorf("failed to persist features: %w", err)
		}
		log.WithField("vectors", len(vectors)).Info("Persisted feature vectors")
		return nil
	},
}
