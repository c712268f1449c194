package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/pennant-path/internal/datasource"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a CSV match history into the matches table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if matchesPath == "" {
			return errors.New("import needs --matches")
		}
		matches, err := datasource.NewCSVSource(matchesPath).LoadMatches(ctx)
		if err != nil {
			return err
		}

		repos, closeDB, err := openRepositories(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := repos.Match.UpsertMatches(ctx, matches); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d matches\n", len(matches))
		return nil
	},
}
