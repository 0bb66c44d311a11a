package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cress-bdd/cress/gherkin"
	"github.com/cress-bdd/cress/internal/db"
	"github.com/cress-bdd/cress/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan features/ for .feature files and register their scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer) error {
	if _, err := os.Stat("features"); os.IsNotExist(err) {
		return fmt.Errorf("run `cress init` first")
	}

	sqlDB, err := db.Open("features/cress.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob("features/*.feature")
	if err != nil {
		return fmt.Errorf("scanning features/: %w", err)
	}
	sort.Strings(matches)

	count := 0
	for _, path := range matches {
		feature, err := gherkin.ParseFile(path)
		if err != nil {
			ui.ErrLine(w, path)
			var syntaxErr *gherkin.SyntaxError
			if errors.As(err, &syntaxErr) {
				ui.SyntaxErrorBlock(w, syntaxErr)
			} else {
				fmt.Fprintln(w, err)
			}
			continue
		}
		if err := syncFeature(sqlDB, w, path, feature); err != nil {
			return err
		}
		count++
	}

	ui.SummaryLine(w, count)
	return nil
}

func syncFeature(sqlDB *sql.DB, w io.Writer, path string, feature *gherkin.Feature) error {
	var featureID int64
	err := sqlDB.QueryRow(`SELECT id FROM features WHERE file_path = ?`, path).Scan(&featureID)
	switch {
	case err == sql.ErrNoRows:
		res, err := sqlDB.Exec(`INSERT INTO features (file_path, name) VALUES (?, ?)`, path, feature.Name)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", path, err)
		}
		featureID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("inserting %s: %w", path, err)
		}
		ui.NewLine(w, path)
	case err != nil:
		return fmt.Errorf("querying %s: %w", path, err)
	default:
		_, err := sqlDB.Exec(`UPDATE features SET name = ?, updated_at = datetime('now') WHERE id = ?`, feature.Name, featureID)
		if err != nil {
			return fmt.Errorf("updating %s: %w", path, err)
		}
		ui.TrkLine(w, path)
	}

	for _, scenario := range feature.Scenarios {
		var scenarioID int64
		err := sqlDB.QueryRow(`SELECT id FROM scenarios WHERE feature_id = ? AND name = ?`, featureID, scenario.Name).Scan(&scenarioID)
		switch {
		case err == sql.ErrNoRows:
			_, err = sqlDB.Exec(`INSERT INTO scenarios (feature_id, name, line) VALUES (?, ?, ?)`, featureID, scenario.Name, scenario.Line)
			if err != nil {
				return fmt.Errorf("inserting scenario %q: %w", scenario.Name, err)
			}
		case err != nil:
			return fmt.Errorf("querying scenario %q: %w", scenario.Name, err)
		default:
			_, err = sqlDB.Exec(`UPDATE scenarios SET line = ?, updated_at = datetime('now') WHERE id = ?`, scenario.Line, scenarioID)
			if err != nil {
				return fmt.Errorf("updating scenario %q: %w", scenario.Name, err)
			}
		}
	}

	return nil
}
