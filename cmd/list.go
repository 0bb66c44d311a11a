package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cress-bdd/cress/internal/db"
	"github.com/cress-bdd/cress/internal/ui"
)

var (
	outcomeFlag string
	noRunsFlag  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), outcomeFlag, noRunsFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&outcomeFlag, "outcome", "", "Filter by latest outcome")
	listCmd.Flags().BoolVar(&noRunsFlag, "no-runs", false, "Show only scenarios with no recorded outcome")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	id       int64
	fileName string
	name     string
	outcome  string
}

func RunList(w io.Writer, outcomeFilter string, noRuns bool) error {
	if _, err := os.Stat("features"); os.IsNotExist(err) {
		return fmt.Errorf("run `cress init` first")
	}

	sqlDB, err := db.Open("features/cress.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT s.id, f.file_path, s.name,
			COALESCE(
				(SELECT outcome FROM outcomes WHERE scenario_id = s.id ORDER BY changed_at DESC, id DESC LIMIT 1),
				'no-runs'
			) AS current_outcome
		FROM scenarios s
		JOIN features f ON s.feature_id = f.id
		ORDER BY f.file_path, s.line, s.id
	`)
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&r.id, &filePath, &r.name, &r.outcome); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)

		if outcomeFilter != "" && r.outcome != outcomeFilter {
			continue
		}
		if noRuns && r.outcome != "no-runs" {
			continue
		}

		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	idWidth, fileWidth, nameWidth := 0, 0, 0
	for _, r := range results {
		if n := len(fmt.Sprint(r.id)); n > idWidth {
			idWidth = n
		}
		if len(r.fileName) > fileWidth {
			fileWidth = len(r.fileName)
		}
		if len(r.name) > nameWidth {
			nameWidth = len(r.name)
		}
	}

	for _, r := range results {
		ui.ListRow(w, r.id, r.fileName, r.name, r.outcome, idWidth, fileWidth, nameWidth)
	}

	return nil
}
