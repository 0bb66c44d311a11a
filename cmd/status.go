package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cress-bdd/cress/internal/db"
	"github.com/cress-bdd/cress/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status [<id> <outcome>]",
	Short: "Show project status or record a scenario outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RunStatusReport(cmd.OutOrStdout())
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: cress status <id> <outcome>")
		}
		return RunStatusUpdate(cmd.OutOrStdout(), args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatusUpdate(w io.Writer, rawID, outcome string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scenario ID: %s", rawID)
	}

	if _, err := os.Stat("features"); os.IsNotExist(err) {
		return fmt.Errorf("run `cress init` first")
	}

	sqlDB, err := db.Open("features/cress.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var existingID int64
	err = sqlDB.QueryRow(`SELECT id FROM scenarios WHERE id = ?`, id).Scan(&existingID)
	if err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	// Query previous outcome before inserting
	var prevOutcome string
	err = sqlDB.QueryRow(`SELECT outcome FROM outcomes WHERE scenario_id = ? ORDER BY changed_at DESC, id DESC LIMIT 1`, id).Scan(&prevOutcome)
	if err != nil {
		prevOutcome = ""
	}

	_, err = sqlDB.Exec(`INSERT INTO outcomes (scenario_id, outcome) VALUES (?, ?)`, id, outcome)
	if err != nil {
		return fmt.Errorf("inserting outcome: %w", err)
	}

	ui.OutcomeConfirm(w, id, prevOutcome, outcome)
	return nil
}

func RunStatusReport(w io.Writer) error {
	if _, err := os.Stat("features"); os.IsNotExist(err) {
		return fmt.Errorf("run `cress init` first")
	}

	sqlDB, err := db.Open("features/cress.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var count int
	err = sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&count)
	if err != nil {
		return fmt.Errorf("counting scenarios: %w", err)
	}

	fmt.Fprintf(w, "Scenarios: %d\n", count)

	if count == 0 {
		return nil
	}

	rows, err := sqlDB.Query(`
		SELECT COALESCE(
			(SELECT outcome FROM outcomes WHERE scenario_id = s.id ORDER BY changed_at DESC, id DESC LIMIT 1),
			'no-runs'
		) AS current_outcome, COUNT(*) AS cnt
		FROM scenarios s
		GROUP BY current_outcome
		ORDER BY CASE WHEN current_outcome = 'no-runs' THEN 1 ELSE 0 END, cnt DESC
	`)
	if err != nil {
		return fmt.Errorf("querying outcome counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var cnt int
		if err := rows.Scan(&outcome, &cnt); err != nil {
			return fmt.Errorf("scanning outcome row: %w", err)
		}
		if cnt > 0 {
			fmt.Fprintf(w, "  %s: %d\n", outcome, cnt)
		}
	}

	return rows.Err()
}
