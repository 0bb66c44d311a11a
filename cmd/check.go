package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/cress-bdd/cress/gherkin"
	"github.com/cress-bdd/cress/internal/ui"
)

var astFlag bool

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Parse feature files and report syntax errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args, astFlag)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&astFlag, "ast", false, "Dump the parsed syntax tree")
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(w io.Writer, paths []string, dumpAST bool) error {
	if len(paths) == 0 {
		matches, err := filepath.Glob("features/*.feature")
		if err != nil {
			return fmt.Errorf("scanning features/: %w", err)
		}
		sort.Strings(matches)
		paths = matches
	}
	if len(paths) == 0 {
		return fmt.Errorf("no feature files found")
	}

	failed := 0
	for _, path := range paths {
		feature, err := gherkin.ParseFile(path)
		if err != nil {
			failed++
			var syntaxErr *gherkin.SyntaxError
			if errors.As(err, &syntaxErr) {
				ui.SyntaxErrorBlock(w, syntaxErr)
			} else {
				fmt.Fprintln(w, err)
			}
			continue
		}
		ui.OKLine(w, path)
		if dumpAST {
			repr.New(w, repr.Indent("  ")).Println(feature)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}
