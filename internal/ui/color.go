package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/cress-bdd/cress/gherkin"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	trkStyle   = lipgloss.NewStyle().Faint(true)
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func OKLine(w io.Writer, path string) {
	fmt.Fprintln(w, okStyle.Render("ok")+"   "+path)
}

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, okStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func ErrLine(w io.Writer, path string) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path)
}

// SyntaxErrorBlock renders the error position and message followed by
// the offending line with a caret under the error column.
func SyntaxErrorBlock(w io.Writer, err *gherkin.SyntaxError) {
	fmt.Fprintln(w, errStyle.Render(err.Error()))
	fmt.Fprintln(w, caretStyle.Render(err.Pointer()))
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d files\n", count)
}

func ListRow(w io.Writer, id int64, fileName, name, outcome string, idWidth, fileWidth, nameWidth int) {
	style := trkStyle
	switch outcome {
	case "passed":
		style = okStyle
	case "failed", "undefined", "ambiguous":
		style = errStyle
	}
	fmt.Fprintf(w, "%-*d  %-*s  %-*s  %s\n", idWidth, id, fileWidth, fileName, nameWidth, name, style.Render(outcome))
}

func OutcomeConfirm(w io.Writer, id int64, prev, outcome string) {
	if prev == "" {
		fmt.Fprintf(w, "scenario %d: %s\n", id, outcome)
		return
	}
	fmt.Fprintf(w, "scenario %d: %s -> %s\n", id, prev, outcome)
}
