package gherkin

import (
	"fmt"
	"strings"
)

// SyntaxError reports a grammar violation with enough positional data
// for a caller to render a diagnostic. No partial AST accompanies it.
type SyntaxError struct {
	Filename string
	Line     int // 1-based
	Column   int // 1-based
	LineText string
	Message  string
}

func (e *SyntaxError) Error() string {
	filename := e.Filename
	if filename == "" {
		filename = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", filename, e.Line, e.Column, e.Message)
}

// Pointer returns the offending line followed by a caret aligned with
// the error column.
func (e *SyntaxError) Pointer() string {
	return e.LineText + "\n" + strings.Repeat(" ", e.Column-1) + "^"
}

func syntaxErrorf(filename string, line, column int, lineText, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Filename: filename,
		Line:     line,
		Column:   column,
		LineText: lineText,
		Message:  fmt.Sprintf(format, args...),
	}
}
