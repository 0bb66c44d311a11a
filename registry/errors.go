package registry

import (
	"fmt"
	"strings"
)

// UndefinedStepError reports a sentence no registered pattern matches.
// The caller records the step and may keep aggregating other failures.
type UndefinedStepError struct {
	Sentence string
}

func (e *UndefinedStepError) Error() string {
	return fmt.Sprintf("undefined step: %q", e.Sentence)
}

// AmbiguousStepError reports a sentence matched by several definitions
// that cannot be told apart. All candidates are listed; none is picked.
type AmbiguousStepError struct {
	Sentence   string
	Candidates []*StepDefinition
}

func (e *AmbiguousStepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous step: %q matches %d definitions:", e.Sentence, len(e.Candidates))
	for _, def := range e.Candidates {
		fmt.Fprintf(&b, "\n  %s (registered at %s)", def.Pattern, def.Source)
	}
	return b.String()
}
