// Package registry matches step sentences against registered handlers
// and stores lifecycle callbacks, both under a deterministic priority
// policy.
//
// Registries are process-lifetime mutable state: populated while step
// modules load, queried while scenarios run, and selectively cleared
// between independent runs. Register and Clear take the write lock;
// concurrent Match calls against a stable registry only share the read
// lock.
package registry

import (
	"fmt"
	"regexp"
	"runtime"
	"sync"
)

// Handler is the callable bound to a step pattern. The registry never
// inspects it.
type Handler func(ctx *StepContext) error

// StepContext carries everything a handler may need about the matched
// step.
type StepContext struct {
	Sentence  string
	Role      string     // Given, When or Then after And-normalization
	Args      []string   // regexp capture groups, in order
	Table     [][]string // set when the step carried a data table
	DocString string     // set when the step carried a doc string
}

// StepDefinition is one registered (pattern, handler) pair.
type StepDefinition struct {
	Pattern  string
	Handler  Handler
	Priority PriorityClass
	Source   string // file:line of the registration call

	re  *regexp.Regexp
	seq int
}

// StepRegistry maps sentence patterns to handlers.
type StepRegistry struct {
	mu   sync.RWMutex
	defs []*StepDefinition
	seq  int
}

// NewStepRegistry returns an empty step registry.
func NewStepRegistry() *StepRegistry {
	return &StepRegistry{}
}

// Register adds a definition at the default User class. The pattern is
// a regular expression matched against the whole sentence.
func (r *StepRegistry) Register(pattern string, h Handler) (*StepDefinition, error) {
	return r.register(User, pattern, h)
}

// RegisterAt adds a definition at an explicit priority class.
func (r *StepRegistry) RegisterAt(class PriorityClass, pattern string, h Handler) (*StepDefinition, error) {
	return r.register(class, pattern, h)
}

func (r *StepRegistry) register(class PriorityClass, pattern string, h Handler) (*StepDefinition, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("compiling step pattern %q: %w", pattern, err)
	}

	source := "unknown"
	if _, file, line, ok := runtime.Caller(2); ok {
		source = fmt.Sprintf("%s:%d", file, line)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	def := &StepDefinition{
		Pattern:  pattern,
		Handler:  h,
		Priority: class,
		Source:   source,
		re:       re,
		seq:      r.seq,
	}
	r.seq++
	r.defs = append(r.defs, def)
	return def, nil
}

// Match selects exactly one definition for the sentence.
//
// Among matching definitions the highest priority class wins; within a
// class the pattern with the longest literal span wins; remaining ties
// go to the first registered definition. Two definitions with the same
// pattern source at the winning class are ambiguous and reported with
// the full candidate list.
func (r *StepRegistry) Match(sentence string) (*StepDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *StepDefinition
	var candidates []*StepDefinition
	for _, def := range r.defs {
		if !def.re.MatchString(sentence) {
			continue
		}
		candidates = append(candidates, def)
		if best == nil || beats(def, best) {
			best = def
		}
	}
	if best == nil {
		return nil, &UndefinedStepError{Sentence: sentence}
	}

	var conflicts []*StepDefinition
	for _, def := range candidates {
		if def.Priority == best.Priority && def.Pattern == best.Pattern {
			conflicts = append(conflicts, def)
		}
	}
	if len(conflicts) > 1 {
		return nil, &AmbiguousStepError{Sentence: sentence, Candidates: conflicts}
	}
	return best, nil
}

// Args returns the capture groups of the definition's pattern for the
// sentence, excluding the whole-match group.
func (d *StepDefinition) Args(sentence string) []string {
	groups := d.re.FindStringSubmatch(sentence)
	if len(groups) <= 1 {
		return nil
	}
	return groups[1:]
}

// beats reports whether a should be preferred over b. b was registered
// earlier than a, so equal rank keeps b.
func beats(a, b *StepDefinition) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return literalSpan(a.Pattern) > literalSpan(b.Pattern)
}

// literalSpan counts pattern runes that match themselves, ranking a
// mostly-literal pattern above a wildcard-heavy one.
func literalSpan(pattern string) int {
	n := 0
	for _, r := range pattern {
		switch r {
		case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
		default:
			n++
		}
	}
	return n
}

// Clear removes definitions at or below the given class. Clearing User
// keeps Library and System definitions registered.
func (r *StepRegistry) Clear(class PriorityClass) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.defs[:0]
	for _, def := range r.defs {
		if def.Priority > class {
			kept = append(kept, def)
		}
	}
	r.defs = kept
}

// ClearAll removes every definition.
func (r *StepRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = nil
}

// Len returns the number of registered definitions.
func (r *StepRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
