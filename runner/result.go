package runner

import "github.com/cress-bdd/cress/gherkin"

// StepStatus is the outcome of a single step.
type StepStatus int

const (
	Passed StepStatus = iota
	Failed
	Undefined
	Ambiguous
	Skipped
)

func (s StepStatus) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Undefined:
		return "undefined"
	case Ambiguous:
		return "ambiguous"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult is the outcome of one executed (or skipped) step.
type StepResult struct {
	Statement *gherkin.Statement
	Status    StepStatus
	Err       error
}

// ScenarioResult aggregates the step outcomes of one scenario,
// including its background steps.
type ScenarioResult struct {
	Scenario *gherkin.Scenario
	Steps    []StepResult
}

// Passed reports whether every step of the scenario passed.
func (r *ScenarioResult) Passed() bool {
	for _, s := range r.Steps {
		if s.Status != Passed {
			return false
		}
	}
	return true
}

// Status returns the scenario's overall outcome: the status of its
// first non-passing step, or Passed.
func (r *ScenarioResult) Status() StepStatus {
	for _, s := range r.Steps {
		if s.Status != Passed && s.Status != Skipped {
			return s.Status
		}
	}
	return Passed
}

// FeatureResult aggregates the scenario outcomes of one feature.
type FeatureResult struct {
	Feature   *gherkin.Feature
	Scenarios []*ScenarioResult
}

// Passed reports whether every scenario passed.
func (r *FeatureResult) Passed() bool {
	for _, s := range r.Scenarios {
		if !s.Passed() {
			return false
		}
	}
	return true
}
