// Package runner executes parsed features against a step registry,
// firing lifecycle hooks around each node. It owns no matching or
// parsing logic itself.
package runner

import (
	"errors"
	"fmt"

	"github.com/cress-bdd/cress/gherkin"
	"github.com/cress-bdd/cress/registry"
)

// Runner drives a feature through the registries.
type Runner struct {
	Steps     *registry.StepRegistry
	Callbacks *registry.CallbackRegistry
}

// New returns a Runner over the given registries. A nil callback
// registry is replaced with an empty one.
func New(steps *registry.StepRegistry, callbacks *registry.CallbackRegistry) *Runner {
	if callbacks == nil {
		callbacks = registry.NewCallbackRegistry()
	}
	return &Runner{Steps: steps, Callbacks: callbacks}
}

// RunFeature executes every scenario of the feature. Background steps
// run before each scenario's own steps. Step failures are aggregated
// into the result; only a hook error aborts the run.
func (r *Runner) RunFeature(feature *gherkin.Feature) (*FeatureResult, error) {
	result := &FeatureResult{Feature: feature}

	if err := r.fire(registry.BeforeFeature, feature); err != nil {
		return nil, err
	}

	for _, scenario := range feature.Scenarios {
		sr, err := r.runScenario(feature, scenario)
		if err != nil {
			return nil, err
		}
		result.Scenarios = append(result.Scenarios, sr)
	}

	if err := r.fire(registry.AfterFeature, feature); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Runner) runScenario(feature *gherkin.Feature, scenario *gherkin.Scenario) (*ScenarioResult, error) {
	sr := &ScenarioResult{Scenario: scenario}

	if err := r.fire(registry.BeforeScenario, scenario); err != nil {
		return nil, err
	}

	steps := make([]*gherkin.Statement, 0, len(scenario.Steps))
	if feature.Background != nil {
		steps = append(steps, feature.Background.Steps...)
	}
	steps = append(steps, scenario.Steps...)

	halted := false
	for _, stmt := range steps {
		if halted {
			sr.Steps = append(sr.Steps, StepResult{Statement: stmt, Status: Skipped})
			continue
		}
		res, err := r.runStep(stmt)
		if err != nil {
			return nil, err
		}
		sr.Steps = append(sr.Steps, res)
		if res.Status != Passed {
			halted = true
		}
	}

	if err := r.fire(registry.AfterScenario, scenario); err != nil {
		return nil, err
	}
	return sr, nil
}

func (r *Runner) runStep(stmt *gherkin.Statement) (StepResult, error) {
	if err := r.fire(registry.BeforeStep, stmt); err != nil {
		return StepResult{}, err
	}

	res := StepResult{Statement: stmt}
	def, err := r.Steps.Match(stmt.Sentence())
	switch {
	case err == nil:
		ctx := &registry.StepContext{
			Sentence: stmt.Sentence(),
			Role:     stmt.Role,
			Args:     def.Args(stmt.Sentence()),
		}
		if stmt.Table != nil {
			ctx.Table = stmt.Table.Rows
		}
		if stmt.DocString != nil {
			ctx.DocString = stmt.DocString.Content
		}
		if herr := def.Handler(ctx); herr != nil {
			res.Status = Failed
			res.Err = herr
		} else {
			res.Status = Passed
		}
	case isUndefined(err):
		res.Status = Undefined
		res.Err = err
	case isAmbiguous(err):
		res.Status = Ambiguous
		res.Err = err
	default:
		return StepResult{}, fmt.Errorf("matching step at line %d: %w", stmt.Line, err)
	}

	if err := r.fire(registry.AfterStep, stmt); err != nil {
		return StepResult{}, err
	}
	return res, nil
}

func (r *Runner) fire(event registry.Event, node any) error {
	for _, hook := range r.Callbacks.HooksFor(event) {
		if err := hook(node); err != nil {
			return fmt.Errorf("%s hook: %w", event, err)
		}
	}
	return nil
}

func isUndefined(err error) bool {
	var undefined *registry.UndefinedStepError
	return errors.As(err, &undefined)
}

func isAmbiguous(err error) bool {
	var ambiguous *registry.AmbiguousStepError
	return errors.As(err, &ambiguous)
}
