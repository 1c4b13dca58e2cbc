package bootstrap

import (
	"context"
)

// Executor runs bootstrap steps in order and stops at the first failure.
type Executor struct {
	steps []Step
}

// NewExecutor constructs an Executor for the provided steps.
func NewExecutor(steps []Step) *Executor {
	return &Executor{steps: append([]Step{}, steps...)}
}

// Execute runs every step against the shared environment and state.
func (executor *Executor) Execute(executionContext context.Context, environment *Environment, state *State) error {
	for stepIndex := range executor.steps {
		step := executor.steps[stepIndex]
		if step == nil {
			continue
		}
		if executeError := step.Execute(executionContext, environment, state); executeError != nil {
			return StepError{StepName: step.Name(), Cause: executeError}
		}
	}
	return nil
}
