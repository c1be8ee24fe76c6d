// Package chain runs an ordered list of Mat processing steps.
package chain

import (
	"context"
	"fmt"

	"cubescan/internal/opencv/safe"
	"cubescan/internal/processing/filters"
)

type ProcessingStep interface {
	Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error)
	Name() string
	ShouldExecute(params map[string]interface{}) bool
}

type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

// NewEdgeChain builds grayscale, blur, Canny and dilation in that order
func NewEdgeChain() *ProcessingChain {
	pc := NewProcessingChain(nil)
	pc.AddStep(filters.NewGrayscaleConverter())
	pc.AddStep(filters.NewGaussianFilter())
	pc.AddStep(filters.NewCannyDetector())
	pc.AddStep(filters.NewDilateFilter())
	return pc
}

// Execute always returns a Mat owned by the caller, distinct from input.
// Intermediate results are closed as the chain advances.
func (pc *ProcessingChain) Execute(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	current := input

	release := func() {
		if current != input {
			current.Close()
		}
	}

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		default:
		}

		if !step.ShouldExecute(params) {
			continue
		}

		result, err := step.Apply(ctx, current, params)
		if err != nil {
			release()
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		release()
		current = result
	}

	if current == input {
		return input.Clone()
	}
	return current, nil
}

// AddStep appends step to the end of the chain
func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
