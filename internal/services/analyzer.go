// Package services turns raw camera frames into facelet samples.
package services

import (
	"context"
	"fmt"

	"cubescan/internal/detection"
	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/opencv/safe"
	"cubescan/internal/processing/chain"
	"cubescan/internal/sampling"

	"gocv.io/x/gocv"
)

// FrameAnalyzer runs edge preprocessing, grid detection and color sampling
// on one frame at a time. It keeps no per-frame state.
type FrameAnalyzer struct {
	chain    *chain.ProcessingChain
	detector *detection.Detector
	inset    sampling.Inset
	params   map[string]interface{}
	logger   logger.Logger
}

func NewFrameAnalyzer(
	edgeChain *chain.ProcessingChain,
	detector *detection.Detector,
	params map[string]interface{},
	log logger.Logger,
) *FrameAnalyzer {
	log.Debug("FrameAnalyzer", "edge chain ready", map[string]interface{}{
		"steps": edgeChain.StepCount(),
		"names": edgeChain.GetStepNames(),
	})
	return &FrameAnalyzer{
		chain:    edgeChain,
		detector: detector,
		inset:    sampling.DefaultInset(),
		params:   params,
		logger:   log,
	}
}

// Analyze detects the facelet grid in a BGR frame and samples the dominant
// color of each facelet. A frame without a grid is not an error.
func (fa *FrameAnalyzer) Analyze(ctx context.Context, frame gocv.Mat) (models.FrameResult, error) {
	var result models.FrameResult

	input, err := safe.NewMatFromMat(frame, "frame")
	if err != nil {
		return result, fmt.Errorf("wrap frame: %w", err)
	}
	defer input.Close()

	if err := safe.ValidateChannels(input, "Analyze", 3); err != nil {
		return result, err
	}

	edges, err := fa.chain.Execute(ctx, input, fa.params)
	if err != nil {
		return result, fmt.Errorf("edge preprocessing: %w", err)
	}
	defer edges.Close()

	grid, err := fa.detector.Detect(edges)
	if err != nil {
		return result, fmt.Errorf("detect grid: %w", err)
	}
	if !grid.Found() {
		return result, nil
	}

	for i, region := range grid {
		sample, err := fa.sample(input, region)
		if err != nil {
			return models.FrameResult{}, fmt.Errorf("sample facelet %d: %w", i, err)
		}
		result.Samples[i] = sample
	}
	result.Grid = grid
	result.Detected = true
	return result, nil
}

func (fa *FrameAnalyzer) sample(frame *safe.Mat, region models.Region) (models.Color, error) {
	target, ok := fa.inset.Apply(region)
	if !ok {
		target = region
	}

	raw, err := frame.BGRPixels(target.Rect())
	if err != nil {
		return models.Color{}, err
	}

	pixels := make([]models.Color, len(raw))
	for i, p := range raw {
		pixels[i] = models.NewColor(p[0], p[1], p[2])
	}
	return sampling.DominantColor(pixels), nil
}
