package services

import (
	"context"
	"image"
	"image/color"
	"testing"

	"cubescan/internal/detection"
	"cubescan/internal/facelets"
	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/processing/chain"
	"cubescan/internal/processing/filters"

	"gocv.io/x/gocv"
)

func newAnalyzer() *FrameAnalyzer {
	log := logger.NewNop()
	return NewFrameAnalyzer(
		chain.NewEdgeChain(),
		detection.NewDetector(facelets.DefaultParams(), log),
		filters.DefaultParameters(),
		log,
	)
}

func blankFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
}

func TestAnalyze_SamplesStickers(t *testing.T) {
	stickers := [9]models.Color{
		models.NewColor(255, 255, 255),
		models.NewColor(0, 255, 255),
		models.NewColor(0, 255, 0),
		models.NewColor(0, 165, 255),
		models.NewColor(0, 0, 255),
		models.NewColor(255, 255, 255),
		models.NewColor(0, 255, 255),
		models.NewColor(0, 255, 0),
		models.NewColor(0, 165, 255),
	}

	frame := blankFrame()
	defer frame.Close()
	for i, c := range stickers {
		x := 200 + (i%3)*60
		y := 120 + (i/3)*60
		fill := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		gocv.Rectangle(&frame, image.Rect(x, y, x+40, y+40), fill, -1)
	}

	result, err := newAnalyzer().Analyze(context.Background(), frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.Detected {
		t.Fatal("Expected the synthetic face to be detected")
	}
	if len(result.Grid) != 9 {
		t.Fatalf("Expected 9 regions, got %d", len(result.Grid))
	}
	for i, want := range stickers {
		if result.Samples[i] != want {
			t.Errorf("Facelet %d: expected %v, got %v", i, want, result.Samples[i])
		}
	}
}

func TestAnalyze_NoGrid(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	result, err := newAnalyzer().Analyze(context.Background(), frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Detected || result.Grid.Found() {
		t.Errorf("Expected nothing detected, got %+v", result)
	}
}

func TestAnalyze_RejectsGrayFrame(t *testing.T) {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 48, 64, gocv.MatTypeCV8UC1)
	defer frame.Close()

	if _, err := newAnalyzer().Analyze(context.Background(), frame); err == nil {
		t.Error("Expected a single channel frame to be rejected")
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newAnalyzer().Analyze(ctx, frame); err == nil {
		t.Error("Expected a cancelled context to abort analysis")
	}
}
