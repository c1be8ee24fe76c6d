package app

import (
	"context"
	"image"

	"cubescan/internal/controllers"
	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/timing"
	"cubescan/internal/views"

	"gocv.io/x/gocv"
)

type frameSource interface {
	Read(dst *gocv.Mat) error
}

type frameAnalyzer interface {
	Analyze(ctx context.Context, frame gocv.Mat) (models.FrameResult, error)
}

type scanner interface {
	HandleFrame(models.FrameResult)
	HandleKey(models.Key) error
	Quit() bool
	Snapshot() controllers.View
}

type display interface {
	PollKey() models.Key
	Render(frame image.Image, v controllers.View)
}

// loop is the single owner of all scan state while it runs
type loop struct {
	source   frameSource
	analyzer frameAnalyzer
	scanner  scanner
	display  display
	logger   logger.Logger
	timings  *timing.Tracker
	frames   int
}

func newLoop(source frameSource, analyzer frameAnalyzer, sc scanner, d display, log logger.Logger) *loop {
	return &loop{
		source:   source,
		analyzer: analyzer,
		scanner:  sc,
		display:  d,
		logger:   log,
		timings:  timing.NewTracker(),
	}
}

// run processes frames until quit, cancellation or a camera failure.
// Cancellation is only observed between frames.
func (l *loop) run(ctx context.Context) error {
	frame := gocv.NewMat()
	defer frame.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stop := l.timings.Start("read")
		err := l.source.Read(&frame)
		stop()
		if err != nil {
			return err
		}

		stop = l.timings.Start("analyze")
		result, err := l.analyzer.Analyze(ctx, frame)
		stop()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Warning("ScanLoop", "frame skipped", map[string]interface{}{
				"frame": l.frames,
				"error": err.Error(),
			})
			result = models.FrameResult{}
		}
		l.scanner.HandleFrame(result)

		if key := l.display.PollKey(); key != models.KeyNone {
			l.logger.Debug("ScanLoop", "key received", map[string]interface{}{"key": key.String()})
			if err := l.scanner.HandleKey(key); err != nil {
				l.logger.Error("ScanLoop", err, map[string]interface{}{"key": key.String()})
			}
		}
		if l.scanner.Quit() {
			return nil
		}

		stop = l.timings.Start("render")
		view := l.scanner.Snapshot()
		views.DrawOverlay(&frame, view)
		img, err := frame.ToImage()
		if err != nil {
			l.logger.Warning("ScanLoop", "frame conversion failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			l.display.Render(img, view)
		}
		stop()
		l.frames++
	}
}
