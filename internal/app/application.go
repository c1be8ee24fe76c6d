// Package app wires the camera, frame analysis, scan controller and
// preview window into the interactive scan loop.
package app

import (
	"context"
	"errors"
	"fmt"

	"cubescan/internal/camera"
	"cubescan/internal/config"
	"cubescan/internal/controllers"
	"cubescan/internal/detection"
	"cubescan/internal/facelets"
	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/palette"
	"cubescan/internal/processing/chain"
	"cubescan/internal/services"
	"cubescan/internal/settings"
	"cubescan/internal/shutdown"
	"cubescan/internal/views"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

// Outcome is what a finished scan hands back to the command line
type Outcome struct {
	State string
	Faces map[models.CubeColor]models.FaceState
	Err   error
}

type Application struct {
	fyneApp    fyne.App
	window     *views.PreviewWindow
	webcam     *camera.Webcam
	analyzer   *services.FrameAnalyzer
	controller *controllers.ScanController
	classifier *palette.Classifier
	shutdown   *shutdown.Manager
	logger     logger.Logger

	done    chan struct{}
	loopErr error
}

// NewApplication opens the camera and builds every component. Failing to
// open the camera is fatal.
func NewApplication(ctx context.Context, cfg *config.Config, log logger.Logger) (*Application, error) {
	classifier := palette.NewClassifier(palette.DefaultPalette())
	store := settings.NewStore(cfg.SettingsPath)
	loadPalette(store, classifier, log)

	webcam, err := camera.Open(cfg.CameraDevice, log)
	if err != nil {
		return nil, err
	}

	fyneApp := fyneapp.NewWithID(views.AppID)
	window := views.NewPreviewWindow(fyneApp, cfg.WindowWidth, log)

	analyzer := services.NewFrameAnalyzer(
		chain.NewEdgeChain(),
		detection.NewDetector(facelets.DefaultParams(), log),
		cfg.EdgeParameters(),
		log,
	)

	manager := shutdown.NewManager(ctx, log)
	manager.Register(webcam)

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		webcam:     webcam,
		analyzer:   analyzer,
		controller: controllers.NewScanController(classifier, store, log),
		classifier: classifier,
		shutdown:   manager,
		logger:     log,
		done:       make(chan struct{}),
	}, nil
}

func loadPalette(store *settings.Store, classifier *palette.Classifier, log logger.Logger) {
	p, ok, err := store.LoadPalette()
	switch {
	case err != nil:
		log.Warning("Application", "stored palette unreadable, using defaults", map[string]interface{}{
			"path":  store.Path(),
			"error": err.Error(),
		})
	case !ok:
		log.Info("Application", "no calibrated palette, using defaults", map[string]interface{}{
			"path": store.Path(),
		})
	default:
		classifier.InstallPalette(p)
		log.Info("Application", "calibrated palette loaded", map[string]interface{}{
			"path": store.Path(),
		})
	}
}

// Classifier exposes the active palette for reporting
func (a *Application) Classifier() *palette.Classifier {
	return a.classifier
}

// Run shows the window and blocks until the scan ends by key, window close,
// signal or camera failure. It must be called from the main goroutine.
func (a *Application) Run() Outcome {
	a.shutdown.Listen()
	loopCtx, stopLoop := context.WithCancel(a.shutdown.Context())
	go a.scanLoop(loopCtx)

	a.window.Show()
	a.fyneApp.Run()

	// the platform can end the event loop before the scan loop notices
	stopLoop()
	<-a.done
	a.shutdown.Shutdown()

	if a.loopErr != nil {
		a.logger.Error("Application", a.loopErr, nil)
	}

	state, err := a.controller.Finish()
	return Outcome{State: state, Faces: a.controller.Faces(), Err: err}
}

func (a *Application) scanLoop(ctx context.Context) {
	defer close(a.done)
	defer a.window.Close()

	l := newLoop(a.webcam, a.analyzer, a.controller, a.window, a.logger)
	if err := l.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.loopErr = fmt.Errorf("scan loop: %w", err)
	}
	fields := l.timings.Fields()
	fields["frames"] = l.frames
	a.logger.Debug("Application", "scan loop finished", fields)
}
