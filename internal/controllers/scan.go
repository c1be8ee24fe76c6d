// Package controllers holds the scan state machine driven by analyzed
// frames and key presses.
package controllers

import (
	"fmt"

	"cubescan/internal/calibration"
	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/palette"
	"cubescan/internal/session"
	"cubescan/internal/stabilizer"
)

// View is the read model handed to the renderer after each frame
type View struct {
	Grid        models.FaceletGrid
	Preview     models.FaceState // display colors
	HasPreview  bool
	Snapshot    models.FaceState // display colors
	HasSnapshot bool
	Scanned     int
	Calibrating bool
	Prompt      string
}

// ScanController owns every piece of mutable scan state. It is not safe
// for concurrent use; the application loop is its only caller.
type ScanController struct {
	classifier  *palette.Classifier
	stabilizer  *stabilizer.Stabilizer
	calibration *calibration.Controller
	session     *session.Session
	logger      logger.Logger

	grid        models.FaceletGrid
	rawCenter   models.Color
	preview     models.FaceState
	hasPreview  bool
	snapshot    models.FaceState
	hasSnapshot bool
	quit        bool
}

func NewScanController(classifier *palette.Classifier, saver calibration.PaletteSaver, log logger.Logger) *ScanController {
	return &ScanController{
		classifier:  classifier,
		stabilizer:  stabilizer.New(stabilizer.DefaultWindow),
		calibration: calibration.NewController(classifier, saver),
		session:     session.New(classifier),
		logger:      log,
	}
}

// HandleFrame classifies the samples of a detected grid against the palette
// and folds them into the stabilized preview. Frames without a grid keep
// the previous preview.
func (sc *ScanController) HandleFrame(result models.FrameResult) {
	sc.grid = result.Grid
	if !result.Detected {
		return
	}

	var classified models.FaceState
	for i, sample := range result.Samples {
		classified[i] = sc.classifier.ClosestColor(sample).Reference
	}
	sc.preview = sc.stabilizer.Update(classified)
	sc.hasPreview = true
	sc.rawCenter = result.Samples.Center()
}

// HandleKey applies one key press. The returned error is informational;
// scanning continues.
func (sc *ScanController) HandleKey(key models.Key) error {
	switch key {
	case models.KeyConfirm:
		if sc.calibration.Active() {
			return sc.commitCalibration()
		}
		sc.confirmFace()
	case models.KeyCalibrate:
		active := sc.calibration.Toggle()
		sc.logger.Info("ScanController", "calibration mode toggled", map[string]interface{}{
			"active": active,
		})
	case models.KeyQuit:
		sc.quit = true
	}
	return nil
}

func (sc *ScanController) confirmFace() {
	if !sc.hasPreview {
		sc.logger.Debug("ScanController", "confirm ignored, nothing detected yet", nil)
		return
	}

	center := sc.session.Confirm(sc.preview)
	sc.snapshot = sc.preview
	sc.hasSnapshot = true

	sc.logger.Info("ScanController", "side confirmed", map[string]interface{}{
		"center":  center.String(),
		"scanned": sc.session.Len(),
	})
}

func (sc *ScanController) commitCalibration() error {
	if sc.calibration.Done() {
		return nil
	}
	if !sc.grid.Found() {
		sc.logger.Debug("ScanController", "calibration commit ignored, no grid in frame", nil)
		return nil
	}

	name, _ := sc.calibration.Current()
	installed, err := sc.calibration.Commit(sc.rawCenter)
	sc.logger.Info("ScanController", "calibration sample taken", map[string]interface{}{
		"color":  name.String(),
		"sample": sc.rawCenter.String(),
	})

	if installed {
		// buffered values refer to the old palette
		sc.stabilizer.Reset()
		sc.hasPreview = false
		sc.logger.Info("ScanController", "calibrated palette installed", nil)
	}
	return err
}

// Quit reports whether the user asked to stop
func (sc *ScanController) Quit() bool {
	return sc.quit
}

// Snapshot builds the render model for the current state
func (sc *ScanController) Snapshot() View {
	v := View{
		Grid:        sc.grid,
		HasPreview:  sc.hasPreview,
		HasSnapshot: sc.hasSnapshot,
		Scanned:     sc.session.Len(),
		Calibrating: sc.calibration.Active(),
	}
	if sc.hasPreview {
		v.Preview = sc.display(sc.preview)
	}
	if sc.hasSnapshot {
		v.Snapshot = sc.display(sc.snapshot)
	}
	if v.Calibrating {
		v.Prompt = sc.calibrationPrompt()
	}
	return v
}

func (sc *ScanController) display(state models.FaceState) models.FaceState {
	var out models.FaceState
	for i, c := range state {
		out[i] = sc.classifier.ProminentColor(c)
	}
	return out
}

func (sc *ScanController) calibrationPrompt() string {
	name, pending := sc.calibration.Current()
	if !pending {
		return "Calibration done, press C to continue scanning"
	}
	return fmt.Sprintf("Show the %s center and press SPACE (%d/%d)",
		name, sc.calibration.Cursor()+1, models.CubeColorCount)
}

// Faces returns the confirmed faces for reporting
func (sc *ScanController) Faces() map[models.CubeColor]models.FaceState {
	return sc.session.Faces()
}

// Finish evaluates the session once scanning has ended
func (sc *ScanController) Finish() (string, error) {
	return sc.session.Result()
}
