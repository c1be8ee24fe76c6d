package controllers

import (
	"errors"
	"strings"
	"testing"

	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/palette"
	"cubescan/internal/session"
	"cubescan/internal/stabilizer"
)

type recordingSaver struct {
	saved []models.Palette
	err   error
}

func (r *recordingSaver) SavePalette(p models.Palette) error {
	r.saved = append(r.saved, p)
	return r.err
}

var grid = models.FaceletGrid{
	{X: 200, Y: 120, Width: 40, Height: 40}, {X: 260, Y: 120, Width: 40, Height: 40}, {X: 320, Y: 120, Width: 40, Height: 40},
	{X: 200, Y: 180, Width: 40, Height: 40}, {X: 260, Y: 180, Width: 40, Height: 40}, {X: 320, Y: 180, Width: 40, Height: 40},
	{X: 200, Y: 240, Width: 40, Height: 40}, {X: 260, Y: 240, Width: 40, Height: 40}, {X: 320, Y: 240, Width: 40, Height: 40},
}

func uniform(c models.Color) models.FaceState {
	var f models.FaceState
	for i := range f {
		f[i] = c
	}
	return f
}

func detected(samples models.FaceState) models.FrameResult {
	return models.FrameResult{Grid: grid, Samples: samples, Detected: true}
}

// show feeds a full stabilization window of the same face
func show(sc *ScanController, samples models.FaceState) {
	for i := 0; i < stabilizer.DefaultWindow; i++ {
		sc.HandleFrame(detected(samples))
	}
}

func newController(saver *recordingSaver) (*ScanController, *palette.Classifier) {
	classifier := palette.NewClassifier(palette.DefaultPalette())
	return NewScanController(classifier, saver, logger.NewNop()), classifier
}

func TestConfirm_IgnoredWithoutPreview(t *testing.T) {
	sc, _ := newController(&recordingSaver{})

	if err := sc.HandleKey(models.KeyConfirm); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	v := sc.Snapshot()
	if v.Scanned != 0 || v.HasSnapshot {
		t.Errorf("Expected nothing confirmed, got %+v", v)
	}
}

func TestHandleFrame_PreviewAndConfirm(t *testing.T) {
	sc, _ := newController(&recordingSaver{})

	// slightly off samples still display as the prominent color
	sample := models.NewColor(10, 240, 15)
	sc.HandleFrame(detected(uniform(sample)))

	v := sc.Snapshot()
	if !v.HasPreview {
		t.Fatal("Expected a preview after a detected frame")
	}
	if v.Preview[0] != palette.ProminentFor(models.Green) {
		t.Errorf("Expected green display color, got %v", v.Preview[0])
	}
	if len(v.Grid) != 9 {
		t.Errorf("Expected grid to be exposed, got %d regions", len(v.Grid))
	}

	if err := sc.HandleKey(models.KeyConfirm); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	v = sc.Snapshot()
	if v.Scanned != 1 || !v.HasSnapshot {
		t.Errorf("Expected one confirmed side, got %+v", v)
	}
	if v.Snapshot[4] != palette.ProminentFor(models.Green) {
		t.Errorf("Expected green snapshot, got %v", v.Snapshot[4])
	}
}

func TestHandleFrame_NoGridKeepsPreview(t *testing.T) {
	sc, _ := newController(&recordingSaver{})
	sc.HandleFrame(detected(uniform(palette.ProminentFor(models.Red))))
	sc.HandleFrame(models.FrameResult{})

	v := sc.Snapshot()
	if !v.HasPreview || v.Preview[4] != palette.ProminentFor(models.Red) {
		t.Errorf("Expected red preview to survive an empty frame, got %+v", v)
	}
	if v.Grid.Found() {
		t.Error("Expected no grid for an empty frame")
	}
}

func TestHandleFrame_NextFaceShownBeforeWindowFills(t *testing.T) {
	sc, _ := newController(&recordingSaver{})
	show(sc, uniform(palette.ProminentFor(models.White)))
	if err := sc.HandleKey(models.KeyConfirm); err != nil {
		t.Fatal(err)
	}

	sc.HandleFrame(detected(uniform(palette.ProminentFor(models.Red))))
	if got := sc.Snapshot().Preview[4]; got != palette.ProminentFor(models.Red) {
		t.Fatalf("Expected red preview on the first frame of a new face, got %v", got)
	}
	if err := sc.HandleKey(models.KeyConfirm); err != nil {
		t.Fatal(err)
	}

	faces := sc.Faces()
	if _, ok := faces[models.Red]; !ok || len(faces) != 2 {
		t.Errorf("Expected white and red sides confirmed, got %v", faces)
	}
}

func TestFinish_SolvedCube(t *testing.T) {
	sc, _ := newController(&recordingSaver{})

	for _, name := range models.AllCubeColors() {
		show(sc, uniform(palette.ProminentFor(name)))
		if err := sc.HandleKey(models.KeyConfirm); err != nil {
			t.Fatal(err)
		}
	}

	if got := sc.Snapshot().Scanned; got != 6 {
		t.Fatalf("Expected 6 sides, got %d", got)
	}
	if _, err := sc.Finish(); !errors.Is(err, session.ErrAlreadySolved) {
		t.Errorf("Expected ErrAlreadySolved, got %v", err)
	}
	if len(sc.Faces()) != 6 {
		t.Errorf("Expected 6 faces, got %d", len(sc.Faces()))
	}
}

func TestFinish_Incomplete(t *testing.T) {
	sc, _ := newController(&recordingSaver{})
	show(sc, uniform(palette.ProminentFor(models.White)))
	sc.HandleKey(models.KeyConfirm)

	if _, err := sc.Finish(); !errors.Is(err, session.ErrScanIncomplete) {
		t.Errorf("Expected ErrScanIncomplete, got %v", err)
	}
}

var muted = models.Palette{
	models.Green:  models.NewColor(60, 160, 20),
	models.Red:    models.NewColor(40, 30, 190),
	models.Blue:   models.NewColor(170, 60, 10),
	models.Orange: models.NewColor(20, 110, 240),
	models.White:  models.NewColor(220, 225, 230),
	models.Yellow: models.NewColor(30, 210, 220),
}

func TestCalibration_FullRun(t *testing.T) {
	saver := &recordingSaver{}
	sc, classifier := newController(saver)

	sc.HandleKey(models.KeyCalibrate)
	v := sc.Snapshot()
	if !v.Calibrating {
		t.Fatal("Expected calibration mode")
	}
	if !strings.Contains(v.Prompt, "green") {
		t.Errorf("Expected green prompt first, got %q", v.Prompt)
	}

	for _, name := range []models.CubeColor{
		models.Green, models.Red, models.Blue, models.Orange, models.White, models.Yellow,
	} {
		face := uniform(models.NewColor(0, 0, 0))
		face[models.CenterIndex] = muted[name]
		sc.HandleFrame(detected(face))
		if err := sc.HandleKey(models.KeyConfirm); err != nil {
			t.Fatalf("Commit %s: %v", name, err)
		}
	}

	if classifier.Palette() != muted {
		t.Errorf("Expected calibrated palette installed, got %v", classifier.Palette())
	}
	if len(saver.saved) != 1 || saver.saved[0] != muted {
		t.Errorf("Expected palette saved once, got %v", saver.saved)
	}
	if !strings.Contains(sc.Snapshot().Prompt, "done") {
		t.Errorf("Expected completion prompt, got %q", sc.Snapshot().Prompt)
	}
	if sc.Snapshot().HasPreview {
		t.Error("Expected preview reset after a palette change")
	}

	// further confirms while calibrating neither scan nor recalibrate
	sc.HandleKey(models.KeyConfirm)
	if sc.Snapshot().Scanned != 0 || len(saver.saved) != 1 {
		t.Error("Expected confirm to be ignored after calibration completed")
	}

	sc.HandleKey(models.KeyCalibrate)
	if sc.Snapshot().Calibrating {
		t.Error("Expected calibration mode to end")
	}
}

func TestCalibration_RequiresGrid(t *testing.T) {
	saver := &recordingSaver{}
	sc, _ := newController(saver)

	sc.HandleFrame(detected(uniform(muted[models.Green])))
	sc.HandleKey(models.KeyCalibrate)
	sc.HandleFrame(models.FrameResult{})
	sc.HandleKey(models.KeyConfirm)

	if !strings.Contains(sc.Snapshot().Prompt, "green") {
		t.Errorf("Expected commit without grid to be ignored, got %q", sc.Snapshot().Prompt)
	}
}

func TestCalibration_SaveFailure(t *testing.T) {
	saver := &recordingSaver{err: errors.New("read-only file system")}
	sc, classifier := newController(saver)

	sc.HandleKey(models.KeyCalibrate)
	var err error
	for _, name := range models.AllCubeColors() {
		sc.HandleFrame(detected(uniform(muted[name])))
		err = sc.HandleKey(models.KeyConfirm)
	}

	if !errors.Is(err, saver.err) {
		t.Errorf("Expected save error to surface, got %v", err)
	}
	if classifier.Palette() != muted {
		t.Error("Expected palette installed despite save failure")
	}
}

func TestCalibration_PartialRunDiscarded(t *testing.T) {
	sc, classifier := newController(&recordingSaver{})

	sc.HandleKey(models.KeyCalibrate)
	sc.HandleFrame(detected(uniform(muted[models.Green])))
	sc.HandleKey(models.KeyConfirm)
	sc.HandleKey(models.KeyCalibrate)

	if classifier.Palette() != palette.DefaultPalette() {
		t.Error("Expected partial calibration to leave the palette untouched")
	}
	if sc.Snapshot().Prompt != "" {
		t.Errorf("Expected no prompt outside calibration, got %q", sc.Snapshot().Prompt)
	}
}

func TestQuit(t *testing.T) {
	sc, _ := newController(&recordingSaver{})
	if sc.Quit() {
		t.Fatal("Expected not quitting initially")
	}
	sc.HandleKey(models.KeyNone)
	if sc.Quit() {
		t.Fatal("Expected KeyNone to be ignored")
	}
	sc.HandleKey(models.KeyQuit)
	if !sc.Quit() {
		t.Error("Expected quit after KeyQuit")
	}
}
