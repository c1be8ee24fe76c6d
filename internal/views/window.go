// Package views renders the live camera preview and turns key presses into
// scan commands.
package views

import (
	"image"

	"cubescan/internal/controllers"
	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

const (
	AppID     = "io.github.cubescan"
	AppName   = "Cube Scanner"
	keyBuffer = 8
)

// PreviewWindow shows annotated frames. Key presses are queued for the scan
// loop, which drains at most one per frame.
type PreviewWindow struct {
	window  fyne.Window
	display *components.FrameDisplay
	status  *components.StatusBar
	keys    chan models.Key
	logger  logger.Logger
}

func NewPreviewWindow(app fyne.App, width int, log logger.Logger) *PreviewWindow {
	height := float32(width) * 3 / 4

	pw := &PreviewWindow{
		window:  app.NewWindow(AppName),
		display: components.NewFrameDisplay(float32(width), height),
		status:  components.NewStatusBar(),
		keys:    make(chan models.Key, keyBuffer),
		logger:  log,
	}

	pw.window.SetContent(container.NewBorder(nil, pw.status.GetContainer(), nil, nil, pw.display.GetContainer()))
	pw.window.SetPadded(false)
	pw.window.SetMaster()
	pw.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		pw.handleKey(KeyFor(ev.Name))
	})
	pw.window.SetCloseIntercept(func() {
		pw.logger.Info("PreviewWindow", "window close requested", nil)
		pw.handleKey(models.KeyQuit)
	})

	return pw
}

// KeyFor maps a typed key to a scan command
func KeyFor(name fyne.KeyName) models.Key {
	switch name {
	case fyne.KeySpace:
		return models.KeyConfirm
	case fyne.KeyC:
		return models.KeyCalibrate
	case fyne.KeyEscape, fyne.KeyQ:
		return models.KeyQuit
	}
	return models.KeyNone
}

func (pw *PreviewWindow) handleKey(k models.Key) {
	if k == models.KeyNone {
		return
	}
	select {
	case pw.keys <- k:
	default:
		pw.logger.Warning("PreviewWindow", "key dropped, queue full", map[string]interface{}{
			"key": k.String(),
		})
	}
}

// PollKey returns the next queued command without blocking
func (pw *PreviewWindow) PollKey() models.Key {
	select {
	case k := <-pw.keys:
		return k
	default:
		return models.KeyNone
	}
}

// Render schedules a frame and its status on the fyne thread. Safe to call
// from any goroutine.
func (pw *PreviewWindow) Render(frame image.Image, v controllers.View) {
	fyne.Do(func() {
		pw.display.SetFrame(frame)
		pw.status.Update(v.Scanned, models.CubeColorCount, v.Calibrating, v.Prompt)
	})
}

func (pw *PreviewWindow) Show() {
	pw.window.Show()
}

// Close closes the window from any goroutine; as the master window this
// also ends the fyne event loop
func (pw *PreviewWindow) Close() {
	fyne.Do(pw.window.Close)
}
