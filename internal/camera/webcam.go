// Package camera reads BGR frames from a local video device.
package camera

import (
	"errors"
	"fmt"
	"sync"

	"cubescan/internal/logger"

	"gocv.io/x/gocv"
)

// ErrReadFailed means the device returned no frame
var ErrReadFailed = errors.New("camera read failed")

// Requested capture size; devices may ignore it
const (
	FrameWidth  = 640
	FrameHeight = 480
)

type Webcam struct {
	capture *gocv.VideoCapture
	device  int
	logger  logger.Logger
	once    sync.Once
}

// Open starts capturing from the given device index
func Open(device int, log logger.Logger) (*Webcam, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open camera %d: device not available", device)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, FrameWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, FrameHeight)

	log.Info("Camera", "device opened", map[string]interface{}{
		"device": device,
		"width":  capture.Get(gocv.VideoCaptureFrameWidth),
		"height": capture.Get(gocv.VideoCaptureFrameHeight),
	})

	return &Webcam{capture: capture, device: device, logger: log}, nil
}

// Read blocks until the next frame is written into dst
func (w *Webcam) Read(dst *gocv.Mat) error {
	if ok := w.capture.Read(dst); !ok || dst.Empty() {
		return fmt.Errorf("%w: device %d", ErrReadFailed, w.device)
	}
	return nil
}

func (w *Webcam) Close() error {
	var err error
	w.once.Do(func() {
		err = w.capture.Close()
		w.logger.Debug("Camera", "device released", map[string]interface{}{"device": w.device})
	})
	return err
}

// Shutdown lets the shutdown manager release the device
func (w *Webcam) Shutdown() {
	if err := w.Close(); err != nil {
		w.logger.Error("Camera", err, nil)
	}
}
