package models

// FaceState is one reading of the nine facelets of a face, row-major
type FaceState [FaceletCount]Color

// Center returns the center facelet color
func (s FaceState) Center() Color {
	return s[CenterIndex]
}

// FrameResult is what one analyzed frame contributes to the scan
type FrameResult struct {
	Grid     FaceletGrid
	Samples  FaceState
	Detected bool
}

// Key identifies a key event relevant to scanning
type Key int

const (
	KeyNone Key = iota
	KeyConfirm
	KeyCalibrate
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyConfirm:
		return "confirm"
	case KeyCalibrate:
		return "calibrate"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}
