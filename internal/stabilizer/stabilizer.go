// Package stabilizer suppresses single-frame classification flicker by
// taking the most frequent color over a window of frames per facelet.
package stabilizer

import "cubescan/internal/models"

// DefaultWindow is the number of frames per stabilization window
const DefaultWindow = 8

type facelet struct {
	buffer []models.Color
}

// Stabilizer keeps one window buffer per facelet index
type Stabilizer struct {
	window   int
	facelets [models.FaceletCount]facelet
}

// New creates a stabilizer; a window below 1 falls back to DefaultWindow
func New(window int) *Stabilizer {
	if window < 1 {
		window = DefaultWindow
	}
	s := &Stabilizer{window: window}
	for i := range s.facelets {
		s.facelets[i].buffer = make([]models.Color, 0, window)
	}
	return s
}

// Push records this frame's classification for facelet index and returns
// the value to show for it: the window's mode on the frame that completes a
// window, the raw classification on every other frame.
func (s *Stabilizer) Push(index int, c models.Color) models.Color {
	f := &s.facelets[index]
	f.buffer = append(f.buffer, c)

	if len(f.buffer) < s.window {
		return c
	}
	stable := Mode(f.buffer)
	f.buffer = f.buffer[:0]
	return stable
}

// Update pushes all nine classifications of one frame
func (s *Stabilizer) Update(state models.FaceState) models.FaceState {
	var out models.FaceState
	for i, c := range state {
		out[i] = s.Push(i, c)
	}
	return out
}

// Reset drops all buffered values
func (s *Stabilizer) Reset() {
	for i := range s.facelets {
		s.facelets[i].buffer = s.facelets[i].buffer[:0]
	}
}

// Mode returns the most frequent color; ties go to the value seen first
func Mode(colors []models.Color) models.Color {
	counts := make(map[models.Color]int, len(colors))
	var best models.Color
	bestCount := 0
	for _, c := range colors {
		counts[c]++
	}
	for _, c := range colors {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}
