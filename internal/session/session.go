// Package session accumulates confirmed faces and turns a complete, valid
// scan into the 54-character notation string consumed by the solver.
package session

import (
	"fmt"
	"strings"

	"cubescan/internal/models"
	"cubescan/internal/palette"
)

// Resolver maps a sample to its canonical color
type Resolver interface {
	Resolve(models.Color) models.CubeColor
}

// NotationOrder lists the faces by center color in solver order U R F D L B
var NotationOrder = [models.CubeColorCount]models.CubeColor{
	models.White,
	models.Red,
	models.Green,
	models.Yellow,
	models.Orange,
	models.Blue,
}

// Session holds at most one confirmed face per center color
type Session struct {
	resolver Resolver
	faces    map[models.CubeColor]models.FaceState
}

// New creates an empty session that resolves colors with resolver
func New(resolver Resolver) *Session {
	return &Session{
		resolver: resolver,
		faces:    make(map[models.CubeColor]models.FaceState, models.CubeColorCount),
	}
}

// Confirm stores state under the color its center resolves to, replacing
// any face previously confirmed with the same center
func (s *Session) Confirm(state models.FaceState) models.CubeColor {
	center := s.resolver.Resolve(state.Center())
	s.faces[center] = state
	return center
}

// Len returns the number of confirmed faces
func (s *Session) Len() int {
	return len(s.faces)
}

// IsComplete reports whether all six faces are confirmed
func (s *Session) IsComplete() bool {
	return len(s.faces) == models.CubeColorCount
}

// Faces returns a copy of the confirmed faces
func (s *Session) Faces() map[models.CubeColor]models.FaceState {
	out := make(map[models.CubeColor]models.FaceState, len(s.faces))
	for k, v := range s.faces {
		out[k] = v
	}
	return out
}

// Counts returns how many of the stored samples resolve to each color
func (s *Session) Counts() [models.CubeColorCount]int {
	var counts [models.CubeColorCount]int
	for _, face := range s.faces {
		for _, c := range face {
			counts[s.resolver.Resolve(c)]++
		}
	}
	return counts
}

// Validate checks that every canonical color appears exactly nine times
// across the six faces
func (s *Session) Validate() error {
	if !s.IsComplete() {
		return fmt.Errorf("%w: %d of %d sides", ErrScanIncomplete, s.Len(), models.CubeColorCount)
	}

	counts := s.Counts()
	var wrong []string
	for _, name := range models.AllCubeColors() {
		if counts[name] != models.FaceletCount {
			wrong = append(wrong, fmt.Sprintf("%s=%d", name, counts[name]))
		}
	}
	if len(wrong) > 0 {
		return fmt.Errorf("%w: color counts %s", ErrScanInvalid, strings.Join(wrong, ", "))
	}
	return nil
}

// IsAlreadySolved reports whether every face is uniformly its center color
func (s *Session) IsAlreadySolved() bool {
	for _, face := range s.faces {
		center := s.resolver.Resolve(face.Center())
		for _, c := range face {
			if s.resolver.Resolve(c) != center {
				return false
			}
		}
	}
	return true
}

// ToNotation concatenates the faces in U R F D L B order, each face
// row-major, one notation letter per sticker
func (s *Session) ToNotation() (string, error) {
	var b strings.Builder
	b.Grow(models.CubeColorCount * models.FaceletCount)

	for _, center := range NotationOrder {
		face, ok := s.faces[center]
		if !ok {
			return "", fmt.Errorf("%w: missing %s side", ErrScanIncomplete, center)
		}
		for _, c := range face {
			b.WriteByte(palette.NotationFor(s.resolver.Resolve(c)))
		}
	}
	return b.String(), nil
}

// Result evaluates the session once scanning has ended and returns the
// notation string or the terminal error describing why there is none
func (s *Session) Result() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if s.IsAlreadySolved() {
		return "", ErrAlreadySolved
	}
	return s.ToNotation()
}
