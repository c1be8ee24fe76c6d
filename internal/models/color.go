package models

import (
	"fmt"
	"strings"
)

// Color is a device color sample in blue-green-red channel order, as
// delivered by the camera. It is comparable and usable as a map key.
type Color struct {
	B uint8
	G uint8
	R uint8
}

// NewColor creates a Color from blue, green and red components
func NewColor(b, g, r uint8) Color {
	return Color{B: b, G: g, R: r}
}

// Triple returns the color as a [b, g, r] integer triple
func (c Color) Triple() [3]int {
	return [3]int{int(c.B), int(c.G), int(c.R)}
}

func (c Color) String() string {
	return fmt.Sprintf("bgr(%d,%d,%d)", c.B, c.G, c.R)
}

// ColorFromTriple builds a Color from a [b, g, r] triple, rejecting
// components outside 0-255
func ColorFromTriple(t [3]int) (Color, error) {
	for i, v := range t {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("color component %d out of range: %d", i, v)
		}
	}
	return Color{B: uint8(t[0]), G: uint8(t[1]), R: uint8(t[2])}, nil
}

// CubeColor enumerates the six canonical sticker colors
type CubeColor int

const (
	Green CubeColor = iota
	Red
	Blue
	Orange
	White
	Yellow
)

// CubeColorCount is the number of canonical colors
const CubeColorCount = 6

var cubeColorNames = [CubeColorCount]string{
	Green:  "green",
	Red:    "red",
	Blue:   "blue",
	Orange: "orange",
	White:  "white",
	Yellow: "yellow",
}

func (c CubeColor) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return cubeColorNames[c]
}

// Valid reports whether c is one of the six canonical colors
func (c CubeColor) Valid() bool {
	return c >= Green && c <= Yellow
}

// AllCubeColors returns the canonical colors in iteration order
func AllCubeColors() []CubeColor {
	return []CubeColor{Green, Red, Blue, Orange, White, Yellow}
}

// ParseCubeColor resolves a canonical color from its lowercase name
func ParseCubeColor(name string) (CubeColor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range cubeColorNames {
		if n == name {
			return CubeColor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cube color %q", name)
}

// Palette maps every canonical color to its reference sample. Being an
// array indexed by CubeColor it always holds exactly six entries.
type Palette [CubeColorCount]Color

// Get returns the reference color for name
func (p Palette) Get(name CubeColor) Color {
	return p[name]
}

// With returns a copy of the palette with name set to c
func (p Palette) With(name CubeColor, c Color) Palette {
	p[name] = c
	return p
}
