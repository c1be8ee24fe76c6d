package models

import "image"

// Region is an axis-aligned bounding box in frame coordinates
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRegion creates a new Region
func NewRegion(x, y, width, height int) Region {
	return Region{X: x, Y: y, Width: width, Height: height}
}

// Center returns the center point of the region
func (r Region) Center() (float64, float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

// ContainsStrict reports whether the point lies strictly inside the region
func (r Region) ContainsStrict(x, y float64) bool {
	return float64(r.X) < x && x < float64(r.X+r.Width) &&
		float64(r.Y) < y && y < float64(r.Y+r.Height)
}

// Area returns width times height
func (r Region) Area() int {
	return r.Width * r.Height
}

// Rect converts the region to an image.Rectangle
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty reports whether the region has no pixels
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// FaceletGrid holds the nine facelet regions of one detected face in
// row-major order, or nothing when no face was found.
type FaceletGrid []Region

// FaceletCount is the number of facelets on one face
const FaceletCount = 9

// CenterIndex is the index of the center facelet within a FaceletGrid
const CenterIndex = 4

// Found reports whether the grid holds a full face
func (g FaceletGrid) Found() bool {
	return len(g) == FaceletCount
}
