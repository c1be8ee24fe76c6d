// Package palette classifies facelet samples against the active reference
// palette of the six canonical cube colors.
package palette

import (
	"math"

	"cubescan/internal/colorspace"
	"cubescan/internal/models"

	"github.com/lucasb-eyer/go-colorful"
)

// Match is the result of resolving a sample against the palette
type Match struct {
	Name      models.CubeColor
	Reference models.Color
	Distance  float64
}

// Fixed display colors, independent of calibration
var prominentHex = [models.CubeColorCount]string{
	models.Green:  "#00ff00",
	models.Red:    "#ff0000",
	models.Blue:   "#0000ff",
	models.Orange: "#ffa500",
	models.White:  "#ffffff",
	models.Yellow: "#ffff00",
}

// Solver notation per canonical color
var notation = [models.CubeColorCount]byte{
	models.Green:  'F',
	models.Red:    'R',
	models.Blue:   'B',
	models.Orange: 'L',
	models.White:  'U',
	models.Yellow: 'D',
}

var prominent = buildProminent()

func buildProminent() models.Palette {
	var p models.Palette
	for _, name := range models.AllCubeColors() {
		c, err := colorful.Hex(prominentHex[name])
		if err != nil {
			panic("palette: invalid prominent color " + prominentHex[name])
		}
		r, g, b := c.RGB255()
		p[name] = models.NewColor(b, g, r)
	}
	return p
}

// DefaultPalette returns the palette used before any calibration
func DefaultPalette() models.Palette {
	return prominent
}

// ProminentFor returns the display color of a canonical color
func ProminentFor(name models.CubeColor) models.Color {
	return prominent[name]
}

// NotationFor returns the one-letter solver notation of a canonical color
func NotationFor(name models.CubeColor) byte {
	return notation[name]
}

// Classifier holds the active palette and resolves samples against it.
// It is not safe for concurrent use; the scan loop owns it.
type Classifier struct {
	palette models.Palette
	labs    [models.CubeColorCount]colorspace.Lab
}

// NewClassifier creates a classifier seeded with the given palette
func NewClassifier(p models.Palette) *Classifier {
	c := &Classifier{}
	c.InstallPalette(p)
	return c
}

// InstallPalette replaces the whole active palette
func (c *Classifier) InstallPalette(p models.Palette) {
	var labs [models.CubeColorCount]colorspace.Lab
	for _, name := range models.AllCubeColors() {
		labs[name] = colorspace.ToLab(p[name])
	}
	c.palette = p
	c.labs = labs
}

// Palette returns a copy of the active palette
func (c *Classifier) Palette() models.Palette {
	return c.palette
}

// ClosestColor returns the palette entry with the smallest CIEDE2000
// distance to sample. Ties keep the entry that comes first in
// models.AllCubeColors order.
func (c *Classifier) ClosestColor(sample models.Color) Match {
	lab := colorspace.ToLab(sample)
	best := Match{Distance: math.Inf(1)}
	for _, name := range models.AllCubeColors() {
		d := colorspace.CIEDE2000(lab, c.labs[name])
		if d < best.Distance {
			best = Match{Name: name, Reference: c.palette[name], Distance: d}
		}
	}
	return best
}

// Resolve returns only the canonical color name of sample
func (c *Classifier) Resolve(sample models.Color) models.CubeColor {
	return c.ClosestColor(sample).Name
}

// ProminentColor returns the display color for the name sample resolves to
func (c *Classifier) ProminentColor(sample models.Color) models.Color {
	return prominent[c.Resolve(sample)]
}
