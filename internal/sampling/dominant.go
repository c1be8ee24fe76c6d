// Package sampling reduces a facelet region to one representative color.
package sampling

import (
	"math"
	"sort"

	"cubescan/internal/models"

	"gonum.org/v1/gonum/stat"
)

// Inset shrinks a region before sampling to keep contour edges out
type Inset struct {
	Vertical   int
	Horizontal int
}

// DefaultInset returns the inset tuned for 640x480-class frames
func DefaultInset() Inset {
	return Inset{Vertical: 7, Horizontal: 14}
}

// Apply returns r shrunk by the inset on every side. When nothing would
// remain the original region is returned with ok == false.
func (in Inset) Apply(r models.Region) (models.Region, bool) {
	shrunk := models.NewRegion(
		r.X+in.Horizontal,
		r.Y+in.Vertical,
		r.Width-2*in.Horizontal,
		r.Height-2*in.Vertical,
	)
	if shrunk.Empty() {
		return r, false
	}
	return shrunk, true
}

// TrimFraction is the share of values dropped at each tail of a channel
const TrimFraction = 0.1

// DominantColor returns the per-channel trimmed mean of pixels. A uniform
// region yields its exact color; a handful of outlier pixels does not move
// the result. An empty slice yields the zero color.
func DominantColor(pixels []models.Color) models.Color {
	if len(pixels) == 0 {
		return models.Color{}
	}

	b := make([]float64, len(pixels))
	g := make([]float64, len(pixels))
	r := make([]float64, len(pixels))
	for i, p := range pixels {
		b[i] = float64(p.B)
		g[i] = float64(p.G)
		r[i] = float64(p.R)
	}

	return models.NewColor(trimmedMean(b), trimmedMean(g), trimmedMean(r))
}

func trimmedMean(values []float64) uint8 {
	sort.Float64s(values)
	cut := int(float64(len(values)) * TrimFraction)
	kept := values[cut : len(values)-cut]
	mean := stat.Mean(kept, nil)
	return uint8(math.Max(0, math.Min(255, math.Round(mean))))
}
