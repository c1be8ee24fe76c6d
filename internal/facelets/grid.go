// Package facelets recovers the 3x3 sticker grid of a cube face from
// candidate quadrilateral contours.
package facelets

import (
	"sort"

	"cubescan/internal/models"
)

// Candidate is a closed contour reduced to what grid detection needs
type Candidate struct {
	Bounds   models.Region
	Area     float64 // contour area
	Vertices int     // vertices of the polygon approximation
}

// Params bounds the shape of an acceptable sticker
type Params struct {
	MinAspect    float64
	MaxAspect    float64
	MinWidth     float64
	MaxWidth     float64
	MinFill      float64 // contour area / bounding box area, exclusive
	NeighborStep float64 // neighbor offset as a multiple of width/height
}

// Reference frame width the size limits are tuned for
const ReferenceWidth = 640

// DefaultParams returns limits for a 640x480-class frame
func DefaultParams() Params {
	return Params{
		MinAspect:    0.8,
		MaxAspect:    1.2,
		MinWidth:     30,
		MaxWidth:     60,
		MinFill:      0.4,
		NeighborStep: 1.5,
	}
}

// ForFrameWidth scales the size limits proportionally to the frame width
func (p Params) ForFrameWidth(width int) Params {
	if width <= 0 || width == ReferenceWidth {
		return p
	}
	scale := float64(width) / ReferenceWidth
	p.MinWidth *= scale
	p.MaxWidth *= scale
	return p
}

// Accept reports whether a candidate looks like a single sticker
func (p Params) Accept(c Candidate) bool {
	if c.Vertices != 4 {
		return false
	}
	b := c.Bounds
	if b.Empty() {
		return false
	}
	aspect := float64(b.Width) / float64(b.Height)
	if aspect < p.MinAspect || aspect > p.MaxAspect {
		return false
	}
	w := float64(b.Width)
	if w < p.MinWidth || w > p.MaxWidth {
		return false
	}
	return c.Area/float64(b.Area()) > p.MinFill
}

// FindGrid filters candidates to sticker-like shapes and returns the nine
// stickers around the one whose eight compass neighbors are all present,
// in row-major order. It returns nil when no such sticker exists.
func FindGrid(candidates []Candidate, p Params) models.FaceletGrid {
	accepted := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if p.Accept(c) {
			accepted = append(accepted, c)
		}
	}
	accepted = suppressNested(accepted)
	if len(accepted) < models.FaceletCount {
		return nil
	}

	for _, c := range accepted {
		matched := neighbors(c.Bounds, accepted, p.NeighborStep)
		if len(matched) == models.FaceletCount {
			return Order(matched)
		}
	}
	return nil
}

// neighbors returns every candidate whose bounds strictly contain one of the
// nine expected sticker centers around r, r itself included
func neighbors(r models.Region, all []Candidate, step float64) []models.Region {
	cx, cy := r.Center()
	dx := float64(r.Width) * step
	dy := float64(r.Height) * step

	points := make([][2]float64, 0, models.FaceletCount)
	for _, oy := range []float64{-dy, 0, dy} {
		for _, ox := range []float64{-dx, 0, dx} {
			points = append(points, [2]float64{cx + ox, cy + oy})
		}
	}

	var matched []models.Region
	for _, other := range all {
		for _, pt := range points {
			if other.Bounds.ContainsStrict(pt[0], pt[1]) {
				matched = append(matched, other.Bounds)
				break
			}
		}
	}
	return matched
}

// suppressNested drops the smaller of two candidates that share a sticker,
// as happens with the inner and outer outline of one dilated edge ring
func suppressNested(cands []Candidate) []Candidate {
	keep := make([]bool, len(cands))
	for i := range keep {
		keep[i] = true
	}

	for i := range cands {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(cands); j++ {
			if !keep[j] || !sameSticker(cands[i].Bounds, cands[j].Bounds) {
				continue
			}
			if cands[j].Area > cands[i].Area {
				keep[i] = false
				break
			}
			keep[j] = false
		}
	}

	out := cands[:0:0]
	for i, c := range cands {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

func sameSticker(a, b models.Region) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	return a.ContainsStrict(bx, by) && b.ContainsStrict(ax, ay)
}

// Order sorts nine regions row-major: by Y into three rows of three, each
// row by X
func Order(regions []models.Region) models.FaceletGrid {
	sorted := make([]models.Region, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	grid := make(models.FaceletGrid, 0, len(sorted))
	for start := 0; start < len(sorted); start += 3 {
		end := min(start+3, len(sorted))
		row := sorted[start:end]
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		grid = append(grid, row...)
	}
	return grid
}
