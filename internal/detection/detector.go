// Package detection extracts sticker candidates from an edge map with
// OpenCV and resolves them into a facelet grid.
package detection

import (
	"fmt"

	"cubescan/internal/facelets"
	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// approxEpsilon is the polygon approximation tolerance as a fraction of
// the contour perimeter
const approxEpsilon = 0.1

type Detector struct {
	params facelets.Params
	logger logger.Logger
}

func NewDetector(params facelets.Params, log logger.Logger) *Detector {
	return &Detector{params: params, logger: log}
}

// Detect returns the ordered grid found in edges, or an empty grid
func (d *Detector) Detect(edges *safe.Mat) (models.FaceletGrid, error) {
	candidates, err := Candidates(edges)
	if err != nil {
		return nil, err
	}

	params := d.params.ForFrameWidth(edges.Cols())
	grid := facelets.FindGrid(candidates, params)

	d.logger.Debug("Detector", "contour pass complete", map[string]interface{}{
		"contours": len(candidates),
		"found":    grid.Found(),
	})
	return grid, nil
}

// Candidates lists every contour of a binary edge image, including nested
// ones, as a bounding box with area and polygon vertex count
func Candidates(edges *safe.Mat) ([]facelets.Candidate, error) {
	if err := safe.ValidateChannels(edges, "FindContours", 1); err != nil {
		return nil, fmt.Errorf("edge map: %w", err)
	}

	contours := gocv.FindContours(edges.GetMat(), gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	candidates := make([]facelets.Candidate, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		perimeter := gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, approxEpsilon*perimeter, true)
		vertices := approx.Size()
		approx.Close()

		rect := gocv.BoundingRect(contour)
		candidates = append(candidates, facelets.Candidate{
			Bounds:   models.NewRegion(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()),
			Area:     gocv.ContourArea(contour),
			Vertices: vertices,
		})
	}
	return candidates, nil
}
