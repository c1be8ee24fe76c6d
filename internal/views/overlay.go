package views

import (
	"fmt"
	"image"
	"image/color"

	"cubescan/internal/controllers"
	"cubescan/internal/models"

	"gocv.io/x/gocv"
)

// Layout of the mini sticker grids drawn in the top-left corner
const (
	TileSize       = 30
	TileGap        = 4
	TileOffset     = 20
	SnapshotOffset = 130
)

var (
	contourColor     = color.RGBA{R: 12, G: 255, B: 36, A: 255}
	placeholderColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	textColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	promptColor      = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

// DrawOverlay annotates frame in place with the detected grid, the live
// preview, the last confirmed face and the scan progress
func DrawOverlay(frame *gocv.Mat, v controllers.View) {
	for _, r := range v.Grid {
		gocv.Rectangle(frame, r.Rect(), contourColor, 2)
	}

	drawTiles(frame, image.Pt(TileOffset, TileOffset), v.Preview, v.HasPreview)
	drawTiles(frame, image.Pt(TileOffset, SnapshotOffset), v.Snapshot, v.HasSnapshot)

	rows := frame.Rows()
	progress := fmt.Sprintf("scanned sides: %d/%d", v.Scanned, models.CubeColorCount)
	gocv.PutText(frame, progress, image.Pt(TileOffset, rows-20), gocv.FontHersheyTriplex, 0.5, textColor, 1)

	if v.Calibrating {
		gocv.PutText(frame, "CALIBRATION MODE", image.Pt(TileOffset, rows-70), gocv.FontHersheyTriplex, 0.6, promptColor, 1)
		gocv.PutText(frame, v.Prompt, image.Pt(TileOffset, rows-45), gocv.FontHersheyTriplex, 0.5, promptColor, 1)
	}
}

func drawTiles(frame *gocv.Mat, origin image.Point, state models.FaceState, present bool) {
	for i := 0; i < models.FaceletCount; i++ {
		x := origin.X + (i%3)*(TileSize+TileGap)
		y := origin.Y + (i/3)*(TileSize+TileGap)

		fill := placeholderColor
		if present {
			c := state[i]
			fill = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		}
		gocv.Rectangle(frame, image.Rect(x, y, x+TileSize, y+TileSize), fill, -1)
	}
}
