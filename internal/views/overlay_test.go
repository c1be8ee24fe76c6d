package views

import (
	"testing"

	"cubescan/internal/controllers"
	"cubescan/internal/models"

	"gocv.io/x/gocv"
)

func pixel(m gocv.Mat, x, y int) models.Color {
	v := m.GetVecbAt(y, x)
	return models.NewColor(v[0], v[1], v[2])
}

func TestDrawOverlay(t *testing.T) {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	var preview models.FaceState
	for i := range preview {
		preview[i] = models.NewColor(0, 0, 255)
	}
	preview[8] = models.NewColor(255, 0, 0)

	v := controllers.View{
		Grid:       models.FaceletGrid{{X: 300, Y: 200, Width: 40, Height: 40}},
		Preview:    preview,
		HasPreview: true,
		Scanned:    2,
	}
	DrawOverlay(&frame, v)

	if got := pixel(frame, 300, 220); got != models.NewColor(36, 255, 12) {
		t.Errorf("Expected contour color on grid outline, got %v", got)
	}
	if got := pixel(frame, 320, 220); got != models.NewColor(0, 0, 0) {
		t.Errorf("Expected grid interior untouched, got %v", got)
	}

	center := TileOffset + TileSize/2
	if got := pixel(frame, center, center); got != models.NewColor(0, 0, 255) {
		t.Errorf("Expected first preview tile red, got %v", got)
	}
	last := TileOffset + 2*(TileSize+TileGap) + TileSize/2
	if got := pixel(frame, last, last); got != models.NewColor(255, 0, 0) {
		t.Errorf("Expected last preview tile blue, got %v", got)
	}

	snapshot := SnapshotOffset + TileSize/2
	if got := pixel(frame, center, snapshot); got != models.NewColor(150, 150, 150) {
		t.Errorf("Expected placeholder snapshot tile, got %v", got)
	}
}
