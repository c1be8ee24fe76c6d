package components

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// FrameDisplay shows the annotated camera frame, scaled to fit
type FrameDisplay struct {
	image *canvas.Image
}

// NewFrameDisplay creates a display that shows a gray placeholder until
// the first frame arrives
func NewFrameDisplay(width, height float32) *FrameDisplay {
	img := canvas.NewImageFromImage(placeholder(int(width), int(height)))
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest
	img.SetMinSize(fyne.NewSize(width, height))

	return &FrameDisplay{image: img}
}

func placeholder(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 40, G: 40, B: 40, A: 255}}, image.Point{}, draw.Src)
	return img
}

// SetFrame must be called on the fyne thread
func (fd *FrameDisplay) SetFrame(frame image.Image) {
	fd.image.Image = frame
	fd.image.Refresh()
}

func (fd *FrameDisplay) GetContainer() fyne.CanvasObject {
	return fd.image
}
