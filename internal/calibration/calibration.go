// Package calibration walks the user through assigning a real-world sample
// to each canonical cube color and installs the result as the new palette.
package calibration

import (
	"fmt"

	"cubescan/internal/models"
)

// Order is the sequence in which colors are calibrated
var Order = [models.CubeColorCount]models.CubeColor{
	models.Green,
	models.Red,
	models.Blue,
	models.Orange,
	models.White,
	models.Yellow,
}

// PaletteInstaller receives a completed palette
type PaletteInstaller interface {
	InstallPalette(models.Palette)
}

// PaletteSaver persists a completed palette
type PaletteSaver interface {
	SavePalette(models.Palette) error
}

// session is the state of one active calibration run
type session struct {
	cursor    int
	collected map[models.CubeColor]models.Color
	done      bool
}

// Controller is idle until toggled on; each commit assigns the current
// center sample to the next color in Order.
type Controller struct {
	installer PaletteInstaller
	saver     PaletteSaver
	session   *session
}

// NewController creates an idle controller. saver may be nil.
func NewController(installer PaletteInstaller, saver PaletteSaver) *Controller {
	return &Controller{installer: installer, saver: saver}
}

// ToggleOn starts a fresh calibration run, discarding any previous one
func (c *Controller) ToggleOn() {
	c.session = &session{collected: make(map[models.CubeColor]models.Color, models.CubeColorCount)}
}

// ToggleOff discards the current run. The installed palette is unaffected.
func (c *Controller) ToggleOff() {
	c.session = nil
}

// Toggle switches between idle and a fresh run and reports whether a run
// is now active
func (c *Controller) Toggle() bool {
	if c.Active() {
		c.ToggleOff()
		return false
	}
	c.ToggleOn()
	return true
}

// Active reports whether a calibration run is in progress
func (c *Controller) Active() bool {
	return c.session != nil
}

// Done reports whether the active run has collected all six colors
func (c *Controller) Done() bool {
	return c.session != nil && c.session.done
}

// Cursor returns the number of colors collected in the active run
func (c *Controller) Cursor() int {
	if c.session == nil {
		return 0
	}
	return c.session.cursor
}

// Current returns the color awaiting a sample, if any
func (c *Controller) Current() (models.CubeColor, bool) {
	if c.session == nil || c.session.done {
		return 0, false
	}
	return Order[c.session.cursor], true
}

// Commit assigns center to the color under the cursor. When the sixth color
// is collected the palette is installed and handed to the saver; installed
// is true in that case even if saving fails. Commits outside an active,
// unfinished run are ignored.
func (c *Controller) Commit(center models.Color) (installed bool, err error) {
	s := c.session
	if s == nil || s.done {
		return false, nil
	}

	s.collected[Order[s.cursor]] = center
	s.cursor++
	if s.cursor < len(Order) {
		return false, nil
	}

	s.done = true
	var p models.Palette
	for _, name := range Order {
		p = p.With(name, s.collected[name])
	}
	c.installer.InstallPalette(p)

	if c.saver != nil {
		if err := c.saver.SavePalette(p); err != nil {
			return true, fmt.Errorf("persist calibrated palette: %w", err)
		}
	}
	return true, nil
}
