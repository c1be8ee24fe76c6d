package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows scan progress and the active mode below the frame
type StatusBar struct {
	container   *fyne.Container
	modeLabel   *widget.Label
	sidesLabel  *widget.Label
	promptLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		modeLabel:   widget.NewLabel("Scanning"),
		sidesLabel:  widget.NewLabel("Sides: 0/6"),
		promptLabel: widget.NewLabel("SPACE confirm · C calibrate · Q quit"),
	}
	sb.container = container.NewHBox(
		sb.modeLabel,
		widget.NewSeparator(),
		sb.sidesLabel,
		widget.NewSeparator(),
		sb.promptLabel,
	)
	return sb
}

// Update must be called on the fyne thread
func (sb *StatusBar) Update(scanned, total int, calibrating bool, prompt string) {
	if calibrating {
		sb.modeLabel.SetText("Calibrating")
		sb.promptLabel.SetText(prompt)
	} else {
		sb.modeLabel.SetText("Scanning")
		sb.promptLabel.SetText("SPACE confirm · C calibrate · Q quit")
	}
	sb.sidesLabel.SetText(fmt.Sprintf("Sides: %d/%d", scanned, total))
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
