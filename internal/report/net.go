// Package report renders the scan outcome for the terminal.
package report

import (
	"fmt"
	"strings"

	"cubescan/internal/models"
	"cubescan/internal/palette"
	"cubescan/internal/solver"

	"github.com/charmbracelet/lipgloss"
)

// Resolver maps a raw sample to its canonical color
type Resolver interface {
	Resolve(models.Color) models.CubeColor
}

const cellWidth = 3

var (
	missingCell = lipgloss.NewStyle().Width(cellWidth).Foreground(lipgloss.Color("#666666"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// RenderNet draws the unfolded cube with white on top and green in front:
//
//	  U
//	L F R B
//	  D
func RenderNet(faces map[models.CubeColor]models.FaceState, resolver Resolver) string {
	render := func(center models.CubeColor) string {
		face, ok := faces[center]
		return renderFace(face, ok, resolver)
	}

	blank := strings.Repeat(" ", lipgloss.Width(render(models.White))+1)
	top := lipgloss.JoinHorizontal(lipgloss.Top, blank, render(models.White))
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		render(models.Orange), " ",
		render(models.Green), " ",
		render(models.Red), " ",
		render(models.Blue),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, blank, render(models.Yellow))

	return lipgloss.JoinVertical(lipgloss.Left, top, middle, bottom)
}

func renderFace(face models.FaceState, present bool, resolver Resolver) string {
	rows := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			if !present {
				cells = append(cells, missingCell.Render(" · "))
				continue
			}
			name := resolver.Resolve(face[row*3+col])
			cells = append(cells, cellStyle(name).Render(" "+string(palette.NotationFor(name))+" "))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cellStyle(name models.CubeColor) lipgloss.Style {
	c := palette.ProminentFor(name)
	style := lipgloss.NewStyle().
		Width(cellWidth).
		Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))).
		Foreground(lipgloss.Color("#000000"))
	if name == models.Blue || name == models.Red {
		style = style.Foreground(lipgloss.Color("#ffffff"))
	}
	return style
}

// RenderSolution formats the solver answer with its move count and, when
// describe is set, one numbered instruction per move.
func RenderSolution(solution string, moves []solver.Move, describe bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("-- SOLUTION --"))
	b.WriteString("\nStarting position:\n    front: green\n    top: white\n\n")
	fmt.Fprintf(&b, "%s (%s)\n", solution, MoveCount(len(moves)))

	if describe && len(moves) > 0 {
		steps := make([]string, 0, len(moves))
		for i, m := range moves {
			steps = append(steps, fmt.Sprintf("%d. %s", i+1, m.Describe()))
		}
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(strings.Join(steps, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// MoveCount returns "1 move" or "N moves"
func MoveCount(n int) string {
	if n == 1 {
		return "1 move"
	}
	return fmt.Sprintf("%d moves", n)
}

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d7af00"))

// Warn styles a message shown when no solution can be printed
func Warn(title, message string) string {
	return warnStyle.Render(fmt.Sprintf("[%s] %s", title, message))
}
