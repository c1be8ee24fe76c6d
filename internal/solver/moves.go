package solver

import (
	"fmt"
	"strings"
)

// Turn is the amount a side is rotated
type Turn int

const (
	Clockwise Turn = iota
	CounterClockwise
	Half
)

// Move is one token of a solution in Singmaster notation
type Move struct {
	Face byte
	Turn Turn
}

var faceNames = map[byte]string{
	'U': "top",
	'D': "bottom",
	'L': "left",
	'R': "right",
	'F': "front",
	'B': "back",
}

// ParseMove parses a single token such as R, U' or F2
func ParseMove(token string) (Move, error) {
	if len(token) == 0 || len(token) > 2 {
		return Move{}, fmt.Errorf("invalid move %q", token)
	}
	face := token[0]
	if _, ok := faceNames[face]; !ok {
		return Move{}, fmt.Errorf("invalid move %q: unknown face", token)
	}

	m := Move{Face: face, Turn: Clockwise}
	if len(token) == 2 {
		switch token[1] {
		case '\'':
			m.Turn = CounterClockwise
		case '2':
			m.Turn = Half
		default:
			return Move{}, fmt.Errorf("invalid move %q: unknown modifier", token)
		}
	}
	return m, nil
}

// ParseMoves splits a space separated solution into moves
func ParseMoves(solution string) ([]Move, error) {
	fields := strings.Fields(solution)
	moves := make([]Move, 0, len(fields))
	for _, token := range fields {
		m, err := ParseMove(token)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func (m Move) String() string {
	switch m.Turn {
	case CounterClockwise:
		return string(m.Face) + "'"
	case Half:
		return string(m.Face) + "2"
	}
	return string(m.Face)
}

// Describe renders the move as an instruction, seen with green in front
// and white on top.
func (m Move) Describe() string {
	side := faceNames[m.Face]
	switch m.Turn {
	case CounterClockwise:
		return fmt.Sprintf("Turn the %s side counterclockwise 90 degrees", side)
	case Half:
		return fmt.Sprintf("Turn the %s side 180 degrees", side)
	}
	return fmt.Sprintf("Turn the %s side clockwise 90 degrees", side)
}
