package session

import (
	"errors"
	"testing"

	"cubescan/internal/models"
	"cubescan/internal/palette"
)

const scrambled = "DRLUUBFBRBLURRLRUBLRDDFDLFUFUFFDBRDUBRUFLLFDDBFLUBLRBD"

var letterColor = map[byte]models.CubeColor{
	'U': models.White,
	'R': models.Red,
	'F': models.Green,
	'D': models.Yellow,
	'L': models.Orange,
	'B': models.Blue,
}

func newSession() *Session {
	return New(palette.NewClassifier(palette.DefaultPalette()))
}

func uniformFace(name models.CubeColor) models.FaceState {
	var f models.FaceState
	for i := range f {
		f[i] = palette.ProminentFor(name)
	}
	return f
}

func faceFromLetters(letters string) models.FaceState {
	var f models.FaceState
	for i := 0; i < models.FaceletCount; i++ {
		f[i] = palette.ProminentFor(letterColor[letters[i]])
	}
	return f
}

func solvedSession() *Session {
	s := newSession()
	for _, name := range models.AllCubeColors() {
		s.Confirm(uniformFace(name))
	}
	return s
}

func TestConfirm_KeyedByCenter(t *testing.T) {
	s := newSession()
	face := uniformFace(models.Red)
	face[0] = palette.ProminentFor(models.Blue)

	if got := s.Confirm(face); got != models.Red {
		t.Errorf("Expected face keyed by red, got %v", got)
	}
	// Re-confirming the same center overwrites
	s.Confirm(uniformFace(models.Red))
	if s.Len() != 1 {
		t.Errorf("Expected one face, got %d", s.Len())
	}
	if s.Faces()[models.Red][0] != palette.ProminentFor(models.Red) {
		t.Error("Expected the second confirmation to replace the first")
	}
}

func TestValidate_Incomplete(t *testing.T) {
	s := newSession()
	for _, name := range models.AllCubeColors()[:5] {
		s.Confirm(uniformFace(name))
	}
	if s.IsComplete() {
		t.Fatal("Expected five faces to be incomplete")
	}
	if err := s.Validate(); !errors.Is(err, ErrScanIncomplete) {
		t.Errorf("Expected ErrScanIncomplete, got %v", err)
	}
	if _, err := s.Result(); !errors.Is(err, ErrScanIncomplete) {
		t.Errorf("Expected Result to report ErrScanIncomplete, got %v", err)
	}
}

func TestValidate_CountsPerColor(t *testing.T) {
	s := solvedSession()
	if err := s.Validate(); err != nil {
		t.Fatalf("Expected solved cube to validate, got %v", err)
	}

	// One white sticker replaced by red gives ten reds and eight whites
	face := uniformFace(models.White)
	face[2] = palette.ProminentFor(models.Red)
	s.Confirm(face)

	err := s.Validate()
	if !errors.Is(err, ErrScanInvalid) {
		t.Fatalf("Expected ErrScanInvalid, got %v", err)
	}
	if _, err := s.Result(); !errors.Is(err, ErrScanInvalid) {
		t.Errorf("Expected Result to report ErrScanInvalid, got %v", err)
	}
}

func TestIsAlreadySolved(t *testing.T) {
	s := solvedSession()
	if !s.IsAlreadySolved() {
		t.Fatal("Expected uniform faces to be solved")
	}

	// Swap one sticker between two faces: still nine of each color
	white := uniformFace(models.White)
	red := uniformFace(models.Red)
	white[0], red[0] = red[0], white[0]
	s.Confirm(white)
	s.Confirm(red)

	if err := s.Validate(); err != nil {
		t.Fatalf("Expected swapped cube to stay valid, got %v", err)
	}
	if s.IsAlreadySolved() {
		t.Error("Expected swapped cube not to be solved")
	}
}

func TestResult_SolvedShortCircuits(t *testing.T) {
	notation, err := solvedSession().Result()
	if !errors.Is(err, ErrAlreadySolved) {
		t.Fatalf("Expected ErrAlreadySolved, got %v", err)
	}
	if notation != "" {
		t.Errorf("Expected no notation for a solved cube, got %q", notation)
	}
}

func TestResult_ScrambledNotation(t *testing.T) {
	s := newSession()
	// confirm in a different order than the output order
	for _, i := range []int{5, 2, 0, 4, 1, 3} {
		s.Confirm(faceFromLetters(scrambled[i*9 : i*9+9]))
	}

	got, err := s.Result()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != scrambled {
		t.Errorf("Expected %s, got %s", scrambled, got)
	}
}

func TestResult_SwappedNotation(t *testing.T) {
	s := solvedSession()
	white := uniformFace(models.White)
	red := uniformFace(models.Red)
	white[0], red[0] = red[0], white[0]
	s.Confirm(white)
	s.Confirm(red)

	want := "RUUUUUUUU" + "URRRRRRRR" + "FFFFFFFFF" + "DDDDDDDDD" + "LLLLLLLLL" + "BBBBBBBBB"
	got, err := s.Result()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{nil, 0},
		{ErrScanIncomplete, ExitIncorrectlyScanned},
		{ErrScanInvalid, ExitIncorrectlyScanned},
		{ErrAlreadySolved, ExitAlreadySolved},
		{errors.New("solver failed"), ExitIncorrectlyScanned},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.expected {
			t.Errorf("ExitCode(%v): expected %d, got %d", tt.err, tt.expected, got)
		}
	}
}
