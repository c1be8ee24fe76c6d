package session

import "errors"

var (
	// ErrScanIncomplete means fewer than six faces were confirmed
	ErrScanIncomplete = errors.New("not all six sides were scanned")
	// ErrScanInvalid means the confirmed faces do not hold nine stickers of each color
	ErrScanInvalid = errors.New("sides were scanned incorrectly")
	// ErrAlreadySolved means the scanned cube needs no moves
	ErrAlreadySolved = errors.New("cube is already solved")
)

// Process exit codes for terminal scan outcomes
const (
	ExitIncorrectlyScanned = 1
	ExitAlreadySolved      = 2
)

// ExitCode maps a terminal scan error to its process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrAlreadySolved):
		return ExitAlreadySolved
	default:
		return ExitIncorrectlyScanned
	}
}
