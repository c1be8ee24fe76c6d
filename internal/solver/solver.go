// Package solver hands the scanned cube state to an external two-phase
// solver and interprets its answer.
package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"cubescan/internal/logger"
)

// ErrUnsolvable means the solver rejected the state, which in practice
// means the cube was scanned incorrectly.
var ErrUnsolvable = errors.New("cube state cannot be solved")

type Solver interface {
	Solve(ctx context.Context, state string) (string, error)
}

// CommandSolver runs a solver program with the 54-character state as its
// only argument and reads the solution from stdout.
type CommandSolver struct {
	Path   string
	Logger logger.Logger
}

func NewCommandSolver(path string, log logger.Logger) *CommandSolver {
	return &CommandSolver{Path: path, Logger: log}
}

func (s *CommandSolver) Solve(ctx context.Context, state string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Path, state)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.Logger.Debug("Solver", "invoking solver", map[string]interface{}{
		"path":  s.Path,
		"state": state,
	})

	err := cmd.Run()
	output := strings.TrimSpace(stdout.String())

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return "", fmt.Errorf("%w: %s exited with %d: %s", ErrUnsolvable, s.Path, exitErr.ExitCode(),
			firstNonEmpty(strings.TrimSpace(stderr.String()), output))
	case err != nil:
		return "", fmt.Errorf("run solver %s: %w", s.Path, err)
	case strings.HasPrefix(output, "Error"):
		return "", fmt.Errorf("%w: %s", ErrUnsolvable, output)
	}

	if _, err := ParseMoves(output); err != nil {
		return "", fmt.Errorf("%w: unexpected solver output: %v", ErrUnsolvable, err)
	}
	return output, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
