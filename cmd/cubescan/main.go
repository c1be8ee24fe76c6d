package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"cubescan/internal/app"
	"cubescan/internal/config"
	"cubescan/internal/logger"
	"cubescan/internal/report"
	"cubescan/internal/session"
	"cubescan/internal/solver"
)

// Exit codes outside the scan outcomes
const (
	exitUsage       = 64
	exitUnavailable = 69
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	log := logger.NewConsoleLogger(cfg.LogLevel)
	ctx := context.Background()

	application, err := app.NewApplication(ctx, cfg, log)
	if err != nil {
		log.Error("Main", err, nil)
		return exitUnavailable
	}

	outcome := application.Run()
	classifier := application.Classifier()

	if len(outcome.Faces) > 0 {
		fmt.Println(report.RenderNet(outcome.Faces, classifier))
		fmt.Println()
	}

	switch {
	case errors.Is(outcome.Err, session.ErrAlreadySolved):
		fmt.Println(report.Warn("SCAN", "The cube is already solved."))
		return session.ExitCode(outcome.Err)
	case errors.Is(outcome.Err, session.ErrScanIncomplete):
		fmt.Println(report.Warn("SCAN ERROR", "You did not scan in all 6 sides. Please try again."))
		return session.ExitCode(outcome.Err)
	case outcome.Err != nil:
		log.Debug("Main", "scan rejected", map[string]interface{}{"reason": outcome.Err.Error()})
		fmt.Println(report.Warn("SCAN ERROR", "You did not scan in all 6 sides correctly. Please try again."))
		return session.ExitCode(outcome.Err)
	}

	solution, err := solver.NewCommandSolver(cfg.SolverPath, log).Solve(ctx, outcome.State)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"state": outcome.State})
		fmt.Println(report.Warn("SOLVE ERROR", "You did not scan in all 6 sides correctly. Please try again."))
		return session.ExitIncorrectlyScanned
	}

	moves, err := solver.ParseMoves(solution)
	if err != nil {
		log.Error("Main", err, nil)
		return session.ExitIncorrectlyScanned
	}
	fmt.Print(report.RenderSolution(solution, moves, cfg.Normalize))
	return 0
}
