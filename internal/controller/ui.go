// Package controller provides output adapters for displaying gate results.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

// UI defines the interface for presenting a gate run. Implementations can use
// different output methods (plain text, JSON, TTY progress view).
type UI interface {
	Start(ctx context.Context, totalMutations, threads int) error
	Close(ctx context.Context)
	DisplayStartingTest(ctx context.Context, mutation m.Mutation)
	DisplayCompletedTest(ctx context.Context, evaluation m.Evaluation)
	DisplayReport(ctx context.Context, report m.Report) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
