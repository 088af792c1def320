package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"mutagate.dev/pkg/mutagate/internal/adapter"
	m "mutagate.dev/pkg/mutagate/internal/model"
)

const mutantFileMode fs.FileMode = 0o600

// EvaluateArgs carries the run-wide parameters for evaluating mutations.
type EvaluateArgs struct {
	BaseDir     m.Path
	TestCommand string
	Timeout     time.Duration
}

// Orchestrator evaluates a single mutation against the test command. Two
// isolation strategies exist: in-place scoped substitution of the live file
// (sequential runs only; the file on disk is the shared resource), and a
// private temp-directory copy of the project (safe for parallel workers).
type Orchestrator interface {
	EvaluateInPlace(ctx context.Context, args EvaluateArgs, mutation m.Mutation) (m.Evaluation, error)
	EvaluateIsolated(ctx context.Context, args EvaluateArgs, mutation m.Mutation) (m.Evaluation, error)
}

type orchestrator struct {
	fsAdapter   adapter.SourceFSAdapter
	testAdapter adapter.TestRunnerAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided filesystem
// and test runner adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, testAdapter adapter.TestRunnerAdapter) Orchestrator {
	return &orchestrator{
		fsAdapter:   fsAdapter,
		testAdapter: testAdapter,
	}
}

// EvaluateInPlace substitutes the mutation into the live source file, runs the
// test command, and restores the original bytes on every exit path. A failed
// restore is returned as a *model.RestoreError and must abort the whole run:
// continuing would evaluate every later mutation against a corrupted tree.
func (o *orchestrator) EvaluateInPlace(ctx context.Context, args EvaluateArgs, mutation m.Mutation) (eval m.Evaluation, err error) {
	target := o.fsAdapter.JoinPath(string(args.BaseDir), string(mutation.File))

	original, err := o.fsAdapter.ReadFile(ctx, target)
	if err != nil {
		return m.Evaluation{}, fmt.Errorf("failed to read %s before substitution: %w", target, err)
	}

	mode := mutantFileMode
	if info, statErr := o.fsAdapter.FileInfo(ctx, target); statErr == nil {
		mode = info.Mode()
	}

	if werr := o.fsAdapter.WriteFile(ctx, target, mutation.MutatedCode, mode); werr != nil {
		return m.Evaluation{}, fmt.Errorf("failed to substitute mutant into %s: %w", target, werr)
	}

	defer func() {
		// Restoration runs even when the surrounding context is cancelled.
		restoreCtx := context.WithoutCancel(ctx)
		if rerr := o.fsAdapter.WriteFile(restoreCtx, target, original, mode); rerr != nil {
			err = errors.Join(err, &m.RestoreError{File: mutation.File, Err: rerr})
		}
	}()

	result := o.testAdapter.RunCommand(ctx, string(args.BaseDir), args.TestCommand, args.Timeout)

	return evaluationFor(mutation, result), nil
}

// EvaluateIsolated copies the project into a private temp directory, writes
// the mutated file there, and runs the test command inside the copy. Workspace
// setup failures are harness errors for this one mutation, not run failures.
func (o *orchestrator) EvaluateIsolated(ctx context.Context, args EvaluateArgs, mutation m.Mutation) (m.Evaluation, error) {
	tmpDir, err := o.fsAdapter.CreateTempDir(ctx, "mutagate-mutation-*")
	if err != nil {
		slog.Error("Failed to create temp dir", "mutation", mutation.ID, "error", err)
		return harnessFailure(mutation, err), nil
	}

	defer o.cleanupTempDir(ctx, tmpDir)

	if err := o.fsAdapter.CopyDir(ctx, args.BaseDir, tmpDir); err != nil {
		slog.Error("Failed to copy project to temp dir", "baseDir", args.BaseDir, "tmpDir", tmpDir, "error", err)
		return harnessFailure(mutation, err), nil
	}

	target := o.fsAdapter.JoinPath(string(tmpDir), string(mutation.File))
	if err := o.fsAdapter.WriteFile(ctx, target, mutation.MutatedCode, mutantFileMode); err != nil {
		slog.Error("Failed to write mutated file", "path", target, "error", err)
		return harnessFailure(mutation, err), nil
	}

	result := o.testAdapter.RunCommand(ctx, string(tmpDir), args.TestCommand, args.Timeout)

	return evaluationFor(mutation, result), nil
}

// cleanupTempDir removes the temporary directory, logging errors if cleanup fails.
func (o *orchestrator) cleanupTempDir(ctx context.Context, tmpDir m.Path) {
	if err := o.fsAdapter.RemoveAll(context.WithoutCancel(ctx), tmpDir); err != nil {
		slog.Error("Failed to cleanup temp dir", "tmpDir", tmpDir, "error", err)
	}
}

func evaluationFor(mutation m.Mutation, result adapter.TestResult) m.Evaluation {
	eval := m.Evaluation{
		Mutation: mutation,
		Output:   result.Output,
	}

	switch result.Status {
	case adapter.TestFailed, adapter.TestTimedOut:
		// A timed-out suite counts as a kill: a hung test is evidence the
		// mutation broke something. Contractual, not incidental.
		eval.Killed = true
	case adapter.TestNotStarted:
		eval.HarnessError = result.Err.Error()
	case adapter.TestPassed:
	}

	return eval
}

func harnessFailure(mutation m.Mutation, err error) m.Evaluation {
	return m.Evaluation{
		Mutation:     mutation,
		HarnessError: err.Error(),
	}
}
