package adapter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// TestStatus classifies one test-command invocation.
type TestStatus int

const (
	// TestPassed means the command exited zero within the timeout.
	TestPassed TestStatus = iota
	// TestFailed means the command ran and exited nonzero.
	TestFailed
	// TestTimedOut means the command exceeded the execution bound and was killed.
	TestTimedOut
	// TestNotStarted means the command could not be started at all. This is a
	// harness problem, not a verdict on the mutation.
	TestNotStarted
)

// TestResult carries the classified outcome of a test-command invocation.
type TestResult struct {
	Status TestStatus
	Output string
	Err    error
}

// TestRunnerAdapter abstracts test-command execution for mutation evaluation.
type TestRunnerAdapter interface {
	// RunCommand executes the configured shell command with workDir as its
	// working directory, bounded by timeout. Only the exit status is
	// interpreted; combined stdout/stderr is captured for diagnostics.
	RunCommand(ctx context.Context, workDir, command string, timeout time.Duration) TestResult
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct{}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{}
}

// RunCommand runs command via `sh -c` in workDir. Exceeding the timeout kills
// the process group via the command context.
func (a *LocalTestRunnerAdapter) RunCommand(ctx context.Context, workDir, command string, timeout time.Duration) TestResult {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "sh", "-c", command)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return TestResult{Status: TestNotStarted, Err: err}
	}

	err := cmd.Wait()
	output := stdout.String() + stderr.String()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return TestResult{Status: TestTimedOut, Output: output, Err: runCtx.Err()}
	}

	if err != nil {
		return TestResult{Status: TestFailed, Output: output, Err: err}
	}

	return TestResult{Status: TestPassed, Output: output}
}
