package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mutagate.dev/pkg/mutagate/internal/adapter"
	m "mutagate.dev/pkg/mutagate/internal/model"
)

func newTestOrchestrator() Orchestrator {
	return NewOrchestrator(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalTestRunnerAdapter())
}

func writeProject(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "calc.go"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write project file: %v", err)
	}

	return dir
}

func TestOrchestrator_EvaluateInPlace_RestoresOriginal(t *testing.T) {
	dir := writeProject(t, "original content\n")
	orch := newTestOrchestrator()

	args := EvaluateArgs{BaseDir: m.Path(dir), TestCommand: "true", Timeout: 10 * time.Second}
	mutation := m.Mutation{ID: "abc", File: "calc.go", MutatedCode: []byte("mutant content\n")}

	eval, err := orch.EvaluateInPlace(context.Background(), args, mutation)
	if err != nil {
		t.Fatalf("EvaluateInPlace failed: %v", err)
	}

	if eval.Killed {
		t.Fatalf("a passing test command must leave the mutation surviving")
	}

	restored, err := os.ReadFile(filepath.Join(dir, "calc.go"))
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}

	if string(restored) != "original content\n" {
		t.Fatalf("file not restored, got %q", restored)
	}
}

func TestOrchestrator_EvaluateInPlace_SubstitutesMutant(t *testing.T) {
	dir := writeProject(t, "original content\n")
	orch := newTestOrchestrator()

	// The test command sees the mutated bytes on disk.
	args := EvaluateArgs{BaseDir: m.Path(dir), TestCommand: "grep -q mutant calc.go", Timeout: 10 * time.Second}
	mutation := m.Mutation{ID: "abc", File: "calc.go", MutatedCode: []byte("mutant content\n")}

	eval, err := orch.EvaluateInPlace(context.Background(), args, mutation)
	if err != nil {
		t.Fatalf("EvaluateInPlace failed: %v", err)
	}

	if eval.Killed {
		t.Fatalf("grep finding the mutant means the command passed, expected survived")
	}
}

func TestOrchestrator_EvaluateInPlace_FailingCommandKills(t *testing.T) {
	dir := writeProject(t, "original content\n")
	orch := newTestOrchestrator()

	args := EvaluateArgs{BaseDir: m.Path(dir), TestCommand: "exit 1", Timeout: 10 * time.Second}
	mutation := m.Mutation{ID: "abc", File: "calc.go", MutatedCode: []byte("mutant content\n")}

	eval, err := orch.EvaluateInPlace(context.Background(), args, mutation)
	if err != nil {
		t.Fatalf("EvaluateInPlace failed: %v", err)
	}

	if !eval.Killed {
		t.Fatalf("a failing test command must kill the mutation")
	}
}

func TestOrchestrator_EvaluateInPlace_TimeoutCountsAsKill(t *testing.T) {
	dir := writeProject(t, "original content\n")
	orch := newTestOrchestrator()

	args := EvaluateArgs{BaseDir: m.Path(dir), TestCommand: "sleep 5", Timeout: 100 * time.Millisecond}
	mutation := m.Mutation{ID: "abc", File: "calc.go", MutatedCode: []byte("mutant content\n")}

	eval, err := orch.EvaluateInPlace(context.Background(), args, mutation)
	if err != nil {
		t.Fatalf("EvaluateInPlace failed: %v", err)
	}

	if !eval.Killed {
		t.Fatalf("a timed-out test command must kill the mutation")
	}

	restored, err := os.ReadFile(filepath.Join(dir, "calc.go"))
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}

	if string(restored) != "original content\n" {
		t.Fatalf("file not restored after timeout, got %q", restored)
	}
}

func TestOrchestrator_EvaluateInPlace_MissingFile(t *testing.T) {
	dir := t.TempDir()
	orch := newTestOrchestrator()

	args := EvaluateArgs{BaseDir: m.Path(dir), TestCommand: "true", Timeout: 10 * time.Second}
	mutation := m.Mutation{ID: "abc", File: "ghost.go", MutatedCode: []byte("mutant\n")}

	if _, err := orch.EvaluateInPlace(context.Background(), args, mutation); err == nil {
		t.Fatalf("expected an error when the target file does not exist")
	}
}

func TestOrchestrator_EvaluateIsolated_LeavesProjectUntouched(t *testing.T) {
	dir := writeProject(t, "original content\n")
	orch := newTestOrchestrator()

	args := EvaluateArgs{BaseDir: m.Path(dir), TestCommand: "exit 1", Timeout: 10 * time.Second}
	mutation := m.Mutation{ID: "abc", File: "calc.go", MutatedCode: []byte("mutant content\n")}

	eval, err := orch.EvaluateIsolated(context.Background(), args, mutation)
	if err != nil {
		t.Fatalf("EvaluateIsolated failed: %v", err)
	}

	if !eval.Killed {
		t.Fatalf("a failing test command must kill the mutation")
	}

	content, err := os.ReadFile(filepath.Join(dir, "calc.go"))
	if err != nil {
		t.Fatalf("failed to read project file: %v", err)
	}

	if string(content) != "original content\n" {
		t.Fatalf("isolated evaluation modified the project, got %q", content)
	}
}

func TestOrchestrator_EvaluateIsolated_MutantVisibleInWorkspace(t *testing.T) {
	dir := writeProject(t, "original content\n")
	orch := newTestOrchestrator()

	args := EvaluateArgs{BaseDir: m.Path(dir), TestCommand: "grep -q mutant calc.go", Timeout: 10 * time.Second}
	mutation := m.Mutation{ID: "abc", File: "calc.go", MutatedCode: []byte("mutant content\n")}

	eval, err := orch.EvaluateIsolated(context.Background(), args, mutation)
	if err != nil {
		t.Fatalf("EvaluateIsolated failed: %v", err)
	}

	if eval.Killed {
		t.Fatalf("expected the workspace copy to carry the mutant")
	}
}

func TestOrchestrator_EvaluateIsolated_SetupFailureIsHarnessError(t *testing.T) {
	orch := newTestOrchestrator()

	args := EvaluateArgs{BaseDir: "/nonexistent-mutagate-project", TestCommand: "true", Timeout: 10 * time.Second}
	mutation := m.Mutation{ID: "abc", File: "calc.go", MutatedCode: []byte("mutant\n")}

	eval, err := orch.EvaluateIsolated(context.Background(), args, mutation)
	if err != nil {
		t.Fatalf("setup failures must not abort the run: %v", err)
	}

	if !eval.Errored() {
		t.Fatalf("expected a harness error, got %+v", eval)
	}
}
