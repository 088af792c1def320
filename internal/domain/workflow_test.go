package domain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"mutagate.dev/pkg/mutagate/internal/adapter"
	"mutagate.dev/pkg/mutagate/internal/controller"
	m "mutagate.dev/pkg/mutagate/internal/model"
)

const workflowSource = `package demo

func add(a, b int) int {
	c := a + b
	return c
}
`

func newBufferedUI() (controller.UI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return controller.NewSimpleUI(cmd), buf
}

func newTestWorkflow(ui controller.UI) Workflow {
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	return NewWorkflow(
		adapter.NewGitDiffAdapter(),
		fsAdapter,
		adapter.NewReportStore(),
		ui,
		NewOrchestrator(fsAdapter, adapter.NewLocalTestRunnerAdapter()),
		NewMutagen(adapter.NewLocalGoFileAdapter()),
	)
}

func writeWorkflowProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "calc.go"), []byte(workflowSource), 0o600); err != nil {
		t.Fatalf("failed to write project file: %v", err)
	}

	return dir
}

func TestWorkflow_Run_EmptyChangeSetPassesVacuously(t *testing.T) {
	ui, buf := newBufferedUI()
	wf := newTestWorkflow(ui)

	report, err := wf.Run(context.Background(), RunArgs{
		BaseDir:   m.Path(t.TempDir()),
		Threshold: 80.0,
		Changes:   m.ChangeSet{},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Status != m.StatusPass {
		t.Fatalf("expected vacuous pass, got %v", report.Status)
	}

	if report.Total != 0 || report.KillRate != 100.0 {
		t.Fatalf("unexpected vacuous report: %+v", report)
	}

	if !strings.Contains(buf.String(), "MutaGate Report: PASS") {
		t.Fatalf("expected report output, got %q", buf.String())
	}
}

func TestWorkflow_Run_KilledMutantPasses(t *testing.T) {
	dir := writeWorkflowProject(t)
	reportsDir := filepath.Join(t.TempDir(), "reports")

	ui, _ := newBufferedUI()
	wf := newTestWorkflow(ui)

	report, err := wf.Run(context.Background(), RunArgs{
		BaseDir:         m.Path(dir),
		TestCommand:     "exit 1",
		Threshold:       80.0,
		Threads:         1,
		MutationTimeout: 10 * time.Second,
		Reports:         m.Path(reportsDir),
		Changes:         m.ChangeSet{"calc.go": m.NewLineSet(4)},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Status != m.StatusPass {
		t.Fatalf("expected pass, got %v", report.Status)
	}

	if report.Total != 1 || report.Killed != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}

	// The gate run must leave the working tree byte-identical.
	content, err := os.ReadFile(filepath.Join(dir, "calc.go"))
	if err != nil {
		t.Fatalf("failed to read source file: %v", err)
	}

	if string(content) != workflowSource {
		t.Fatalf("working tree modified by the run:\n%s", content)
	}

	// The report is persisted for later viewing.
	saved, err := adapter.NewReportStore().LoadReport(m.Path(reportsDir))
	if err != nil {
		t.Fatalf("failed to load persisted report: %v", err)
	}

	if saved.Status != m.StatusPass || saved.Killed != 1 {
		t.Fatalf("unexpected persisted report: %+v", saved)
	}
}

func TestWorkflow_Run_SurvivingMutantFails(t *testing.T) {
	dir := writeWorkflowProject(t)

	ui, buf := newBufferedUI()
	wf := newTestWorkflow(ui)

	report, err := wf.Run(context.Background(), RunArgs{
		BaseDir:         m.Path(dir),
		TestCommand:     "true",
		Threshold:       80.0,
		Threads:         1,
		MutationTimeout: 10 * time.Second,
		Changes:         m.ChangeSet{"calc.go": m.NewLineSet(4)},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Status != m.StatusFail {
		t.Fatalf("expected fail, got %v", report.Status)
	}

	if report.Survived != 1 || report.KillRate != 0.0 {
		t.Fatalf("unexpected counts: %+v", report)
	}

	if len(report.Survivors) != 1 || report.Survivors[0].Mutation.Description != "Add -> Sub" {
		t.Fatalf("unexpected survivors: %+v", report.Survivors)
	}

	if !strings.Contains(buf.String(), "SURVIVED: calc.go:4") {
		t.Fatalf("expected survivor details in output, got %q", buf.String())
	}
}

func TestWorkflow_Run_MissingChangedFileSkipped(t *testing.T) {
	ui, _ := newBufferedUI()
	wf := newTestWorkflow(ui)

	report, err := wf.Run(context.Background(), RunArgs{
		BaseDir:         m.Path(t.TempDir()),
		TestCommand:     "true",
		Threshold:       80.0,
		Threads:         1,
		MutationTimeout: 10 * time.Second,
		Changes:         m.ChangeSet{"deleted.go": m.NewLineSet(1)},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Status != m.StatusPass || report.Total != 0 {
		t.Fatalf("a deleted file must contribute nothing: %+v", report)
	}
}

func TestWorkflow_Run_ParallelIsolatedEvaluation(t *testing.T) {
	dir := writeWorkflowProject(t)

	ui, _ := newBufferedUI()
	wf := newTestWorkflow(ui)

	report, err := wf.Run(context.Background(), RunArgs{
		BaseDir:         m.Path(dir),
		TestCommand:     "exit 1",
		Threshold:       80.0,
		Threads:         2,
		MutationTimeout: 10 * time.Second,
		Changes:         m.ChangeSet{"calc.go": nil},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The assignment and the value return, both killed.
	if report.Total != 2 || report.Killed != 2 {
		t.Fatalf("unexpected counts: %+v", report)
	}

	if report.Status != m.StatusPass {
		t.Fatalf("expected pass, got %v", report.Status)
	}

	content, err := os.ReadFile(filepath.Join(dir, "calc.go"))
	if err != nil {
		t.Fatalf("failed to read source file: %v", err)
	}

	if string(content) != workflowSource {
		t.Fatalf("parallel run modified the project:\n%s", content)
	}
}
