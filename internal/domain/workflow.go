package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"mutagate.dev/pkg/mutagate/internal/adapter"
	"mutagate.dev/pkg/mutagate/internal/controller"
	m "mutagate.dev/pkg/mutagate/internal/model"
	"mutagate.dev/pkg/mutagate/pkg"
)

// RunArgs carries the configuration for one gate run.
type RunArgs struct {
	BaseDir         m.Path
	BaseBranch      string
	TestCommand     string
	Threshold       float64
	Threads         int
	MutationTimeout time.Duration
	Reports         m.Path
	// Changes, when non-nil, bypasses the revision-control diff provider.
	// Used for programmatic invocation and tests.
	Changes m.ChangeSet
}

// Workflow is the mutation evaluation pipeline: changed lines in, report out.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.Report, error)
}

type workflow struct {
	changes      adapter.ChangeSetAdapter
	fsAdapter    adapter.SourceFSAdapter
	reportStore  adapter.ReportStore
	ui           controller.UI
	orchestrator Orchestrator
	mutagen      Mutagen
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	changes adapter.ChangeSetAdapter,
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
	mutagen Mutagen,
) Workflow {
	return &workflow{
		changes:      changes,
		fsAdapter:    fsAdapter,
		reportStore:  reportStore,
		ui:           ui,
		orchestrator: orchestrator,
		mutagen:      mutagen,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) (m.Report, error) {
	changes, err := w.resolveChanges(ctx, args)
	if err != nil {
		return m.Report{}, err
	}

	// A revision touching nothing yields no gate failure.
	if len(changes) == 0 {
		report := vacuousReport(args.Threshold)
		w.finishRun(ctx, args, report)

		return report, w.ui.DisplayReport(ctx, report)
	}

	mutations := w.collectMutations(ctx, args.BaseDir, changes)

	if err := w.ui.Start(ctx, len(mutations), args.Threads); err != nil {
		return m.Report{}, err
	}
	defer w.ui.Close(ctx)

	evaluations, err := pkg.NewFileSpill[m.Evaluation]("mutagate-evaluations-*")
	if err != nil {
		return m.Report{}, fmt.Errorf("failed to create evaluation accumulator: %w", err)
	}

	defer func() {
		if cerr := evaluations.Close(); cerr != nil {
			slog.Error("Failed to close evaluation accumulator", "error", cerr)
		}
	}()

	if err := w.evaluateAll(ctx, args, mutations, evaluations); err != nil {
		return m.Report{}, err
	}

	report, err := buildReport(evaluations, args.Threshold)
	if err != nil {
		return m.Report{}, err
	}

	w.finishRun(ctx, args, report)

	return report, w.ui.DisplayReport(ctx, report)
}

func (w *workflow) resolveChanges(ctx context.Context, args RunArgs) (m.ChangeSet, error) {
	if args.Changes != nil {
		return args.Changes, nil
	}

	return w.changes.Changes(ctx, args.BaseDir, args.BaseBranch)
}

// collectMutations generates mutants for every changed file, restricted to
// that file's changed lines. Missing and unparseable files contribute nothing.
func (w *workflow) collectMutations(ctx context.Context, baseDir m.Path, changes m.ChangeSet) []m.Mutation {
	var mutations []m.Mutation

	for _, file := range changes.Files() {
		full := w.fsAdapter.JoinPath(string(baseDir), string(file))

		if _, err := w.fsAdapter.FileInfo(ctx, full); err != nil {
			if os.IsNotExist(err) {
				slog.Info("Skipping missing changed file", "file", file)
				continue
			}

			slog.Warn("Skipping unreadable changed file", "file", file, "error", err)

			continue
		}

		content, err := w.fsAdapter.ReadFile(ctx, full)
		if err != nil {
			slog.Warn("Skipping unreadable changed file", "file", file, "error", err)
			continue
		}

		mutations = append(mutations, w.mutagen.GenerateMutations(ctx, file, content, changes[file])...)
	}

	return mutations
}

func (w *workflow) evaluateAll(ctx context.Context, args RunArgs, mutations []m.Mutation, evaluations pkg.FileSpill[m.Evaluation]) error {
	evalArgs := EvaluateArgs{
		BaseDir:     args.BaseDir,
		TestCommand: args.TestCommand,
		Timeout:     args.MutationTimeout,
	}

	if args.Threads <= 1 {
		return w.evaluateSequential(ctx, evalArgs, mutations, evaluations)
	}

	return w.evaluateParallel(ctx, evalArgs, args.Threads, mutations, evaluations)
}

// evaluateSequential substitutes each mutation into the live source tree one
// at a time. The file on disk as seen by the test runner is the shared
// resource; strict one-at-a-time ordering is what makes in-place substitution
// safe.
func (w *workflow) evaluateSequential(ctx context.Context, evalArgs EvaluateArgs, mutations []m.Mutation, evaluations pkg.FileSpill[m.Evaluation]) error {
	for _, mutation := range mutations {
		w.ui.DisplayStartingTest(ctx, mutation)

		eval, err := w.orchestrator.EvaluateInPlace(ctx, evalArgs, mutation)
		if err != nil {
			return err
		}

		if err := evaluations.Append(eval); err != nil {
			return err
		}

		w.ui.DisplayCompletedTest(ctx, eval)
	}

	return nil
}

// evaluateParallel fans mutations out across workers, each evaluating against
// a private copy of the project so no two mutants ever share a live file.
func (w *workflow) evaluateParallel(ctx context.Context, evalArgs EvaluateArgs, threads int, mutations []m.Mutation, evaluations pkg.FileSpill[m.Evaluation]) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, mutation := range mutations {
		mutation := mutation
		group.Go(func() error {
			w.ui.DisplayStartingTest(groupCtx, mutation)

			eval, err := w.orchestrator.EvaluateIsolated(groupCtx, evalArgs, mutation)
			if err != nil {
				return err
			}

			if err := evaluations.Append(eval); err != nil {
				return err
			}

			w.ui.DisplayCompletedTest(groupCtx, eval)

			return nil
		})
	}

	return group.Wait()
}

// finishRun persists the report. Persistence failures never flip the verdict;
// the report value already exists and the gate decision stands.
func (w *workflow) finishRun(_ context.Context, args RunArgs, report m.Report) {
	if args.Reports == "" {
		return
	}

	if err := w.reportStore.SaveReport(args.Reports, report); err != nil {
		slog.Warn("Failed to persist report", "dir", args.Reports, "error", err)
	}
}
