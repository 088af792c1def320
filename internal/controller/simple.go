package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

// SimpleUI implements UI with plain line output via cobra Command's Println.
// It is the CI-friendly default: one line per evaluated mutation, then the
// report.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start announces the run.
func (s *SimpleUI) Start(ctx context.Context, totalMutations, threads int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Printf("Evaluating %d mutant(s) with %d worker(s)\n", totalMutations, threads)

	return nil
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayStartingTest is a no-op; SimpleUI reports completions only.
func (s *SimpleUI) DisplayStartingTest(_ context.Context, _ m.Mutation) {}

// DisplayCompletedTest prints one line per evaluated mutation.
func (s *SimpleUI) DisplayCompletedTest(ctx context.Context, evaluation m.Evaluation) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("  %-8s %s:%d [%s] %s\n",
		verdictLabel(evaluation),
		evaluation.Mutation.File,
		evaluation.Mutation.Line,
		evaluation.Mutation.Type,
		evaluation.Mutation.Description,
	)
}

// DisplayReport prints the human-readable gate report.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print(RenderReport(report))

	return nil
}

func verdictLabel(evaluation m.Evaluation) string {
	switch {
	case evaluation.Errored():
		return "error"
	case evaluation.Killed:
		return "killed"
	default:
		return "survived"
	}
}

// RenderReport formats a report as human-readable text: a summary header, a
// survivors table, and the diff plus fix suggestion for each survivor.
func RenderReport(report m.Report) string {
	var b strings.Builder

	icon := "PASS"
	if report.Status == m.StatusFail {
		icon = "FAIL"
	}

	fmt.Fprintf(&b, "\nMutaGate Report: %s\n", icon)
	fmt.Fprintf(&b, "  Mutants: %d total, %d killed, %d survived\n", report.Total, report.Killed, report.Survived)

	if report.Errored > 0 {
		fmt.Fprintf(&b, "  Harness errors: %d (excluded from the kill rate)\n", report.Errored)
	}

	fmt.Fprintf(&b, "  Kill rate: %.1f%% (threshold: %.1f%%)\n", report.KillRate, report.Threshold)

	if len(report.Survivors) > 0 {
		b.WriteString("\n")
		b.WriteString(renderSurvivorsTable(report.Survivors))

		for _, survivor := range report.Survivors {
			fmt.Fprintf(&b, "\nSURVIVED: %s:%d [%s]\n", survivor.Mutation.File, survivor.Mutation.Line, survivor.Mutation.Type)
			fmt.Fprintf(&b, "  Mutation: %s\n", survivor.Mutation.Description)
			fmt.Fprintf(&b, "  Fix: %s\n", survivor.Mutation.Suggestion)

			if survivor.Mutation.DiffCode != "" {
				b.WriteString(indent(survivor.Mutation.DiffCode, "  "))
			}
		}
	}

	return b.String()
}

func renderSurvivorsTable(survivors []m.Evaluation) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Location", "Operator", "Mutation", "Suggestion"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, survivor := range survivors {
		table.Append([]string{
			fmt.Sprintf("%s:%d", survivor.Mutation.File, survivor.Mutation.Line),
			string(survivor.Mutation.Type),
			survivor.Mutation.Description,
			survivor.Mutation.Suggestion,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Survivors %d", len(survivors)), "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}

	return strings.Join(lines, "\n") + "\n"
}
