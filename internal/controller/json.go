package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

// JSONUI implements UI for machine consumption: silent during the run, a
// single JSON document at the end.
type JSONUI struct {
	cmd *cobra.Command
}

// NewJSONUI creates a new JSONUI.
func NewJSONUI(cmd *cobra.Command) *JSONUI {
	return &JSONUI{cmd: cmd}
}

// Start is a no-op; JSON output must stay a single document.
func (j *JSONUI) Start(ctx context.Context, _, _ int) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for JSONUI).
func (j *JSONUI) Close(_ context.Context) {}

// DisplayStartingTest is a no-op for JSONUI.
func (j *JSONUI) DisplayStartingTest(_ context.Context, _ m.Mutation) {}

// DisplayCompletedTest is a no-op for JSONUI.
func (j *JSONUI) DisplayCompletedTest(_ context.Context, _ m.Evaluation) {}

// DisplayReport prints the report as an indented JSON document.
func (j *JSONUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	j.cmd.Println(string(data))

	return nil
}
