package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

var (
	tuiTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	tuiKilledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	tuiSurvivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	tuiErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	tuiDimStyle      = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a live progress view for interactive terminals.
// The final report is printed as plain text after the program exits, so it
// stays in the scrollback.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress view.
func (t *TUI) Start(ctx context.Context, totalMutations, threads int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.done = make(chan struct{})
	t.program = tea.NewProgram(newGateModel(totalMutations, threads), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			fmt.Fprintf(t.output, "progress view error: %v\n", err)
		}
	}()

	return nil
}

// Close shuts the progress view down. Safe to call after DisplayReport.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
}

// DisplayStartingTest shows the mutation currently under evaluation.
func (t *TUI) DisplayStartingTest(_ context.Context, mutation m.Mutation) {
	if t.program == nil {
		return
	}

	t.program.Send(startMutationMsg{mutation: mutation})
}

// DisplayCompletedTest advances the progress counters.
func (t *TUI) DisplayCompletedTest(_ context.Context, evaluation m.Evaluation) {
	if t.program == nil {
		return
	}

	t.program.Send(completedMutationMsg{evaluation: evaluation})
}

// DisplayReport quits the progress view and prints the plain-text report.
// A vacuous run never starts the program; the report is printed directly.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.program != nil {
		t.program.Send(finishedMsg{})
		<-t.done
	}

	_, err := fmt.Fprint(t.output, RenderReport(report))

	return err
}

type startMutationMsg struct {
	mutation m.Mutation
}

type completedMutationMsg struct {
	evaluation m.Evaluation
}

type finishedMsg struct{}

// gateModel is the Bubble Tea model for the evaluation progress view.
type gateModel struct {
	spin      spinner.Model
	bar       progress.Model
	total     int
	threads   int
	completed int
	killed    int
	survived  int
	errored   int
	current   string
	width     int
}

func newGateModel(total, threads int) gateModel {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)

	return gateModel{
		spin:    spin,
		bar:     bar,
		total:   total,
		threads: threads,
	}
}

func (g gateModel) Init() tea.Cmd {
	return g.spin.Tick
}

func (g gateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width = msg.Width
		return g, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return g, tea.Quit
		}

		return g, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		g.spin, cmd = g.spin.Update(msg)

		return g, cmd

	case progress.FrameMsg:
		bar, cmd := g.bar.Update(msg)
		if updated, ok := bar.(progress.Model); ok {
			g.bar = updated
		}

		return g, cmd

	case startMutationMsg:
		g.current = fmt.Sprintf("%s:%d [%s] %s",
			msg.mutation.File, msg.mutation.Line, msg.mutation.Type, msg.mutation.Description)

		return g, nil

	case completedMutationMsg:
		g.completed++

		switch {
		case msg.evaluation.Errored():
			g.errored++
		case msg.evaluation.Killed:
			g.killed++
		default:
			g.survived++
		}

		if g.total > 0 {
			return g, g.bar.SetPercent(float64(g.completed) / float64(g.total))
		}

		return g, nil

	case finishedMsg:
		return g, tea.Quit
	}

	return g, nil
}

func (g gateModel) View() string {
	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("MutaGate"))
	fmt.Fprintf(&b, " %s\n\n", tuiDimStyle.Render(fmt.Sprintf("%d worker(s)", g.threads)))

	fmt.Fprintf(&b, "%s %s\n\n", g.spin.View(), g.current)
	fmt.Fprintf(&b, "%s %d/%d\n\n", g.bar.View(), g.completed, g.total)

	fmt.Fprintf(&b, "%s  %s  %s\n",
		tuiKilledStyle.Render(fmt.Sprintf("killed %d", g.killed)),
		tuiSurvivedStyle.Render(fmt.Sprintf("survived %d", g.survived)),
		tuiErrorStyle.Render(fmt.Sprintf("errors %d", g.errored)),
	)

	return b.String()
}
