package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/pipeline"
)

// Progress bar styles
var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const barWidth = 30

// =============================================================================
// BatchModel - Live batch progress
// =============================================================================

// resultMsg carries one finished badge into the model.
type resultMsg pipeline.Result

// batchDoneMsg carries the final summary and quits the program.
type batchDoneMsg pipeline.BatchSummary

// BatchModel is the bubbletea model for the batch progress display.
type BatchModel struct {
	EventName string
	Total     int

	rendered int
	failed   int
	last     string
	summary  *pipeline.BatchSummary
	cancel   context.CancelFunc
}

// NewBatchModel creates a progress model for a batch of the given size.
func NewBatchModel(eventName string, total int, cancel context.CancelFunc) BatchModel {
	return BatchModel{EventName: eventName, Total: total, cancel: cancel}
}

func (m BatchModel) Init() tea.Cmd {
	return nil
}

func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case resultMsg:
		if msg.Err != nil {
			m.failed++
		} else {
			m.rendered++
		}
		m.last = msg.AttendeeID
	case batchDoneMsg:
		summary := pipeline.BatchSummary(msg)
		m.summary = &summary
		return m, tea.Quit
	}
	return m, nil
}

func (m BatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendering " + m.EventName))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q cancel"))
	b.WriteString("\n\n")

	done := m.rendered + m.failed
	filled := 0
	if m.Total > 0 {
		filled = done * barWidth / m.Total
	}
	b.WriteString("  ")
	b.WriteString(barFilledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString(fmt.Sprintf(" %d/%d", done, m.Total))
	if m.failed > 0 {
		b.WriteString("  " + styleFailed.Render(fmt.Sprintf("%d failed", m.failed)))
	}
	b.WriteString("\n")

	if m.last != "" {
		b.WriteString("  " + StyleDim.Render(m.last))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Runner Integration
// =============================================================================

// runBatchUI drives the batch through the live progress display. The
// runner feeds results into the model via OnResult; a cancelled display
// cancels the batch context.
func runBatchUI(ctx context.Context, runner *pipeline.Runner, event *badge.Event, attendees []*badge.Attendee, images map[string]string) (pipeline.BatchSummary, error) {
	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewBatchModel(event.DisplayName, len(attendees), cancel))
	runner.OnResult = func(res pipeline.Result) {
		p.Send(resultMsg(res))
	}

	summaryCh := make(chan pipeline.BatchSummary, 1)
	go func() {
		summary := runner.RunBatch(batchCtx, event, attendees, images)
		summaryCh <- summary
		p.Send(batchDoneMsg(summary))
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		return <-summaryCh, err
	}
	cancel()
	return <-summaryCh, nil
}
