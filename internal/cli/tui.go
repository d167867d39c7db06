package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zradlicz/pcb-dataset-generator/pkg/dataset"
)

// =============================================================================
// batchModel - Interactive batch progress
// =============================================================================

// sampleDoneMsg reports one completed sample.
type sampleDoneMsg struct {
	sample dataset.Sample
	err    error
}

// batchModel is the bubbletea model driving sequential sample generation.
// Samples run one at a time; each completion schedules the next until the
// run finishes, fails, or the user cancels.
type batchModel struct {
	total     int
	samples   []dataset.Sample
	run       func(id int) (dataset.Sample, error)
	barWidth  int
	err       error
	cancelled bool
}

// newBatchModel creates a batch progress model over the given sample runner.
func newBatchModel(total int, run func(id int) (dataset.Sample, error)) batchModel {
	return batchModel{
		total:    total,
		run:      run,
		barWidth: 40,
	}
}

func (m batchModel) Init() tea.Cmd {
	if m.total == 0 {
		return tea.Quit
	}
	return m.runSample(0)
}

// runSample returns a command that generates sample id off the UI loop.
func (m batchModel) runSample(id int) tea.Cmd {
	return func() tea.Msg {
		s, err := m.run(id)
		return sampleDoneMsg{sample: s, err: err}
	}
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.barWidth = msg.Width - 16
		if m.barWidth > 40 {
			m.barWidth = 40
		}
		if m.barWidth < 10 {
			m.barWidth = 10
		}
	case sampleDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.samples = append(m.samples, msg.sample)
		if len(m.samples) >= m.total {
			return m, tea.Quit
		}
		return m, m.runSample(len(m.samples))
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Generating dataset"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q cancel"))
	b.WriteString("\n\n")

	done := len(m.samples)
	filled := 0
	if m.total > 0 {
		filled = done * m.barWidth / m.total
	}
	bar := StyleHighlight.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", m.barWidth-filled))
	b.WriteString(fmt.Sprintf("  %s %s\n", bar,
		StyleNumber.Render(fmt.Sprintf("%d/%d", done, m.total))))

	if done > 0 {
		last := m.samples[done-1]
		detail := fmt.Sprintf("  sample %04d · seed %d · %d placements", last.ID, last.Seed, last.Placements)
		if last.Shortfall > 0 {
			detail += fmt.Sprintf(" · %d short", last.Shortfall)
		}
		b.WriteString(StyleDim.Render(detail))
		b.WriteString("\n")
	}

	return b.String()
}
