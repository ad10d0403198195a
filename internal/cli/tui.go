package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MetricListModel - Interactive metric exploration
// =============================================================================

// ComputeFunc computes one metric of the explored graph.
type ComputeFunc func(analysis.Metric) (any, error)

// resultMsg carries a finished computation back to the model.
type resultMsg struct {
	metric analysis.Metric
	result any
	err    error
}

// MetricListModel is the bubbletea model for browsing metrics of one graph.
//
// The list view shows every metric with its description. Enter computes the
// selected metric in the background and switches to the result view; esc
// returns to the list. Results are kept, since the graph never changes.
type MetricListModel struct {
	Title     string
	Metrics   []analysis.Metric
	Cursor    int
	Computing bool
	Viewing   bool

	compute ComputeFunc
	results map[analysis.Metric]string
}

// NewMetricListModel creates a metric list over compute.
func NewMetricListModel(title string, compute ComputeFunc) MetricListModel {
	return MetricListModel{
		Title:   title,
		Metrics: analysis.Metrics(),
		compute: compute,
		results: make(map[analysis.Metric]string),
	}
}

// Current returns the metric under the cursor.
func (m MetricListModel) Current() analysis.Metric {
	return m.Metrics[m.Cursor]
}

func (m MetricListModel) Init() tea.Cmd {
	return nil
}

func (m MetricListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.Computing = false
		m.results[msg.metric] = formatOutcome(msg.result, msg.err)
		if msg.metric == m.Current() {
			m.Viewing = true
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Viewing {
				m.Viewing = false
				return m, nil
			}
			return m, tea.Quit
		}
		if m.Viewing || m.Computing {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Metrics)-1 {
				m.Cursor++
			}
		case "enter":
			metric := m.Current()
			if _, ok := m.results[metric]; ok {
				m.Viewing = true
				return m, nil
			}
			m.Computing = true
			return m, m.run(metric)
		}
	}
	return m, nil
}

// run returns a command computing metric off the UI loop.
func (m MetricListModel) run(metric analysis.Metric) tea.Cmd {
	compute := m.compute
	return func() tea.Msg {
		result, err := compute(metric)
		return resultMsg{metric: metric, result: result, err: err}
	}
}

func (m MetricListModel) View() string {
	if m.Viewing {
		return m.resultView()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ compute  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Metrics))
	for i, metric := range m.Metrics {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		done := ""
		if _, ok := m.results[metric]; ok {
			done = iconSuccess
		}
		rows[i] = []string{cursor, string(metric), metric.Description(), done}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Metric", "Description", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == m.Cursor:
				return listSelectedStyle
			case col == 2:
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if m.Computing {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  Computing %s...", m.Current())))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Metrics))))
	}

	return b.String()
}

func (m MetricListModel) resultView() string {
	metric := m.Current()

	var b strings.Builder
	b.WriteString(StyleTitle.Render(string(metric)))
	b.WriteString(" " + StyleDim.Render(metric.Description()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.results[metric])
	b.WriteString("\n")
	return b.String()
}

// formatOutcome renders a metric result or its error.
func formatOutcome(result any, err error) string {
	if err != nil {
		if errors.Is(err, errors.ErrCodeUndefinedMetric) {
			return StyleWarning.Render("undefined: " + errors.UserMessage(err))
		}
		return StyleDanger.Render(iconError + " " + errors.UserMessage(err))
	}
	return renderResult(result)
}
