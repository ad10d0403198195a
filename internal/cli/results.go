package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
)

// renderResult formats the value returned by analysis.Compute for a terminal.
func renderResult(result any) string {
	switch r := result.(type) {
	case *analysis.CycleReport:
		return renderCycles(r)
	case []analysis.Ranked[int]:
		return renderRanked(r, strconv.Itoa)
	case []analysis.Ranked[float64]:
		return renderRanked(r, formatFloat)
	case [][]string:
		return renderComponents(r)
	case *analysis.Layering:
		return renderLayering(r)
	case float64:
		return StyleNumber.Render(formatFloat(r))
	case nil:
		return StyleDim.Render("undefined")
	default:
		return fmt.Sprint(r)
	}
}

// renderSummary formats a full health report.
func renderSummary(source string, s *analysis.Summary) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Structural health"))
	if source != "" {
		b.WriteString(" " + StyleDim.Render(source))
	}
	b.WriteString("\n\n")

	b.WriteString(keyValue("Nodes", strconv.Itoa(s.Nodes)) + "\n")
	b.WriteString(keyValue("Edges", strconv.Itoa(s.Edges)) + "\n")
	b.WriteString(keyValue("Density", formatFloat(s.Density)) + "\n")
	if s.FlowHierarchy != nil {
		b.WriteString(keyValue("Flow hierarchy", formatFloat(*s.FlowHierarchy)) + "\n")
	} else {
		b.WriteString(keyValue("Flow hierarchy", "undefined (no edges)") + "\n")
	}
	if s.Topology != nil && s.Topology.Acyclic() {
		b.WriteString(keyValue("Layers", strconv.Itoa(len(s.Topology.Layers))) + "\n")
	}

	section := func(title, body string) {
		b.WriteString("\n" + StyleTitle.Render(title) + "\n" + body + "\n")
	}
	section("Cycles", renderCycles(s.Cycles))
	section("Strongly connected components", renderComponents(s.Components))
	section("In-degree", renderRanked(s.InDegree, strconv.Itoa))
	section("Out-degree", renderRanked(s.OutDegree, strconv.Itoa))
	section("Centrality degree", renderRanked(s.CentralityDegree, strconv.Itoa))
	section("Betweenness", renderRanked(s.Betweenness, formatFloat))
	section("Closeness", renderRanked(s.Closeness, formatFloat))
	section("PageRank", renderRanked(s.PageRank, formatFloat))

	return strings.TrimRight(b.String(), "\n")
}

func renderCycles(r *analysis.CycleReport) string {
	if r == nil || r.Acyclic() {
		return StyleSuccess.Render(iconSuccess + " no cycles")
	}
	var b strings.Builder
	b.WriteString(StyleDanger.Render(fmt.Sprintf("%s %d cycle(s)", iconCycle, r.Total)))
	for _, c := range r.Cycles {
		b.WriteString("\n  " + strings.Join(slices.Concat(c, c[:1]), " "+iconArrow+" "))
	}
	return b.String()
}

func renderRanked[T analysis.Number](ranked []analysis.Ranked[T], format func(T) string) string {
	if len(ranked) == 0 {
		return StyleDim.Render("none")
	}
	rows := make([][]string, len(ranked))
	for i, r := range ranked {
		rows[i] = []string{strconv.Itoa(i + 1), r.Node, format(r.Value)}
	}
	return newTable("#", "Node", "Value").Rows(rows...).Render()
}

func renderComponents(components [][]string) string {
	if len(components) == 0 {
		return StyleDim.Render("none")
	}
	rows := make([][]string, len(components))
	for i, c := range components {
		rows[i] = []string{strconv.Itoa(len(c)), strings.Join(c, ", ")}
	}
	return newTable("Size", "Nodes").Rows(rows...).Render()
}

func renderLayering(l *analysis.Layering) string {
	if !l.Acyclic() {
		return StyleWarning.Render("graph contains cycles and cannot be layered") + "\n" + renderCycles(l.Cycles)
	}
	if len(l.Layers) == 0 {
		return StyleDim.Render("empty graph")
	}
	rows := make([][]string, len(l.Layers))
	for i, layer := range l.Layers {
		rows[i] = []string{strconv.Itoa(i), strings.Join(layer, ", ")}
	}
	return newTable("Layer", "Nodes").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
