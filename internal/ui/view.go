package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
)

// maxTableRows bounds the error table height.
const maxTableRows = 15

// View renders the dashboard.
func (m Model) View() string {
	if m.loading && m.snapshot == nil {
		return docStyle.Render(fmt.Sprintf("%s Loading error telemetry...", m.spinner.View()))
	}
	if m.snapshot == nil {
		return docStyle.Render(helpStyle.Render("No data."))
	}

	sections := []string{
		m.renderHeader(),
		m.renderStatCards(),
		m.renderChart(),
		m.renderErrorTable(),
		m.renderFooter(),
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("Grok Error Dashboard")
	rangeLabel := helpStyle.Render(fmt.Sprintf("[t] %s", m.timeRange.Label()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeLabel)
	if m.snapshot.Degraded {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, "  ",
			degradedStyle.Render("⚠ data unavailable: some upstream queries failed"))
	}
	if m.loading {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, "  ", m.spinner.View())
	}
	return header
}

func (m Model) renderStatCards() string {
	stats := m.snapshot.Stats
	types := m.snapshot.SessionTypes

	card := func(label string, value int, color lipgloss.Color) string {
		number := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", value))
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, number, helpStyle.Render(label)))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Bugs", stats.Bugs, bugColor),
		card("Op Failures", stats.Failures, failColor),
		card("Pair Errors", stats.Errors, errColor),
		card("CLI Failures", stats.CLI, cliColor),
		card("Sessions w/ Errors", stats.UniqueSessions, sessColor),
	)

	sessionLine := helpStyle.Render(fmt.Sprintf(
		"Session types: %d single · %d extended · %d handoff",
		types.Single, types.Extended, types.Handoff))

	return lipgloss.JoinVertical(lipgloss.Left, cards, sessionLine, "")
}

// renderChart plots total errors per bucket as an ASCII line chart.
// When a degraded refresh produced no buckets, the locally recorded
// snapshot trail is charted instead.
func (m Model) renderChart() string {
	series := m.snapshot.TimeSeries
	if len(series) == 0 {
		if len(m.fallback) > 0 {
			return m.renderFallbackChart()
		}
		return helpStyle.Render("No time-series data in range.") + "\n"
	}

	data := make([]float64, len(series))
	for i, b := range series {
		data[i] = float64(b.Bugs + b.Failures + b.Errors)
	}

	caption := fmt.Sprintf("errors over time (%s to %s)", series[0].Period, series[len(series)-1].Period)
	return lipgloss.JoinVertical(lipgloss.Left,
		chartTitleStyle.Render("Errors Over Time"),
		m.plot(data, caption),
		"",
	)
}

// renderFallbackChart plots the recorded snapshot trail, oldest first.
func (m Model) renderFallbackChart() string {
	data := make([]float64, len(m.fallback))
	for i, rec := range m.fallback {
		data[len(m.fallback)-1-i] = float64(rec.Stats.Bugs + rec.Stats.Failures + rec.Stats.Errors)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		chartTitleStyle.Render("Errors Over Time"),
		m.plot(data, "recorded history (upstream unavailable)"),
		"",
	)
}

func (m Model) plot(data []float64, caption string) string {
	if len(data) == 1 {
		// asciigraph needs two points to draw a line.
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(7),
		asciigraph.Width(max(m.width-12, 20)),
		asciigraph.Caption(caption),
	)
}

func (m Model) renderErrorTable() string {
	events := m.snapshot.Errors
	if len(events) == 0 {
		return helpStyle.Render("No errors found in range.")
	}

	descWidth := max(m.width-46, 20)

	var rows []string
	rows = append(rows, chartTitleStyle.Render(fmt.Sprintf("Recent Errors (%d total)", len(events))))

	shown := min(len(events), maxTableRows)
	for _, e := range events[:shown] {
		badge := typeBadgeStyles[e.Type.String()].Render(fmt.Sprintf("%-7s", strings.ToUpper(e.Type.String())))
		session := e.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		line := fmt.Sprintf("%s %s %s %s",
			badge,
			helpStyle.Render(formatEventTime(e.Timestamp)),
			lipgloss.NewStyle().Foreground(sessColor).Render(session),
			ansi.Truncate(e.Description, descWidth, "…"),
		)
		rows = append(rows, line)
	}
	if len(events) > shown {
		rows = append(rows, helpStyle.Render(fmt.Sprintf("… and %d more", len(events)-shown)))
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderFooter() string {
	return "\n" + helpStyle.Render("r refresh · t time range · q quit")
}

// formatEventTime shortens a raw ISO-8601 timestamp for table display.
// Unparseable timestamps are shown as-is.
func formatEventTime(ts string) string {
	if ts == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("01/02 15:04")
		}
	}
	return ts
}
