package ui

import "github.com/charmbracelet/lipgloss"

// Color definitions for the dashboard theme.
var (
	primary   = lipgloss.Color("36")  // Teal
	subtle    = lipgloss.Color("240") // Gray
	bugColor  = lipgloss.Color("196") // Red
	failColor = lipgloss.Color("220") // Yellow
	errColor  = lipgloss.Color("208") // Orange
	cliColor  = lipgloss.Color("177") // Purple
	sessColor = lipgloss.Color("39")  // Blue
)

// titleStyle is used for the main heading.
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(primary).
	MarginBottom(1)

// helpStyle renders footer hints and secondary text.
var helpStyle = lipgloss.NewStyle().
	Foreground(subtle)

// docStyle provides consistent document margins.
var docStyle = lipgloss.NewStyle().
	Margin(1, 2)

// cardStyle frames one stat card.
var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(subtle).
	Padding(0, 2).
	MarginRight(1).
	Align(lipgloss.Center)

// degradedStyle flags partially failed refreshes.
var degradedStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(failColor)

// chartTitleStyle heads the time-series chart.
var chartTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(primary)

var typeBadgeStyles = map[string]lipgloss.Style{
	"bug":     lipgloss.NewStyle().Foreground(bugColor).Bold(true),
	"failure": lipgloss.NewStyle().Foreground(failColor).Bold(true),
	"error":   lipgloss.NewStyle().Foreground(errColor).Bold(true),
	"cli":     lipgloss.NewStyle().Foreground(cliColor).Bold(true),
}
