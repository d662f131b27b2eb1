// Package ui implements the terminal dashboard: live error stats, a
// time-series chart, and the most recent error events, refreshed from
// the telemetry service on an interval.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/grok-error-dashboard/internal/db"
	"github.com/j-veylop/grok-error-dashboard/internal/models"
	"github.com/j-veylop/grok-error-dashboard/internal/services/telemetry"
)

// bugSpikeThreshold is the bug-count increase between consecutive
// refreshes that triggers a desktop notification.
const bugSpikeThreshold = 5

type (
	// snapshotMsg carries a completed refresh. history is only
	// populated when the refresh was degraded and a local snapshot
	// trail exists to chart instead.
	snapshotMsg struct {
		snapshot  *models.Snapshot
		history   []db.SnapshotRecord
		timeRange models.TimeRange
	}

	// tickMsg requests the next scheduled refresh.
	tickMsg time.Time
)

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	svc       *telemetry.Service
	history   *db.DB
	timeRange models.TimeRange
	interval  time.Duration

	snapshot *models.Snapshot
	fallback []db.SnapshotRecord
	prevBugs int
	hasPrev  bool

	spinner spinner.Model
	loading bool
	width   int
	height  int
}

// NewModel creates the dashboard model. history may be nil, which
// disables the recorded-trail fallback chart.
func NewModel(svc *telemetry.Service, history *db.DB, interval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if interval <= 0 {
		interval = 30 * time.Second
	}

	return Model{
		svc:       svc,
		history:   history,
		timeRange: models.RangeDay,
		interval:  interval,
		spinner:   sp,
		loading:   true,
	}
}

// Init starts the spinner and the first refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

// refreshCmd fetches a snapshot off the UI goroutine. A degraded
// refresh also pulls the locally recorded trail so the chart has
// something to show through an outage.
func (m Model) refreshCmd() tea.Cmd {
	svc := m.svc
	history := m.history
	timeRange := m.timeRange
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		snapshot := svc.Refresh(ctx, timeRange)
		msg := snapshotMsg{snapshot: snapshot, timeRange: timeRange}
		if snapshot.Degraded && history != nil {
			if records, err := history.RecentSnapshots(ctx, timeRange, 30); err == nil {
				msg.history = records
			}
		}
		return msg
	}
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		case "t":
			m.timeRange = m.timeRange.Next()
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		}
		return m, nil

	case snapshotMsg:
		// A range toggle may have outrun an in-flight refresh.
		if msg.timeRange != m.timeRange {
			return m, nil
		}
		m.loading = false
		m.checkBugSpike(msg.snapshot)
		m.snapshot = msg.snapshot
		m.fallback = msg.history
		return m, m.scheduleTick()

	case tickMsg:
		return m, m.refreshCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// checkBugSpike notifies when the bug count jumps between refreshes.
func (m *Model) checkBugSpike(next *models.Snapshot) {
	if m.hasPrev && next.Stats.Bugs-m.prevBugs >= bugSpikeThreshold {
		title := "Grok Coder: bug spike"
		body := fmt.Sprintf("Bug count rose from %d to %d (%s)", m.prevBugs, next.Stats.Bugs, m.timeRange.Label())
		_ = beeep.Notify(title, body, "")
	}
	m.prevBugs = next.Stats.Bugs
	m.hasPrev = true
}
