package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wiregrid/internal/storage"
	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

// maxRuns is the number of runs loaded per difficulty.
const maxRuns = 100

// RunSource is the part of the store the history browser reads.
type RunSource interface {
	RecentRuns(difficulty string, limit int) ([]storage.Run, error)
	DifficultySummary(difficulty string) (*storage.Summary, error)
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTier key.Binding
	PrevTier key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTier, k.PrevTier, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTier, k.PrevTier},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTier: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tier"),
		),
		PrevTier: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tier"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing stored bench runs.
type HistoryModel struct {
	source   RunSource
	tiers    []core.Difficulty
	cursor   int
	runs     []storage.Run
	summary  *storage.Summary
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history browser starting at the given tier.
func NewHistoryModel(source RunSource, start core.Difficulty, width, height int) HistoryModel {
	m := HistoryModel{
		source: source,
		tiers:  core.Difficulties,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, d := range m.tiers {
		if d == start {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Levels", Width: 7},
		{Title: "Success", Width: 8},
		{Title: "Valid", Width: 6},
		{Title: "Avg Path", Width: 9},
		{Title: "Avg Tries", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 13},
	}

	height := m.height - 10 // Title, tabs, summary, help
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs and the summary of the selected tier.
func (m *HistoryModel) loadRuns() {
	m.runs, m.summary, m.err = nil, nil, nil
	if m.source != nil {
		tier := string(m.tiers[m.cursor])
		m.runs, m.err = m.source.RecentRuns(tier, maxRuns)
		if m.err == nil {
			m.summary, m.err = m.source.DifficultySummary(tier)
		}
	}
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows formats runs as table rows.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Total),
			fmt.Sprintf("%.0f%%", r.SuccessRate()*100),
			fmt.Sprintf("%d", r.Valid),
			fmt.Sprintf("%.1f", r.AveragePathLength),
			fmt.Sprintf("%.2f", r.AverageAttempts),
			r.Duration.Round(10 * time.Millisecond).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Tier returns the selected difficulty.
func (m HistoryModel) Tier() core.Difficulty {
	return m.tiers[m.cursor]
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTier):
			m.cursor = (m.cursor + 1) % len(m.tiers)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevTier):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.tiers) - 1
			}
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(RunRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("GENERATOR RUNS"))
	b.WriteString("\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.tiers))
	for i, d := range m.tiers {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(string(d))
		} else {
			tabs[i] = tabStyle.Render(string(d))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.summary != nil && m.summary.Runs > 0 {
		s := m.summary
		fmt.Fprintf(&b, "%d runs, %d levels, %d generated, %d valid, avg path %.1f, avg tries %.2f\n",
			s.Runs, s.Levels, s.Successful, s.Valid, s.AveragePathLength, s.AverageAttempts)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table, an error, or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Cannot load runs: " + m.err.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nRun `wiregrid bench " + string(m.Tier()) + "` to record one.")
	}
	return m.table.View()
}

// RunHistory runs the history browser until the user quits.
func RunHistory(source RunSource, start core.Difficulty) error {
	model := NewHistoryModel(source, start, 100, 30)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
