// Package browse provides the Bubble Tea leaderboard browser.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/xwstats/internal/leaderboard"
)

const (
	headerHeight = 2
	footerHeight = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Model implements the leaderboard browser.
type Model struct {
	source  string
	entries []leaderboard.Entry
	table   table.Model

	width  int
	height int
}

// NewModel builds a browser over ranked entries loaded from source.
func NewModel(source string, entries []leaderboard.Entry) *Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithRows(buildRows(entries)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return &Model{source: source, entries: entries, table: t}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(1, msg.Height-headerHeight-footerHeight))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.entries) == 0 {
		return "No puzzles to display.\n" + helpStyle.Render("q quit")
	}
	return strings.Join([]string{m.renderHeader(), m.table.View(), m.renderFooter()}, "\n")
}

// Selected returns the highlighted entry.
func (m *Model) Selected() (leaderboard.Entry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return leaderboard.Entry{}, false
	}
	return m.entries[idx], true
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf("Fastest mini solves (%d)", len(m.entries)))
	return title + "\n" + headerStyle.Render(m.source)
}

func (m *Model) renderFooter() string {
	link := ""
	if e, ok := m.Selected(); ok {
		link = linkStyle.Render(e.Link())
	}
	return link + "\n" + helpStyle.Render("↑/↓ move • g/G top/bottom • q quit")
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Date", Width: 18},
		{Title: "Seconds", Width: 7},
	}
}

func buildRows(entries []leaderboard.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			strconv.Itoa(e.Rank),
			e.FormattedDate(),
			strconv.Itoa(e.SolvingSeconds),
		})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
