package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/kgcyyds/miniob-2024/pkg/engine"
	"github.com/kgcyyds/miniob-2024/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the terminal front end: one query editor, one result view,
// driven against a single long-lived engine.Session so that SET
// variables and other session state persist across queries the way a
// real interactive client would see them.
type Model struct {
	engine      *engine.Engine
	session     *engine.Session
	queryEditor textarea.Model
	resultView  viewport.Model
	resultTable table.Model
	spinner     spinner.Model
	help        help.Model

	width        int
	height       int
	executing    bool
	showHelp     bool
	lastResult   *engine.Result
	lastError    error
	queryHistory []string

	lastQueryTime time.Duration
	keys          keyMap
	quitting      bool
}

func NewModel(eng *engine.Engine) Model {
	ta := textarea.New()
	ta.Placeholder = "Enter your SQL query here..."
	ta.CharLimit = 5000
	ta.ShowLineNumbers = true
	ta.SetHeight(6)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(bgLight)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(textMuted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(textPrimary)
	ta.FocusedStyle.LineNumber = lipgloss.NewStyle().Foreground(textMuted)

	vp := viewport.New(80, 10)
	vp.Style = resultStyle

	t := table.New(
		table.WithColumns([]table.Column{{Title: "Results", Width: 80}}),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		engine:       eng,
		session:      eng.NewSession(),
		queryEditor:  ta,
		resultView:   vp,
		resultTable:  t,
		spinner:      sp,
		help:         help.New(),
		keys:         keys,
		queryHistory: make([]string, 0),
		showHelp:     false,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textarea.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		if m.executing {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Execute):
			query := m.queryEditor.Value()
			if strings.TrimSpace(query) != "" {
				m.executing = true
				return m, m.executeQuery(query)
			}

		case key.Matches(msg, m.keys.Clear):
			m.queryEditor.SetValue("")
			m.lastResult = nil
			m.lastError = nil

		case key.Matches(msg, m.keys.ShowTables):
			m.executing = true
			return m, m.executeQuery("SHOW TABLES")

		case key.Matches(msg, m.keys.ShowStats):
			return m, m.showStatistics()

		case key.Matches(msg, m.keys.PrevQuery):
			if n := len(m.queryHistory); n > 0 {
				m.queryEditor.SetValue(m.queryHistory[n-1])
			}

		case key.Matches(msg, m.keys.Exit):
			m.executing = true
			return m, m.executeQuery("EXIT")

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}

	case queryResultMsg:
		m.executing = false
		m.lastResult = msg.result
		m.lastError = msg.err
		m.lastQueryTime = msg.duration

		if msg.err == nil {
			m.queryHistory = append(m.queryHistory, msg.query)
			m.updateResultDisplay()
			if msg.result != nil && msg.result.Exit {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		if m.executing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if !m.executing {
		var cmd tea.Cmd
		m.queryEditor, cmd = m.queryEditor.Update(msg)
		cmds = append(cmds, cmd)

		m.resultView, cmd = m.resultView.Update(msg)
		cmds = append(cmds, cmd)

		m.resultTable, cmd = m.resultTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderQueryEditor())

	switch {
	case m.executing:
		sections = append(sections, m.renderExecuting())
	case m.lastError != nil:
		sections = append(sections, m.renderError())
	case m.lastResult == nil:
		// nothing run yet
	case m.lastResult.Kind == engine.KindExplain:
		sections = append(sections, m.renderExplain())
	case len(m.lastResult.Rows) > 0:
		sections = append(sections, m.renderResultTable())
	case m.lastResult.Kind == engine.KindCount:
		sections = append(sections, m.renderMessage())
	}

	sections = append(sections, m.renderStatusBar())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHelp() string {
	helpText := m.help.FullHelpView([][]key.Binding{
		{
			m.keys.Execute,
			m.keys.Clear,
			m.keys.ShowTables,
			m.keys.ShowStats,
			m.keys.PrevQuery,
			m.keys.Exit,
			m.keys.Help,
			m.keys.Quit,
		},
	})

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(bgMedium).
		Render(helpText)
}

func (m Model) renderHeader() string {
	info := m.engine.Info()

	title := titleStyle.Render("storesql")
	badge := dbBadgeStyle.Render(fmt.Sprintf("tables: %d", info.TableCount))
	tables := lipgloss.NewStyle().
		Foreground(textSecondary).
		Render(fmt.Sprintf("Queries: %d | Errors: %d", info.QueriesExecuted, info.ErrorCount))

	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		title,
		"  ",
		badge,
		"  ",
		tables,
	)

	separatorWidth := m.width - 4
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := strings.Repeat("─", separatorWidth)
	sepStyle := lipgloss.NewStyle().
		Foreground(bgLight).
		Render(separator)

	return header + "\n" + sepStyle
}

func (m Model) renderQueryEditor() string {
	label := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("SQL Query Editor")

	editor := editorStyle.Render(m.queryEditor.View())

	return fmt.Sprintf("%s\n%s", label, editor)
}

func (m Model) renderExecuting() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		m.spinner.View(),
		" Executing query...",
	)

	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Padding(1, 0).
		Render(content)
}

func (m Model) renderError() string {
	icon := errorStyle.Render(" ⚠ ERROR ")
	message := lipgloss.NewStyle().
		Foreground(errorColor).
		Render(m.lastError.Error())

	content := fmt.Sprintf("%s %s", icon, message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(errorColor).
		Padding(0, 1).
		Render(content)
}

// renderExplain covers every KindExplain result: EXPLAIN plans and the
// plain acknowledgement text of CREATE/DROP TABLE|INDEX, SET, SYNC,
// TRX BEGIN|COMMIT|ROLLBACK and HELP.
func (m Model) renderExplain() string {
	header := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Bold(true).
		Render("Result")

	return fmt.Sprintf("%s\n%s", header, explainStyle.Render(m.lastResult.ExplainText))
}

func (m Model) renderResultTable() string {
	columns := make([]table.Column, len(m.lastResult.Schema))
	rows := make([][]string, len(m.lastResult.Rows))
	for i, row := range m.lastResult.Rows {
		rows[i] = make([]string, len(row))
		for c, v := range row {
			rows[i][c] = v.String()
		}
	}
	for i, name := range m.lastResult.Schema {
		width := m.calculateColumnWidth(name, i, rows)
		columns[i] = table.Column{Title: name, Width: width}
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	m.resultTable.SetColumns(columns)
	m.resultTable.SetRows(tableRows)

	header := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(fmt.Sprintf("✓ Results (%d rows in %v)", len(rows), m.lastQueryTime))

	return fmt.Sprintf("%s\n%s", header, m.resultTable.View())
}

func (m Model) renderMessage() string {
	icon := successStyle.Render(" ✓ ")
	message := fmt.Sprintf("Rows affected: %d", m.lastResult.RowsAffected)

	return lipgloss.NewStyle().
		Foreground(accentColor).
		Padding(1, 0).
		Render(fmt.Sprintf("%s %s", icon, message))
}

func (m Model) renderStatusBar() string {
	status := "● Connected"
	statusColor := accentColor

	timer := ""
	if m.lastQueryTime > 0 {
		timer = fmt.Sprintf(" | Last query: %v", m.lastQueryTime)
	}

	helpHint := " | Press Ctrl+H for help"
	content := lipgloss.NewStyle().
		Foreground(statusColor).
		Render(status) +
		lipgloss.NewStyle().
			Foreground(textMuted).
			Render(timer+helpHint)

	return statusBarStyle.
		Width(m.width - 4).
		Render(content)
}

func (m Model) calculateColumnWidth(columnName string, index int, rows [][]string) int {
	maxWidth := 30
	minWidth := 10

	width := len(columnName) + 2

	for _, row := range rows {
		if index < len(row) {
			dataWidth := len(row[index]) + 2
			if dataWidth > width {
				width = dataWidth
			}
		}
	}

	if width < minWidth {
		width = minWidth
	} else if width > maxWidth {
		width = maxWidth
	}

	return width
}

func (m *Model) updateLayout() {
	editorHeight := 6
	resultHeight := m.height - editorHeight - 10

	m.queryEditor.SetWidth(m.width - 6)
	m.resultView.Width = m.width - 6
	m.resultView.Height = resultHeight
	m.resultTable.SetHeight(resultHeight)
}

func (m *Model) updateResultDisplay() {
	if m.lastResult != nil && len(m.lastResult.Rows) > 0 {
		m.resultTable.Focus()
	}
}

type queryResultMsg struct {
	query    string
	result   *engine.Result
	err      error
	duration time.Duration
}

func (m Model) executeQuery(query string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := m.session.Execute(query)
		duration := time.Since(start)

		return queryResultMsg{
			query:    query,
			result:   result,
			err:      err,
			duration: duration,
		}
	}
}

// showStatistics renders engine.Info as a synthetic result table rather
// than issuing it through Session.Execute, since it isn't a SQL
// statement the grammar recognizes.
func (m Model) showStatistics() tea.Cmd {
	return func() tea.Msg {
		info := m.engine.Info()

		result := &engine.Result{
			Kind:   engine.KindRows,
			Schema: []string{"Metric", "Value"},
		}
		add := func(metric, value string) {
			result.Rows = append(result.Rows, []types.Value{
				types.NewChars(metric, len(metric)),
				types.NewChars(value, len(value)),
			})
		}
		add("Total Tables", fmt.Sprintf("%d", info.TableCount))
		add("Queries Executed", fmt.Sprintf("%d", info.QueriesExecuted))
		add("Errors", fmt.Sprintf("%d", info.ErrorCount))
		if len(info.Tables) > 0 {
			add("Tables", strings.Join(info.Tables, ", "))
		}

		return queryResultMsg{
			query:    "SHOW STATISTICS",
			result:   result,
			duration: time.Millisecond * 10,
		}
	}
}
