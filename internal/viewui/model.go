// Package viewui provides the Bubble Tea point browser.
package viewui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pointprep/internal/serie"
	"github.com/verte-zerg/pointprep/internal/stats"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var orderCycle = []serie.SortOrder{serie.OrderNumeric, serie.OrderAlpha, serie.OrderDate}

// Model implements the Bubble Tea point browser.
type Model struct {
	base   *serie.Serie
	opts   serie.Options
	result serie.Result
	errMsg string

	points table.Model

	width  int
	height int
}

// NewModel builds a browser over s, starting from its configured options.
func NewModel(s *serie.Serie) *Model {
	m := &Model{
		base: s,
		opts: s.Options(),
	}
	m.points = table.New(
		table.WithColumns(pointColumns(0)),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	m.points.SetStyles(pointTableStyles())
	m.refresh()
	return m
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
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "f":
			m.opts.FillNullDateValues = !m.opts.FillNullDateValues
		case "g":
			m.opts.Grouped = !m.opts.Grouped
		case "c":
			m.opts.Cumulative = !m.opts.Cumulative
		case "s":
			m.opts.Sort = !m.opts.Sort
		case "o":
			m.opts.Order = nextOrder(m.opts.Order)
			m.opts.Sort = true
		case "d":
			if m.opts.Direction == serie.Descending {
				m.opts.Direction = serie.Ascending
			} else {
				m.opts.Direction = serie.Descending
			}
		case "home":
			m.points.GotoTop()
			return m, nil
		case "G", "end":
			m.points.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.points, cmd = m.points.Update(msg)
			return m, cmd
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Options returns the options currently applied.
func (m *Model) Options() serie.Options {
	return m.opts
}

// Result returns the last successful pipeline output.
func (m *Model) Result() serie.Result {
	return m.result
}

// Err returns the last pipeline error message, if any.
func (m *Model) Err() string {
	return m.errMsg
}

func (m *Model) refresh() {
	s, err := m.base.WithOptions(m.opts)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	res, err := s.Get()
	if err != nil {
		m.errMsg = err.Error()
		m.result = serie.Result{Name: m.base.Name()}
		m.points.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.result = res
	rows := make([]table.Row, 0, len(res.Points))
	for _, cells := range stats.PointRows(res.Points) {
		rows = append(rows, table.Row(cells))
	}
	m.points.SetRows(rows)
	if m.points.Cursor() >= len(rows) {
		m.points.GotoTop()
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(titleStyle.Render("X")) + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = maxInt(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.points.SetColumns(pointColumns(m.width))
	m.points.SetWidth(m.width)
	m.points.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf("%s  (%d points)", m.result.Name, len(m.result.Points)))
	return title + "\n" + headerStyle.Render(truncateLine(describeOptions(m.opts), m.width))
}

func (m *Model) renderBody() string {
	if m.errMsg != "" && len(m.result.Points) == 0 {
		return "No points: the pipeline failed."
	}
	return m.points.View()
}

func (m *Model) renderFooter() string {
	help := footerStyle.Render(truncateLine("f fill  g group  c cumulative  s sort  o order  d direction  q quit", m.width))
	if m.errMsg == "" {
		return help
	}
	return errorStyle.Render(truncateLine(m.errMsg, m.width)) + "\n" + help
}

func describeOptions(o serie.Options) string {
	sortDesc := "off"
	if o.Sort {
		sortDesc = fmt.Sprintf("%s %s", o.Order, o.Direction)
	}
	return fmt.Sprintf("Options: fill=%s  grouped=%s  cumulative=%s  sort=%s",
		onOff(o.FillNullDateValues), onOff(o.Grouped), onOff(o.Cumulative), sortDesc)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func nextOrder(o serie.SortOrder) serie.SortOrder {
	for i, candidate := range orderCycle {
		if candidate.String() == o.String() {
			return orderCycle[(i+1)%len(orderCycle)]
		}
	}
	return orderCycle[0]
}

func pointColumns(width int) []table.Column {
	xWidth := 26
	labelWidth := 20
	if width > 0 {
		labelWidth = maxInt(10, width-xWidth-14-10-4)
	}
	return []table.Column{
		{Title: "X", Width: xWidth},
		{Title: "Y", Width: 14},
		{Title: "Label", Width: labelWidth},
		{Title: "Note", Width: 10},
	}
}

func pointTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
