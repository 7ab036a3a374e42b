// Package statsui provides the Bubble Tea report interface.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verode/fitstat/internal/model"
	"github.com/verode/fitstat/internal/stats"
)

const (
	tabOverview = iota
	tabDuration
	tabMETs
	tabWeather
	tabTimeOfDay
	tabMonthly
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea report UI. The report is precomputed;
// the UI only renders it at the current terminal size.
type Model struct {
	report stats.Report
	cfg    model.ReportConfig

	tabs      []string
	activeTab int
	viewports []viewport.Model
	todTable  table.Model

	width  int
	height int
}

// NewModel constructs a report UI model.
func NewModel(report stats.Report, cfg model.ReportConfig) *Model {
	m := &Model{
		report: report,
		cfg:    cfg,
		tabs:   []string{"Overview", "Duration", "METs", "Weather", "Time of Day", "Monthly"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.todTable = buildTimeOfDayTable(report.TimeOfDay, 0, 1)
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
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabTimeOfDay {
				m.todTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabTimeOfDay {
				m.todTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabTimeOfDay {
				var cmd tea.Cmd
				m.todTable, cmd = m.todTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
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

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.todTable.SetWidth(m.width)
	m.todTable.SetHeight(maxInt(1, vpHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabTimeOfDay {
		m.todTable.Focus()
	} else {
		m.todTable.Blur()
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
	source := headerStyle.Render(truncateLine(fmt.Sprintf("Source: %s  Rows: %d", m.cfg.File, m.report.Diagnostics.Rows), m.width))
	return tabs + "\n" + padLines(source, m.width)
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Quit: q")
}

func (m *Model) renderBody() string {
	_, bodyHeight, _ := m.layoutHeights()
	if m.activeTab == tabTimeOfDay {
		if len(m.report.TimeOfDay) == 0 {
			return fitLines("No data.", m.width, bodyHeight)
		}
		return fitLines(tableMutedStyle.Render(m.todTable.View()), m.width, bodyHeight)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	plotWidth := stats.PlotWidthFor(width)
	plotHeight := m.cfg.PlotHeight

	m.viewports[tabOverview].SetContent(m.renderOverview(width))
	m.viewports[tabDuration].SetContent(renderChart(func(w *bytes.Buffer) error {
		return stats.RenderScatter(w, "Calories Burned vs Duration", "Duration (minutes)", "Calories (kcal)",
			m.report.DurationEnergy, nil, plotWidth, plotHeight, true)
	}))
	m.viewports[tabMETs].SetContent(renderChart(func(w *bytes.Buffer) error {
		if err := stats.RenderScatter(w, "Calories Burned vs Average METs", "Average METs", "Calories (kcal)",
			m.report.METsEnergy, stats.TrendOverlays(m.report.Trends), plotWidth, plotHeight, true); err != nil {
			return err
		}
		return stats.RenderTrends(w, m.report.Trends)
	}))
	m.viewports[tabWeather].SetContent(renderChart(func(w *bytes.Buffer) error {
		if err := stats.RenderScatter(w, "Calories Burned vs Temperature", "Temperature (degF)", "Calories (kcal)",
			m.report.TempEnergy, nil, plotWidth, plotHeight, true); err != nil {
			return err
		}
		return stats.RenderScatter(w, "Calories Burned vs Humidity", "Humidity (%)", "Calories (kcal)",
			m.report.HumidityEnergy, nil, plotWidth, plotHeight, true)
	}))
	m.viewports[tabMonthly].SetContent(renderChart(func(w *bytes.Buffer) error {
		return stats.RenderMonthly(w, m.report.Monthly, width)
	}))
}

func (m *Model) renderOverview(width int) string {
	cards := renderSummaryCards(m.report, width)
	var buf bytes.Buffer
	if err := stats.RenderDiagnostics(&buf, m.report.Diagnostics); err != nil {
		return fmt.Sprintf("Failed to render diagnostics: %v", err)
	}
	if err := stats.RenderSummary(&buf, m.report); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	workouts := report.Diagnostics.Rows
	activities := len(report.Activities)
	var energySum float64
	var energyCount int
	for _, a := range report.Activities {
		energySum += a.MeanEnergy * float64(a.EnergyCount)
		energyCount += a.EnergyCount
	}
	avg := "-"
	if energyCount > 0 {
		avg = fmt.Sprintf("%.0f", energySum/float64(energyCount))
	}
	top := "-"
	if len(report.Activities) > 0 {
		top = report.Activities[0].Activity
	}
	cards := []string{
		metricCard("Workouts", fmt.Sprintf("%d", workouts)),
		metricCard("Activities", fmt.Sprintf("%d", activities)),
		metricCard("Avg kcal", avg),
		metricCard("Most Frequent", top),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderChart(render func(*bytes.Buffer) error) string {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildTimeOfDayTable(boxes []stats.BoxSummary, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Time", Width: 17},
		{Title: "Activity", Width: 24},
		{Title: "Workouts", Width: 8},
		{Title: "Min", Width: 8},
		{Title: "Q1", Width: 8},
		{Title: "Median", Width: 8},
		{Title: "Q3", Width: 8},
		{Title: "Max", Width: 8},
	}
	rows := make([]table.Row, 0, len(boxes))
	for _, b := range boxes {
		rows = append(rows, table.Row{
			string(b.Category),
			b.Activity,
			fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("%.1f", b.Min),
			fmt.Sprintf("%.1f", b.Q1),
			fmt.Sprintf("%.1f", b.Median),
			fmt.Sprintf("%.1f", b.Q3),
			fmt.Sprintf("%.1f", b.Max),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(timeOfDayTableStyles())
	return t
}

func timeOfDayTableStyles() table.Styles {
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

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
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
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
