// Package viewer provides the Bubble Tea report window.
package viewer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/hashviz/internal/chart"
	"github.com/verte-zerg/hashviz/internal/grid"
	"github.com/verte-zerg/hashviz/internal/model"
	"github.com/verte-zerg/hashviz/internal/scene"
)

const (
	tabHashrateSurface = iota
	tabTimeSurface
	tabHashrateBars
	tabTimeBars
	tabGrid
)

const (
	azimuthStep   = 15.0
	elevationStep = 5.0
	// title, min/max line, axes legend and colour scale around the plot rows
	sceneChromeLines = 4
	fallbackWidth    = 80
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
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Options configures the viewer window.
type Options struct {
	Title  string
	Units  chart.Units
	Camera scene.Camera
}

// Model implements the Bubble Tea report viewer.
type Model struct {
	grid   *grid.Grid
	fig    chart.Figure
	units  chart.Units
	title  string
	camera scene.Camera
	reset  scene.Camera

	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	gridTable table.Model

	width  int
	height int
}

// NewModel builds the figure for g and prepares one tab per panel plus the
// grid table.
func NewModel(g *grid.Grid, opts Options) *Model {
	if opts.Units.Scale <= 0 {
		opts.Units = chart.DefaultUnits()
	}
	m := &Model{
		grid:   g,
		units:  opts.Units,
		title:  opts.Title,
		camera: opts.Camera,
		reset:  opts.Camera,
		tabs: []string{
			chart.PanelName(chart.PanelHashrateSurface),
			chart.PanelName(chart.PanelTimeSurface),
			chart.PanelName(chart.PanelHashrateBars),
			chart.PanelName(chart.PanelTimeBars),
			"Grid",
		},
	}
	m.fig = chart.BuildFigure(opts.Title, g, opts.Units, opts.Camera)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.gridTable = buildGridTable(g, opts.Units, fallbackWidth, 10)
	m.renderTabContents()
	return m
}

// Run opens the viewer on the alternate screen and blocks until the user
// quits.
func Run(g *grid.Grid, opts Options) error {
	program := tea.NewProgram(NewModel(g, opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
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
		case "a":
			m.rotate(-azimuthStep, 0)
			return m, nil
		case "d":
			m.rotate(azimuthStep, 0)
			return m, nil
		case "w":
			m.rotate(0, elevationStep)
			return m, nil
		case "s":
			m.rotate(0, -elevationStep)
			return m, nil
		case "r":
			m.camera = m.reset
			m.renderTabContents()
			return m, nil
		case "g", "home":
			if m.activeTab == tabGrid {
				m.gridTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabGrid {
				m.gridTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabGrid {
				var cmd tea.Cmd
				m.gridTable, cmd = m.gridTable.Update(msg)
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
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) rotate(dAz, dEl float64) {
	m.camera = m.camera.Rotate(dAz, dEl)
	m.renderTabContents()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
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
	m.gridTable.SetWidth(m.width)
	m.gridTable.SetHeight(maxInt(1, vpHeight-1))
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
	if m.activeTab == tabGrid {
		m.gridTable.Focus()
	} else {
		m.gridTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	settings := padLines(m.renderSettings(), m.width)
	return tabs + "\n" + settings
}

func (m *Model) renderSettings() string {
	title := m.title
	if title == "" {
		title = "-"
	}
	summary := fmt.Sprintf("Log: %s  experiments=%d  blocks=%d  azim=%.0f  elev=%.0f",
		title, m.grid.Cols(), m.grid.Rows(), m.camera.Azimuth, m.camera.Elevation)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Rotate: a/d  Tilt: w/s  Reset: r  Scroll: up/down  Quit: q"
	if m.activeTab == tabGrid {
		help = "Nav: left/right  Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabGrid {
		view := tableMutedStyle.Render(m.gridTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}
	_, bodyHeight, _ := m.layoutHeights()
	plotRows := maxInt(1, bodyHeight-sceneChromeLines)
	m.errMsg = ""
	for panel := tabHashrateSurface; panel <= tabTimeBars; panel++ {
		content, err := renderPanel(m.fig.Panels[panel], m.camera, width, plotRows)
		if err != nil {
			m.errMsg = err.Error()
			content = "Failed to render panel."
		}
		m.viewports[panel].SetContent(content)
	}
}

func renderPanel(sc scene.Scene, cam scene.Camera, width, height int) (string, error) {
	var buf bytes.Buffer
	if err := chart.RenderScene(&buf, sc, cam, width, height, true); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", sc.Title, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func gridTableData(g *grid.Grid, units chart.Units) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Difficulty", Width: 10},
		{Title: "Label", Width: 12},
		{Title: "Blocks", Width: 6},
		{Title: chart.MetricTitle(model.MetricHashrate, units), Width: 22},
		{Title: chart.MetricTitle(model.MetricTime, units), Width: 15},
	}
	hasMinMax := g.HasMinMax()
	if hasMinMax {
		columns = append(columns,
			table.Column{Title: chart.MetricTitle(model.MetricMinTime, units), Width: 15},
			table.Column{Title: chart.MetricTitle(model.MetricMaxTime, units), Width: 15},
		)
	}
	rows := make([]table.Row, 0, g.Rows()*g.Cols())
	for d := 0; d < g.Cols(); d++ {
		for b := 0; b < g.Rows(); b++ {
			sample := g.At(b, d)
			row := table.Row{
				fmt.Sprintf("%d", g.Difficulties[d]),
				g.Labels[d],
				fmt.Sprintf("%d", g.Blocks[b]),
				fmt.Sprintf("%.3f", grid.Value(model.MetricHashrate, sample, units.Scale)),
				fmt.Sprintf("%.3f", sample.AvgTime),
			}
			if hasMinMax {
				row = append(row, fmt.Sprintf("%.3f", sample.MinTime), fmt.Sprintf("%.3f", sample.MaxTime))
			}
			rows = append(rows, row)
		}
	}
	return columns, rows
}

func buildGridTable(g *grid.Grid, units chart.Units, width, height int) table.Model {
	columns, rows := gridTableData(g, units)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(gridTableStyles())
	return t
}

func gridTableStyles() table.Styles {
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
