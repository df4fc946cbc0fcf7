package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cfgexplorer/pkg/config"
	"github.com/matzehuels/cfgexplorer/pkg/explorer"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/render/sink"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// Layout of the explore screen.
const (
	panelWidth   = 44
	chromeRows   = 2 // breadcrumb and help lines
	minCanvasCol = 10
	minCanvasRow = 4
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(colorDim).
			PaddingLeft(1)
	panelHeading = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// hostKeys maps bubbletea key names to the names the explorer understands.
var hostKeys = map[string]string{
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"enter":     "Enter",
	"esc":       "Escape",
	"backspace": "Backspace",
}

// translateKey returns the explorer's name for a bubbletea key.
func translateKey(key string) string {
	if k, ok := hostKeys[key]; ok {
		return k
	}
	return key
}

// =============================================================================
// Side Panel
// =============================================================================

// textPanel is the terminal context panel. It keeps the latest block details
// and renders them next to the canvas.
type textPanel struct {
	info   explorer.BlockInfo
	locals []graph.LocalDoc
	ok     bool
}

func (p *textPanel) Update(info explorer.BlockInfo, locals []graph.LocalDoc) {
	p.info, p.locals, p.ok = info, locals, true
}

func (p *textPanel) View(width, height int) string {
	if !p.ok {
		return panelStyle.Width(width).Height(height).Render(StyleDim.Render("no block"))
	}
	info := p.info
	var b strings.Builder

	b.WriteString(StyleTitle.Render(graph.BlockLabel(info.ID)))
	b.WriteString(" " + roleStyle(info.Role).Render(info.Role.String()) + "\n")
	if info.Summary != "" {
		b.WriteString(StyleValue.Render(info.Summary) + "\n")
	}

	if len(info.Statements) > 0 {
		b.WriteString("\n" + panelHeading.Render("Statements") + "\n")
		for _, s := range info.Statements {
			b.WriteString(StyleValue.Render(s.Source) + "\n")
			if s.Annotation != "" {
				b.WriteString("  " + StyleDim.Render(s.Annotation) + "\n")
			}
		}
	}

	b.WriteString("\n" + panelHeading.Render(info.Terminator.Kind) + "\n")
	b.WriteString(StyleValue.Render(info.Terminator.Source) + "\n")
	for i, e := range info.Terminator.Edges {
		marker := "  "
		style := listNormalStyle
		if i == info.SelectedEdge {
			marker = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("%s%d %s %s", marker, i+1, iconArrow, graph.BlockLabel(e.Target))
		if e.Label != "" {
			line += " " + e.Label
		}
		b.WriteString(style.Render(line) + "\n")
	}

	if len(info.Predecessors) > 0 {
		preds := make([]string, len(info.Predecessors))
		for i, id := range info.Predecessors {
			preds[i] = graph.BlockLabel(id)
		}
		b.WriteString("\n" + panelHeading.Render("From") + " " + StyleDim.Render(strings.Join(preds, ", ")) + "\n")
	}

	if len(p.locals) > 0 {
		b.WriteString("\n" + localsTable(p.locals).Render())
	}

	return panelStyle.Width(width).Height(height).MaxHeight(height).Render(b.String())
}

// localsTable lists locals with their types and source names.
func localsTable(locals []graph.LocalDoc) *table.Table {
	rows := make([][]string, len(locals))
	for i, l := range locals {
		name := ""
		if l.SourceName != nil {
			name = *l.SourceName
		}
		rows[i] = []string{l.Name, name, l.Type}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Local", "Name", "Type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return panelHeading
			}
			if col == 2 {
				return StyleDim
			}
			return StyleValue
		})
}

// =============================================================================
// ExploreModel - Interactive CFG walk
// =============================================================================

// ExploreModel is the bubbletea model for the explore command.
type ExploreModel struct {
	ex     *explorer.Explorer
	cells  *sink.Cells
	panel  *textPanel
	doc    *graph.CrateDocument
	width  int
	height int

	picker   *FunctionListModel
	dragging bool
	dragged  bool
	lastX    int
	lastY    int
}

// NewExploreModel loads doc into a fresh explorer drawing onto terminal cells.
func NewExploreModel(doc *graph.CrateDocument, function int, tui config.TUIConfig, opts ...explorer.Option) (*ExploreModel, error) {
	cells := sink.NewCells(80, 24, tui.CellWidth, tui.CellHeight)
	panel := &textPanel{}
	ex, err := explorer.New(cells, panel, opts...)
	if err != nil {
		return nil, err
	}
	if err := ex.LoadDocument(doc); err != nil {
		return nil, err
	}
	if function > 0 {
		ex.SelectFunction(function)
	}
	return &ExploreModel{ex: ex, cells: cells, panel: panel, doc: doc, width: 80 + panelWidth, height: 24 + chromeRows}, nil
}

// Explorer returns the underlying controller.
func (m *ExploreModel) Explorer() *explorer.Explorer { return m.ex }

func (m *ExploreModel) Init() tea.Cmd {
	return nil
}

func (m *ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		return m.updatePicker(msg)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *ExploreModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "+", "=":
		c := m.center()
		m.ex.HandleWheel(-1, c.X, c.Y)
		return nil
	case "-":
		c := m.center()
		m.ex.HandleWheel(1, c.X, c.Y)
		return nil
	case "f":
		m.ex.FitToView()
		return nil
	case "tab":
		m.ex.SelectFunction((m.ex.SelectedFunction() + 1) % m.ex.FunctionCount())
		return nil
	case "shift+tab":
		n := m.ex.FunctionCount()
		m.ex.SelectFunction((m.ex.SelectedFunction() + n - 1) % n)
		return nil
	}

	k := translateKey(key)
	if !m.ex.HandleKey(k) && k == "/" {
		m.openPicker()
	}
	return nil
}

func (m *ExploreModel) handleMouse(msg tea.MouseMsg) {
	if msg.X >= m.canvasCols() {
		return
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		p := m.cells.CellCenter(msg.X, msg.Y)
		m.ex.HandleWheel(-1, p.X, p.Y)
	case msg.Button == tea.MouseButtonWheelDown:
		p := m.cells.CellCenter(msg.X, msg.Y)
		m.ex.HandleWheel(1, p.X, p.Y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging, m.dragged, m.lastX, m.lastY = true, false, msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		if msg.X == m.lastX && msg.Y == m.lastY {
			return
		}
		cell := m.cells.CellSize()
		m.ex.HandleDrag(float64(msg.X-m.lastX)*cell.Width, float64(msg.Y-m.lastY)*cell.Height)
		m.dragged, m.lastX, m.lastY = true, msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		// A press and release without motion is a click.
		if m.dragging && !m.dragged {
			p := m.cells.CellCenter(msg.X, msg.Y)
			m.ex.HandleClick(p.X, p.Y)
		}
		m.dragging = false
	}
}

// resize fits the canvas into the terminal beside the panel and refits the
// current function.
func (m *ExploreModel) resize(width, height int) {
	m.width, m.height = width, height
	m.cells.Resize(m.canvasCols(), m.canvasRows())
	m.ex.FitToView()
}

func (m *ExploreModel) canvasCols() int { return max(m.width-panelWidth, minCanvasCol) }
func (m *ExploreModel) canvasRows() int { return max(m.height-chromeRows, minCanvasRow) }

func (m *ExploreModel) center() viewport.Point {
	size := m.cells.Size()
	return viewport.Point{X: size.Width / 2, Y: size.Height / 2}
}

func (m *ExploreModel) openPicker() {
	p := NewFunctionListModel(documentRows(m.doc), m.ex.SelectedFunction())
	p.Height = max(m.height-8, 5)
	m.picker = &p
}

func (m *ExploreModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(ws.Width, ws.Height)
	}
	next, cmd := m.picker.Update(msg)
	p := next.(FunctionListModel)
	switch {
	case p.Selected >= 0:
		m.picker = nil
		m.ex.SelectFunction(p.Selected)
		return m, nil
	case p.Closed:
		m.picker = nil
		return m, nil
	}
	m.picker = &p
	return m, cmd
}

func (m *ExploreModel) View() string {
	if m.picker != nil {
		return m.picker.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.cells.String(),
		m.panel.View(panelWidth-2, m.canvasRows()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.breadcrumb(), m.help())
}

func (m *ExploreModel) breadcrumb() string {
	name, _ := m.ex.FunctionName(m.ex.SelectedFunction())
	crumbs := m.ex.Breadcrumb()
	parts := make([]string, len(crumbs))
	for i, id := range crumbs {
		parts[i] = graph.BlockLabel(id)
		if i == len(crumbs)-1 {
			parts[i] = StyleHighlight.Render(parts[i])
		}
	}
	return StyleTitle.Render(m.doc.Name+"::"+name) + "  " + strings.Join(parts, StyleDim.Render(" "+iconArrow+" "))
}

func (m *ExploreModel) help() string {
	return listDimStyle.Render("j/k edge  l/⏎ follow  h back  1-9 jump  esc reset  +/- zoom  f fit  tab fn  / find  q quit")
}

// =============================================================================
// FunctionListModel - Interactive function selection
// =============================================================================

// functionRow summarizes one function for listing.
type functionRow struct {
	Index  int
	Name   string
	Full   string
	Blocks int
	Loops  int
}

// documentRows summarizes every function of doc.
func documentRows(doc *graph.CrateDocument) []functionRow {
	rows := make([]functionRow, len(doc.Functions))
	for i := range doc.Functions {
		fn := &doc.Functions[i]
		rows[i] = functionRow{
			Index:  i,
			Name:   fn.DisplayName(),
			Full:   fn.Name,
			Blocks: len(fn.Blocks),
			Loops:  len(fn.LoopBlocks()),
		}
	}
	return rows
}

// FunctionListModel is the bubbletea model for picking a function. Typing
// filters the list by name.
type FunctionListModel struct {
	Rows     []functionRow
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected int
	Closed   bool
}

// NewFunctionListModel creates a picker with the cursor on current.
func NewFunctionListModel(rows []functionRow, current int) FunctionListModel {
	m := FunctionListModel{Rows: rows, Height: 15, Selected: -1}
	if current >= 0 && current < len(rows) {
		m.Cursor = current
	}
	return m
}

// visible returns the rows matching the filter.
func (m FunctionListModel) visible() []functionRow {
	if m.Filter == "" {
		return m.Rows
	}
	var out []functionRow
	needle := strings.ToLower(m.Filter)
	for _, r := range m.Rows {
		if strings.Contains(strings.ToLower(r.Name), needle) || strings.Contains(strings.ToLower(r.Full), needle) {
			out = append(out, r)
		}
	}
	return out
}

func (m FunctionListModel) Init() tea.Cmd {
	return nil
}

func (m FunctionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := m.visible()
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.Closed = true
			return m, nil
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if m.Cursor < len(rows) {
				m.Selected = rows[m.Cursor].Index
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m FunctionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Function"))
	b.WriteString("  " + StyleHighlight.Render("/"+m.Filter))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc back"))
	b.WriteString("\n\n")

	rows := m.visible()
	end := min(m.Offset+m.Height, len(rows))
	b.WriteString(functionTable(rows[m.Offset:end], m.Cursor-m.Offset).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(rows)), len(rows))))

	return b.String()
}

// functionTable renders rows with the cursor row highlighted. A negative
// cursor highlights nothing.
func functionTable(rows []functionRow, cursor int) *table.Table {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		cells[i] = []string{marker, fmt.Sprint(r.Index), r.Name, fmt.Sprint(r.Blocks), fmt.Sprint(r.Loops), r.Full}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Function", "Blocks", "Loops", "Path").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col == 1 || col == 5 {
				base = base.Foreground(colorDim)
			}
			if row == cursor {
				if col == 2 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			return base
		})
}
