package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) handleGraphKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(a.net.Nodes)
	if n == 0 {
		return a, nil
	}
	switch {
	case key.Matches(msg, a.keys.UpDown):
		switch msg.String() {
		case "down", "j":
			a.nodeCursor = (a.nodeCursor + 1) % n
		case "up", "k":
			a.nodeCursor = (a.nodeCursor - 1 + n) % n
		}
		return a, nil
	case key.Matches(msg, a.keys.Toggle):
		name := a.net.Nodes[a.nodeCursor].Name
		a.controller.ToggleNode(name)
		a.clampCursors()
		if a.controller.Selected(name) {
			a.setStatus("selected " + name)
		} else {
			a.setStatus("deselected " + name)
		}
		return a, nil
	case key.Matches(msg, a.keys.Reset):
		a.controller.ResetAll()
		a.search.SetValue("")
		a.setStatus("filters reset")
		return a, nil
	}
	if msg.String() == "tab" {
		a.nodeCursor = (a.nodeCursor + 1) % n
	}
	return a, nil
}

type graphCell struct {
	ch    rune
	style lipgloss.Style
}

// renderGraph draws the laid-out network onto a character grid. Layout
// positions are frozen; selection and cursor state only change styling.
func (a *App) renderGraph() string {
	var b strings.Builder
	b.WriteString(a.filterSummary() + "\n")

	if len(a.net.Nodes) == 0 {
		b.WriteString(dimStyle.Render("  no organizations to show"))
		return b.String()
	}

	cols := a.cfg.UI.GraphWidth
	rows := a.cfg.UI.GraphHeight / 2
	if a.width > 0 && cols > a.width {
		cols = a.width
	}
	if a.height > 8 && rows > a.height-8 {
		rows = a.height - 8
	}
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}

	grid := make([][]graphCell, rows)
	for y := range grid {
		grid[y] = make([]graphCell, cols)
		for x := range grid[y] {
			grid[y][x] = graphCell{ch: ' '}
		}
	}

	// Project layout coordinates onto the grid.
	w := float64(a.cfg.UI.GraphWidth)
	h := float64(a.cfg.UI.GraphHeight)
	toCell := func(i int) (int, int) {
		p := a.positions[i]
		x := int(p.X / w * float64(cols-1))
		y := int(p.Y / h * float64(rows-1))
		if x < 0 {
			x = 0
		}
		if x >= cols {
			x = cols - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= rows {
			y = rows - 1
		}
		return x, y
	}

	for _, e := range a.net.Edges {
		x0, y0 := toCell(e.From)
		x1, y1 := toCell(e.To)
		drawLine(grid, x0, y0, x1, y1)
	}

	for i, n := range a.net.Nodes {
		x, y := toCell(i)
		style := nodeStyle
		if a.controller.Selected(n.Name) {
			style = nodeSelected
		}
		if i == a.nodeCursor {
			style = nodeCursorStyle
		}
		grid[y][x] = graphCell{ch: '●', style: style}
		// Label to the right when it fits, otherwise to the left.
		label := n.Name
		if x+2+len(label) < cols {
			placeLabel(grid, x+2, y, label, style)
		} else if x-1-len(label) >= 0 {
			placeLabel(grid, x-1-len(label), y, label, style)
		}
	}

	for _, row := range grid {
		for _, c := range row {
			if c.ch == ' ' {
				b.WriteByte(' ')
			} else {
				b.WriteString(c.style.Render(string(c.ch)))
			}
		}
		b.WriteByte('\n')
	}

	cur := a.net.Nodes[a.nodeCursor]
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s · %d deals", cur.Name, cur.Count)))
	return b.String()
}

func placeLabel(grid [][]graphCell, x, y int, label string, style lipgloss.Style) {
	base := labelStyle
	if style.GetBold() {
		base = style
	}
	for i, r := range label {
		cx := x + i
		if cx < 0 || cx >= len(grid[y]) {
			return
		}
		if grid[y][cx].ch == ' ' || grid[y][cx].ch == '·' {
			grid[y][cx] = graphCell{ch: r, style: base}
		}
	}
}

// drawLine rasterizes an edge with Bresenham, skipping cells already
// occupied by node glyphs or labels.
func drawLine(grid [][]graphCell, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if grid[y0][x0].ch == ' ' {
			grid[y0][x0] = graphCell{ch: '·', style: edgeStyle}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
