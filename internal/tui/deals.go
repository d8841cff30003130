package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"dealscope/internal/catalog"
)

type sortColumn int

const (
	sortByID sortColumn = iota
	sortByYear
	sortByAggregator
	sortByReceiver
	sortByValue
)

var sortLabels = map[sortColumn]string{
	sortByID:         "id",
	sortByYear:       "year",
	sortByAggregator: "aggregator",
	sortByReceiver:   "receiver",
	sortByValue:      "value",
}

// sortDeals orders a display copy. The controller's filtered slice keeps
// canonical order; sorting never mutates it.
func sortDeals(deals []catalog.Deal, col sortColumn, asc bool) []catalog.Deal {
	out := make([]catalog.Deal, len(deals))
	copy(out, deals)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less bool
		switch col {
		case sortByYear:
			less = a.Year < b.Year
		case sortByAggregator:
			less = strings.ToLower(a.Aggregator) < strings.ToLower(b.Aggregator)
		case sortByReceiver:
			less = strings.ToLower(a.Receiver) < strings.ToLower(b.Receiver)
		case sortByValue:
			alo, _ := a.ValueMillions()
			blo, _ := b.ValueMillions()
			less = alo < blo
		default:
			less = a.ID < b.ID
		}
		if !asc {
			return !less && !dealsEqual(a, b, col)
		}
		return less
	})
	return out
}

func dealsEqual(a, b catalog.Deal, col sortColumn) bool {
	switch col {
	case sortByYear:
		return a.Year == b.Year
	case sortByAggregator:
		return strings.EqualFold(a.Aggregator, b.Aggregator)
	case sortByReceiver:
		return strings.EqualFold(a.Receiver, b.Receiver)
	case sortByValue:
		alo, _ := a.ValueMillions()
		blo, _ := b.ValueMillions()
		return alo == blo
	default:
		return a.ID == b.ID
	}
}

func (a *App) handleDealsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtered := a.controller.Filtered()

	switch {
	case key.Matches(msg, a.keys.UpDown):
		switch msg.String() {
		case "down", "j":
			if a.dealCursor < len(filtered)-1 {
				a.dealCursor++
			}
		case "up", "k":
			if a.dealCursor > 0 {
				a.dealCursor--
			}
		}
		a.scrollDeals()
		return a, nil
	case key.Matches(msg, a.keys.Search):
		a.search.Focus()
		return a, nil
	case key.Matches(msg, a.keys.Types):
		a.modal = modalTypes
		a.pickerCursor = 0
		return a, nil
	case key.Matches(msg, a.keys.Codes):
		a.modal = modalCodes
		a.pickerCursor = 0
		return a, nil
	case key.Matches(msg, a.keys.Reset):
		a.controller.ResetAll()
		a.search.SetValue("")
		a.dealCursor, a.dealTop = 0, 0
		a.setStatus("filters reset")
		return a, nil
	case key.Matches(msg, a.keys.Sort):
		if msg.String() == "O" {
			a.sortAsc = !a.sortAsc
		} else {
			a.sortCol = (a.sortCol + 1) % 5
			a.setStatus("sorted by " + sortLabels[a.sortCol])
		}
	case key.Matches(msg, a.keys.Years):
		switch msg.String() {
		case "[":
			a.nudgeYear(-1, true)
		case "]":
			a.nudgeYear(1, true)
		case "{":
			a.nudgeYear(-1, false)
		case "}":
			a.nudgeYear(1, false)
		}
	case key.Matches(msg, a.keys.Values):
		switch msg.String() {
		case ",":
			a.moveValueBound(-1, true)
		case ".":
			a.moveValueBound(1, true)
		case "<":
			a.moveValueBound(-1, false)
		case ">":
			a.moveValueBound(1, false)
		}
	}
	a.clampCursors()
	return a, nil
}

func (a *App) nudgeYear(delta int, lower bool) {
	f := a.controller.Filters()
	stats := a.controller.Stats()
	if lower {
		y := f.YearMin + delta
		if y < stats.YearMin {
			y = stats.YearMin
		}
		if y > stats.YearMax {
			y = stats.YearMax
		}
		a.controller.UpdateFilters(catalog.FilterPatch{YearMin: &y})
	} else {
		y := f.YearMax + delta
		if y < stats.YearMin {
			y = stats.YearMin
		}
		if y > stats.YearMax {
			y = stats.YearMax
		}
		a.controller.UpdateFilters(catalog.FilterPatch{YearMax: &y})
	}
}

// moveValueBound walks a bound through the slider positions: the
// undisclosed sentinel followed by each step in ascending order.
func (a *App) moveValueBound(delta int, lower bool) {
	steps := a.controller.ValueSteps()
	grid := append([]float64{catalog.UndisclosedSentinel}, steps...)
	f := a.controller.Filters()

	cur := f.ValueMax
	if lower {
		cur = f.ValueMin
	}
	idx := 0
	for i, g := range grid {
		if g == cur {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(grid) {
		idx = len(grid) - 1
	}
	v := grid[idx]
	if lower {
		a.controller.UpdateFilters(catalog.FilterPatch{ValueMin: &v})
	} else {
		if v < 0 {
			// The upper bound has no "undisclosed" position.
			v = steps[0]
		}
		a.controller.UpdateFilters(catalog.FilterPatch{ValueMax: &v})
	}
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.search.Blur()
		a.search.SetValue("")
		a.controller.SetSearch("")
		return a, nil
	case "enter":
		a.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	// Live filtering: every keystroke narrows the table immediately.
	a.controller.SetSearch(a.search.Value())
	a.clampCursors()
	return a, cmd
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := a.pickerOptions()
	switch {
	case key.Matches(msg, a.keys.Close), key.Matches(msg, a.keys.Types) && a.modal == modalTypes,
		key.Matches(msg, a.keys.Codes) && a.modal == modalCodes:
		a.modal = modalNone
		return a, nil
	case key.Matches(msg, a.keys.Quit):
		a.modal = modalNone
		return a, nil
	case key.Matches(msg, a.keys.UpDown):
		switch msg.String() {
		case "down", "j":
			if a.pickerCursor < len(options)-1 {
				a.pickerCursor++
			}
		case "up", "k":
			if a.pickerCursor > 0 {
				a.pickerCursor--
			}
		}
		return a, nil
	case key.Matches(msg, a.keys.Toggle):
		if a.pickerCursor < len(options) {
			if a.modal == modalTypes {
				a.controller.ToggleType(options[a.pickerCursor])
			} else {
				a.controller.ToggleCode(options[a.pickerCursor])
			}
			a.clampCursors()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) pickerOptions() []string {
	stats := a.controller.Stats()
	src := stats.DealsPerType
	if a.modal == modalCodes {
		src = stats.DealsPerCode
	}
	options := make([]string, 0, len(src))
	for k := range src {
		options = append(options, k)
	}
	sort.Strings(options)
	return options
}

func (a *App) renderPicker() string {
	title := "Deal types"
	restriction := a.controller.Filters().Types
	if a.modal == modalCodes {
		title = "Tag codes"
		restriction = a.controller.Filters().Codes
	}
	counts := a.controller.Stats().DealsPerType
	if a.modal == modalCodes {
		counts = a.controller.Stats().DealsPerCode
	}

	var b strings.Builder
	b.WriteString(headerRow.Render(title) + "\n")
	for i, opt := range a.pickerOptions() {
		marker := "[ ]"
		style := dimStyle
		if restriction.Has(opt) {
			marker = "[x]"
			style = filterOnStyle
		}
		line := fmt.Sprintf("%s %s (%d)", marker, opt, counts[opt])
		if i == a.pickerCursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + style.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(hintStyle.Render("enter toggle · esc close"))
	return b.String()
}

func (a *App) visibleRows() int {
	// header, tabs, filter bar, table header, status, footer
	rows := a.height - 7
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (a *App) scrollDeals() {
	rows := a.visibleRows()
	if a.dealCursor < a.dealTop {
		a.dealTop = a.dealCursor
	}
	if a.dealCursor >= a.dealTop+rows {
		a.dealTop = a.dealCursor - rows + 1
	}
}

func (a *App) renderDeals() string {
	deals := sortDeals(a.controller.Filtered(), a.sortCol, a.sortAsc)

	var b strings.Builder
	b.WriteString(a.filterSummary() + "\n")
	if a.search.Focused() {
		b.WriteString(a.search.View() + "\n")
	}
	b.WriteString(headerRow.Render(fmt.Sprintf("%-6s %-40s %-10s %-18s %s", "Year", "Deal", "Type", "Value", "Codes")) + "\n")

	if len(deals) == 0 {
		b.WriteString(dimStyle.Render("  no deals match the current filters"))
		return b.String()
	}

	rows := a.visibleRows()
	end := a.dealTop + rows
	if end > len(deals) {
		end = len(deals)
	}
	for i := a.dealTop; i < end; i++ {
		d := deals[i]
		line := fmt.Sprintf("%-6d %-40s %-10s %-18s %s",
			d.Year, dealPairLabel(d), d.Type, formatDealValue(d), strings.Join(d.Codes, ","))
		switch {
		case i == a.dealCursor:
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		case a.controller.Selected(d.Receiver) || a.controller.Selected(d.Aggregator):
			b.WriteString("  " + selectedStyle.Render(line) + "\n")
		default:
			b.WriteString("  " + line + "\n")
		}
	}
	if end < len(deals) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(deals)-end)))
	}
	return b.String()
}

// dealPairLabel renders "aggregator → receiver" clipped to the table
// column, truncating on display width so multibyte names stay intact.
func dealPairLabel(d catalog.Deal) string {
	return runewidth.Truncate(fmt.Sprintf("%s → %s", d.Aggregator, d.Receiver), 40, "...")
}

func formatDealValue(d catalog.Deal) string {
	if d.Undisclosed() {
		return "Undisclosed"
	}
	lo, hi := d.ValueMillions()
	s := fmt.Sprintf("$%s", formatMillions(lo))
	if hi > lo {
		s = fmt.Sprintf("$%s-%s", formatMillions(lo), formatMillions(hi))
	}
	if d.ValueUnit != nil {
		s += " " + *d.ValueUnit
	}
	return s
}
