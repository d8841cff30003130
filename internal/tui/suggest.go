package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dealscope/internal/catalog"
)

const (
	fieldTarget = iota
	fieldReceiver
	fieldAggregator
	fieldYear
	fieldType
	fieldValueRaw
	fieldValueMin
	fieldValueMax
	fieldValueUnit
	fieldSourceURL
	fieldCodes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Edit deal id (blank = new)",
	"Data receiver",
	"Data aggregator",
	"Year",
	"Type",
	"Value (verbatim)",
	"Value min ($m)",
	"Value max ($m)",
	"Value unit",
	"Source URL",
	"Codes (comma separated)",
}

type suggestForm struct {
	inputs  [fieldCount]textinput.Model
	cursor  int
	editing bool
}

func newSuggestForm() suggestForm {
	var f suggestForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		f.inputs[i] = in
	}
	f.inputs[fieldValueRaw].SetValue("Undisclosed")
	return f
}

func (f *suggestForm) current() *textinput.Model { return &f.inputs[f.cursor] }

// toDeal parses the form into a proposed deal plus an optional edit
// target. Validation beyond basic parsing lives in the service.
func (f *suggestForm) toDeal() (catalog.Deal, *int64, error) {
	get := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	d := catalog.Deal{
		Receiver:   get(fieldReceiver),
		Aggregator: get(fieldAggregator),
		Type:       get(fieldType),
		ValueRaw:   get(fieldValueRaw),
	}
	if d.ValueRaw == "" {
		d.ValueRaw = "Undisclosed"
	}

	if y := get(fieldYear); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return d, nil, fmt.Errorf("year %q is not a number", y)
		}
		d.Year = year
	}

	parseMillions := func(i int) (*int64, error) {
		s := get(i)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s %q is not a number", fieldLabels[i], s)
		}
		n := int64(v * 1_000_000)
		return &n, nil
	}
	var err error
	if d.ValueMin, err = parseMillions(fieldValueMin); err != nil {
		return d, nil, err
	}
	if d.ValueMax, err = parseMillions(fieldValueMax); err != nil {
		return d, nil, err
	}

	if u := get(fieldValueUnit); u != "" {
		d.ValueUnit = &u
	}
	if u := get(fieldSourceURL); u != "" {
		d.SourceURL = &u
	}
	if codes := get(fieldCodes); codes != "" {
		for _, c := range strings.Split(codes, ",") {
			if c = strings.TrimSpace(strings.ToUpper(c)); c != "" {
				d.Codes = append(d.Codes, c)
			}
		}
	}

	var target *int64
	if s := get(fieldTarget); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return d, nil, fmt.Errorf("deal id %q is not a number", s)
		}
		target = &id
	}
	return d, target, nil
}

func (a *App) handleSuggestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.UpDown):
		switch msg.String() {
		case "down", "j":
			if a.form.cursor < fieldCount-1 {
				a.form.cursor++
			}
		case "up", "k":
			if a.form.cursor > 0 {
				a.form.cursor--
			}
		}
		return a, nil
	case key.Matches(msg, a.keys.Toggle):
		a.form.editing = true
		return a, a.form.current().Focus()
	case key.Matches(msg, a.keys.Submit):
		return a.submitForm()
	case key.Matches(msg, a.keys.Close):
		a.form = newSuggestForm()
		a.view = viewDeals
		return a, nil
	}
	return a, nil
}

func (a *App) handleFormEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.form.editing = false
		a.form.current().Blur()
		return a, nil
	case "tab":
		a.form.current().Blur()
		a.form.cursor = (a.form.cursor + 1) % fieldCount
		return a, a.form.current().Focus()
	case "ctrl+s":
		a.form.editing = false
		a.form.current().Blur()
		return a.submitForm()
	}
	var cmd tea.Cmd
	*a.form.current(), cmd = a.form.current().Update(msg)
	return a, cmd
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	if a.services.Suggestions == nil || !a.cfg.Moderation.Enabled {
		a.setStatus("moderation is disabled")
		return a, nil
	}
	proposed, target, err := a.form.toDeal()
	if err != nil {
		a.setError(err)
		return a, nil
	}
	return a, a.submitCmd(proposed, target)
}

func (a *App) renderSuggest() string {
	var b strings.Builder
	b.WriteString(headerRow.Render("Suggest a deal") + "\n")
	b.WriteString(dimStyle.Render("New entries and edits go to the review queue before they appear in the catalog.") + "\n\n")

	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("%-28s", fieldLabels[i])
		value := a.form.inputs[i].Value()
		if i == a.form.cursor {
			if a.form.editing {
				b.WriteString(cursorStyle.Render("> "+label) + a.form.inputs[i].View() + "\n")
			} else {
				b.WriteString(cursorStyle.Render("> "+label) + value + "\n")
			}
		} else {
			b.WriteString("  " + dimStyle.Render(label) + value + "\n")
		}
	}

	b.WriteString("\n" + hintStyle.Render("enter edit field · ctrl+s submit · esc discard"))
	return b.String()
}
