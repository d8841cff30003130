package tui

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"dealscope/internal/catalog"
	"dealscope/internal/config"
)

func mval(v float64) *int64 {
	n := int64(v * 1_000_000)
	return &n
}

func TestSortDealsLeavesInputAlone(t *testing.T) {
	deals := []catalog.Deal{
		{ID: 1, Aggregator: "Reddit", Year: 2024},
		{ID: 2, Aggregator: "Associated Press", Year: 2023},
		{ID: 3, Aggregator: "News Corp", Year: 2024},
	}

	sorted := sortDeals(deals, sortByAggregator, true)
	require.Equal(t, []int64{2, 3, 1}, []int64{sorted[0].ID, sorted[1].ID, sorted[2].ID})

	// Canonical order survives whatever the display layer does.
	require.Equal(t, int64(1), deals[0].ID)
	require.Equal(t, int64(2), deals[1].ID)
	require.Equal(t, int64(3), deals[2].ID)
}

func TestSortDealsByValuePutsUndisclosedFirst(t *testing.T) {
	deals := []catalog.Deal{
		{ID: 1, ValueMin: mval(250), ValueMax: mval(250)},
		{ID: 2}, // undisclosed, treated as zero
		{ID: 3, ValueMin: mval(60), ValueMax: mval(60)},
	}
	sorted := sortDeals(deals, sortByValue, true)
	require.Equal(t, int64(2), sorted[0].ID)
	require.Equal(t, int64(3), sorted[1].ID)
	require.Equal(t, int64(1), sorted[2].ID)
}

func TestSortDealsDescendingIsStable(t *testing.T) {
	deals := []catalog.Deal{
		{ID: 1, Year: 2024},
		{ID: 2, Year: 2023},
		{ID: 3, Year: 2024},
	}
	sorted := sortDeals(deals, sortByYear, false)
	// Equal years keep their relative order even descending.
	require.Equal(t, []int64{1, 3, 2}, []int64{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestFormatDealValue(t *testing.T) {
	require.Equal(t, "Undisclosed", formatDealValue(catalog.Deal{}))

	require.Equal(t, "$60m", formatDealValue(catalog.Deal{
		ValueMin: mval(60), ValueMax: mval(60),
	}))

	require.Equal(t, "$25m-50m", formatDealValue(catalog.Deal{
		ValueMin: mval(25), ValueMax: mval(50),
	}))

	unit := "per year"
	require.Equal(t, "$60m per year", formatDealValue(catalog.Deal{
		ValueMin: mval(60), ValueMax: mval(60), ValueUnit: &unit,
	}))
}

func TestDealPairLabelKeepsRunesIntact(t *testing.T) {
	d := catalog.Deal{
		Aggregator: strings.Repeat("é", 30),
		Receiver:   "Condé Nast",
	}
	label := dealPairLabel(d)
	require.True(t, utf8.ValidString(label), "truncation must not split a rune")
	require.LessOrEqual(t, runewidth.StringWidth(label), 40)
	require.True(t, strings.HasSuffix(label, "..."))

	short := dealPairLabel(catalog.Deal{Aggregator: "AP", Receiver: "OpenAI"})
	require.Equal(t, "AP → OpenAI", short)
}

func newTestApp() *App {
	cfg := config.Config{
		UI:         config.UIConfig{GraphWidth: 100, GraphHeight: 60},
		Moderation: config.ModerationConfig{Enabled: true},
	}
	app := New(context.Background(), cfg, Repos{}, Services{})
	deals := []catalog.Deal{
		{ID: 1, Receiver: "OpenAI", Aggregator: "Associated Press", Year: 2023, Type: "News", ValueRaw: "Undisclosed"},
		{ID: 2, Receiver: "Google", Aggregator: "Reddit", Year: 2024, Type: "UGC", ValueRaw: "$60m", ValueMin: mval(60), ValueMax: mval(60)},
	}
	stats := catalog.Stats{
		Total: 2, YearMin: 2023, YearMax: 2024, MinMillions: 60, MaxMillions: 300,
		DealsPerYear: map[int]int{2023: 1, 2024: 1},
		DealsPerType: map[string]int{"News": 1, "UGC": 1},
		DealsPerCode: map[string]int{},
	}
	app.controller.SetData(deals, stats)
	app.ready = true
	return app
}

func press(app *App, s string) {
	_, _ = app.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestDealsKeyBindingsDriveFilters(t *testing.T) {
	app := newTestApp()

	press(app, "O")
	require.False(t, app.sortAsc)
	press(app, "o")
	require.Equal(t, sortByYear, app.sortCol)

	press(app, "]")
	require.Equal(t, 2024, app.controller.Filters().YearMin)
	press(app, "}")
	require.Equal(t, 2024, app.controller.Filters().YearMax, "upper year stays clamped to the dataset")

	press(app, ".")
	require.Equal(t, 75.0, app.controller.Filters().ValueMin, "lower bound steps off the sentinel onto the grid")
	press(app, "<")
	require.Equal(t, 225.0, app.controller.Filters().ValueMax)

	press(app, "x")
	f := app.controller.Filters()
	require.Equal(t, 2023, f.YearMin)
	require.Equal(t, catalog.UndisclosedSentinel, f.ValueMin)
	require.Equal(t, 300.0, f.ValueMax)
}

func TestSuggestFormToDeal(t *testing.T) {
	f := newSuggestForm()
	f.inputs[fieldReceiver].SetValue("Google")
	f.inputs[fieldAggregator].SetValue("Reddit")
	f.inputs[fieldYear].SetValue("2024")
	f.inputs[fieldType].SetValue("UGC")
	f.inputs[fieldValueRaw].SetValue("$60m per year")
	f.inputs[fieldValueMin].SetValue("60")
	f.inputs[fieldValueMax].SetValue("60")
	f.inputs[fieldCodes].SetValue("tr, api")

	d, target, err := f.toDeal()
	require.NoError(t, err)
	require.Nil(t, target)
	require.Equal(t, "Google", d.Receiver)
	require.Equal(t, 2024, d.Year)
	require.Equal(t, int64(60_000_000), *d.ValueMin)
	require.Equal(t, []string{"TR", "API"}, d.Codes)

	f.inputs[fieldTarget].SetValue("7")
	_, target, err = f.toDeal()
	require.NoError(t, err)
	require.Equal(t, int64(7), *target)

	f.inputs[fieldYear].SetValue("soon")
	_, _, err = f.toDeal()
	require.Error(t, err)
}
