package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleStats() Stats {
	return Stats{
		Total:       3,
		YearMin:     2016,
		YearMax:     2025,
		MinMillions: 60,
		MaxMillions: 300,
	}
}

func newLoadedController(t *testing.T) *Controller {
	t.Helper()
	c := NewController()
	c.SetData(sampleDeals(), sampleStats())
	return c
}

func TestControllerDefaults(t *testing.T) {
	c := newLoadedController(t)
	f := c.Filters()
	require.Equal(t, 2016, f.YearMin)
	require.Equal(t, 2025, f.YearMax)
	require.Equal(t, UndisclosedSentinel, f.ValueMin)
	require.Equal(t, 300.0, f.ValueMax)
	require.True(t, f.Types.Open())
	require.True(t, f.Codes.Open())
	require.Empty(t, f.Search)
	require.Len(t, c.Filtered(), 3)
}

func TestResetAllIdempotent(t *testing.T) {
	c := newLoadedController(t)
	c.SetSearch("openai")
	c.ToggleNode("Getty")
	c.ToggleType("News")

	c.ResetAll()
	first := c.Filters()
	firstFiltered := c.Filtered()
	require.True(t, c.SelectionEmpty())

	c.ResetAll()
	require.Equal(t, first, c.Filters())
	require.Equal(t, firstFiltered, c.Filtered())
	require.True(t, c.SelectionEmpty())
}

func TestToggleNodePairRestoresView(t *testing.T) {
	c := newLoadedController(t)
	before := c.Filtered()

	c.ToggleNode("OpenAI")
	require.Len(t, c.Filtered(), 2)

	c.ToggleNode("OpenAI")
	require.True(t, c.SelectionEmpty())
	require.Equal(t, before, c.Filtered())
}

func TestEveryMutationRecomputesOnce(t *testing.T) {
	c := newLoadedController(t)
	gen := c.Generation()

	c.ToggleNode("OpenAI")
	require.Equal(t, gen+1, c.Generation())

	c.SetSearch("reddit")
	require.Equal(t, gen+2, c.Generation())

	year := 2024
	c.UpdateFilters(FilterPatch{YearMin: &year})
	require.Equal(t, gen+3, c.Generation())

	c.ResetAll()
	require.Equal(t, gen+4, c.Generation())
}

func TestUpdateFiltersMergeSemantics(t *testing.T) {
	c := newLoadedController(t)
	c.SetSearch("news")

	year := 2024
	c.UpdateFilters(FilterPatch{YearMin: &year})
	f := c.Filters()
	require.Equal(t, 2024, f.YearMin)
	require.Equal(t, 2025, f.YearMax)
	require.Equal(t, "news", f.Search, "untouched fields survive a partial update")
}

func TestUpdateFiltersClampsInvertedBounds(t *testing.T) {
	c := newLoadedController(t)

	lo, hi := 2025, 2018
	c.UpdateFilters(FilterPatch{YearMin: &lo, YearMax: &hi})
	f := c.Filters()
	require.LessOrEqual(t, f.YearMin, f.YearMax)
	require.Equal(t, 2018, f.YearMin)
	require.Equal(t, 2025, f.YearMax)

	vlo, vhi := 300.0, 75.0
	c.UpdateFilters(FilterPatch{ValueMin: &vlo, ValueMax: &vhi})
	f = c.Filters()
	require.LessOrEqual(t, f.ValueMin, f.ValueMax)
}

func TestUpdateFiltersSnapsValueBounds(t *testing.T) {
	c := newLoadedController(t)

	v := 112.5
	c.UpdateFilters(FilterPatch{ValueMax: &v})
	require.Equal(t, 75.0, c.Filters().ValueMax)

	neg := -3.0
	c.UpdateFilters(FilterPatch{ValueMin: &neg})
	require.Equal(t, UndisclosedSentinel, c.Filters().ValueMin)
}

func TestToggleTypeAndCode(t *testing.T) {
	c := newLoadedController(t)

	c.ToggleType("UGC")
	require.Len(t, c.Filtered(), 1)
	require.Equal(t, "UGC", c.Filtered()[0].Type)

	c.ToggleType("UGC")
	require.Len(t, c.Filtered(), 3)

	c.ToggleCode("TR")
	require.Len(t, c.Filtered(), 1)
	require.Equal(t, int64(3), c.Filtered()[0].ID)
}

func TestSetDataResetsState(t *testing.T) {
	c := newLoadedController(t)
	c.ToggleNode("OpenAI")
	c.SetSearch("getty")

	c.SetData(sampleDeals(), sampleStats())
	require.True(t, c.SelectionEmpty())
	require.Empty(t, c.Filters().Search)
	require.Len(t, c.Filtered(), 3)
}

func TestEmptyDatasetController(t *testing.T) {
	c := NewController()
	c.SetData(nil, Stats{})
	require.Empty(t, c.Filtered())
	require.NotPanics(t, func() { c.ResetAll() })
	require.NotPanics(t, func() { c.ToggleNode("nobody") })
}
