package catalog

// Controller owns the filter state and node selection and is their only
// writer. Every mutation triggers exactly one synchronous recompute of the
// filtered view; readers never observe a stale intermediate state.
type Controller struct {
	deals      []Deal
	stats      Stats
	steps      []float64
	defaults   FilterState
	filters    FilterState
	selection  *Selection
	filtered   []Deal
	generation uint64
}

func NewController() *Controller {
	c := &Controller{
		selection: NewSelection(),
		steps:     Steps(BufferedMax(0)),
	}
	c.defaults = defaultFilters(Stats{}, c.steps)
	c.filters = c.defaults
	c.recompute()
	return c
}

// FilterPatch is a partial FilterState update; nil fields keep their
// current value.
type FilterPatch struct {
	YearMin  *int
	YearMax  *int
	ValueMin *float64
	ValueMax *float64
	Types    *Restriction
	Codes    *Restriction
	Search   *string
}

// SetData installs the canonical deal list and its summary statistics,
// derives the step grid and default filters from them, and resets all
// state to those defaults.
func (c *Controller) SetData(deals []Deal, stats Stats) {
	c.deals = deals
	c.stats = stats
	c.steps = Steps(stats.MaxMillions)
	c.defaults = defaultFilters(stats, c.steps)
	c.filters = c.defaults
	c.selection.Clear()
	c.recompute()
}

// ToggleNode flips an organization in the selection set.
func (c *Controller) ToggleNode(name string) {
	c.selection.Toggle(name)
	c.recompute()
}

// SetSearch replaces the free-text query.
func (c *Controller) SetSearch(query string) {
	c.filters.Search = query
	c.recompute()
}

// UpdateFilters merges a partial update into the filter state. Value
// bounds are snapped onto the step grid and bound pairs are reordered so
// min <= max never leaks out, even mid-drag.
func (c *Controller) UpdateFilters(p FilterPatch) {
	f := c.filters
	if p.YearMin != nil {
		f.YearMin = *p.YearMin
	}
	if p.YearMax != nil {
		f.YearMax = *p.YearMax
	}
	if p.ValueMin != nil {
		f.ValueMin = Snap(*p.ValueMin, c.steps)
	}
	if p.ValueMax != nil {
		f.ValueMax = Snap(*p.ValueMax, c.steps)
	}
	if p.Types != nil {
		f.Types = *p.Types
	}
	if p.Codes != nil {
		f.Codes = *p.Codes
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	if f.YearMin > f.YearMax {
		f.YearMin, f.YearMax = f.YearMax, f.YearMin
	}
	if f.ValueMin >= 0 && f.ValueMin > f.ValueMax {
		f.ValueMin, f.ValueMax = f.ValueMax, f.ValueMin
	}
	c.filters = f
	c.recompute()
}

// ToggleType flips one deal type in or out of the type restriction.
func (c *Controller) ToggleType(t string) {
	r := c.filters.Types.Toggle(t)
	c.UpdateFilters(FilterPatch{Types: &r})
}

// ToggleCode flips one tag in or out of the code restriction.
func (c *Controller) ToggleCode(code string) {
	r := c.filters.Codes.Toggle(code)
	c.UpdateFilters(FilterPatch{Codes: &r})
}

// ResetAll atomically restores the default filter state and empties the
// selection. Calling it repeatedly is idempotent.
func (c *Controller) ResetAll() {
	c.filters = c.defaults
	c.selection.Clear()
	c.recompute()
}

// Filtered returns the current derived view: a subsequence of the full
// deal list in its original order.
func (c *Controller) Filtered() []Deal { return c.filtered }

func (c *Controller) Deals() []Deal       { return c.deals }
func (c *Controller) Stats() Stats        { return c.stats }
func (c *Controller) Filters() FilterState { return c.filters }
func (c *Controller) ValueSteps() []float64 { return c.steps }

// Selected reports graph-selection membership for recoloring.
func (c *Controller) Selected(name string) bool { return c.selection.Contains(name) }

func (c *Controller) SelectionEmpty() bool  { return c.selection.Empty() }
func (c *Controller) SelectionNames() []string { return c.selection.Names() }

// Generation counts recomputations of the filtered view. Each mutating
// operation advances it by exactly one.
func (c *Controller) Generation() uint64 { return c.generation }

func (c *Controller) recompute() {
	c.filtered = Filter(c.deals, c.filters, c.selection)
	c.generation++
}

// defaultFilters derives the reset target from dataset statistics: the
// full observed year range, a value window from "include undisclosed" up
// to the top step, no category restrictions, no search.
func defaultFilters(stats Stats, steps []float64) FilterState {
	f := FilterState{
		YearMin:  stats.YearMin,
		YearMax:  stats.YearMax,
		ValueMin: UndisclosedSentinel,
		ValueMax: steps[len(steps)-1],
	}
	if stats.Total == 0 {
		// No data yet; keep an all-inclusive year window.
		f.YearMin = 0
		f.YearMax = 9999
	}
	return f
}
