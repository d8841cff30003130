package catalog

// Deal represents one reported data-licensing agreement.
// Organization names are kept exactly as reported; no canonicalization.
type Deal struct {
	ID         int64
	Receiver   string // organization receiving the data
	Aggregator string // organization supplying the data
	Year       int
	Type       string
	ValueRaw   string
	ValueMin   *int64 // base currency units; nil together with ValueMax = undisclosed
	ValueMax   *int64
	ValueUnit  *string
	Codes      []string
	SourceURL  *string
}

const unitsPerMillion = 1_000_000

// Undisclosed reports whether the deal carries no numeric value at all.
// A deal with a single bound set (e.g. "20m+") is still disclosed.
func (d Deal) Undisclosed() bool {
	return d.ValueMin == nil && d.ValueMax == nil
}

// ValueMillions returns the deal's value interval in millions of base
// currency units. A missing lower bound defaults to 0, a missing upper
// bound collapses to the lower one.
func (d Deal) ValueMillions() (lo, hi float64) {
	if d.ValueMin != nil {
		lo = float64(*d.ValueMin) / unitsPerMillion
	}
	hi = lo
	if d.ValueMax != nil {
		hi = float64(*d.ValueMax) / unitsPerMillion
	}
	return lo, hi
}

// Stats summarizes the dataset as served by the deal store.
type Stats struct {
	Total        int
	DealsPerYear map[int]int
	DealsPerType map[string]int
	DealsPerCode map[string]int
	YearMin      int
	YearMax      int
	MinMillions  float64
	// MaxMillions carries the store's upward buffer so the default filter
	// window keeps headroom over the largest disclosed deal.
	MaxMillions float64
}
