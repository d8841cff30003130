package catalog

import "math"

// The value slider is constrained to a few broad tiers rather than a
// continuous range: most deals are either undisclosed or cluster into a
// handful of bands, so fine-grained bounds would only add dead slider
// travel.

// BufferedMax pads the observed disclosed maximum (in millions) by 20% and
// rounds up to a round figure, so the default window keeps headroom over
// the largest deal.
func BufferedMax(maxMillions float64) float64 {
	if maxMillions <= 0 {
		return 100
	}
	buffered := maxMillions * 1.2
	unit := 100.0
	if buffered <= 80 {
		unit = 20
	}
	return math.Ceil(buffered/unit) * unit
}

// Steps returns the slider tiers for a buffered dataset maximum: four even
// tiers up to top, in ascending order.
func Steps(top float64) []float64 {
	if top <= 0 {
		top = 100
	}
	return []float64{top / 4, top / 2, 3 * top / 4, top}
}

// Snap maps a raw value onto the step grid.
//
// Negative input is the undisclosed sentinel and never snaps to a positive
// step. Input strictly between zero and half the smallest step promotes to
// the smallest step, so there is no dead zone right above "undisclosed".
// Ties between two equally near steps resolve to the lower step (steps are
// scanned in ascending order and only a strictly smaller distance wins).
func Snap(v float64, steps []float64) float64 {
	if v < 0 {
		return UndisclosedSentinel
	}
	if len(steps) == 0 {
		return v
	}
	if v > 0 && v < steps[0]/2 {
		return steps[0]
	}
	best := steps[0]
	bestDist := math.Abs(v - steps[0])
	for _, s := range steps[1:] {
		if d := math.Abs(v - s); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}
