package graph

import "math"

// Position is a node coordinate produced by Layout. Positions are computed
// once per dataset and treated as immutable afterwards; selection changes
// recolor nodes but never move them.
type Position struct {
	X float64
	Y float64
}

// LayoutConfig bounds the layout area and the simulation length.
type LayoutConfig struct {
	Width      float64
	Height     float64
	Iterations int
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{Width: 100, Height: 100, Iterations: 120}
}

// Radius is the collision/render radius for a node of the given deal
// count, monotonic in count.
func Radius(count int) float64 {
	if count < 1 {
		count = 1
	}
	return 2 + math.Sqrt(float64(count))
}

// Layout runs a one-shot force-directed simulation: spring attraction
// along edges, inverse-distance repulsion between all node pairs, and a
// hard push where collision radii overlap. Nodes are seeded on a circle in
// input order and there is no randomness, so the result is deterministic
// for a given graph. The returned positions are final; callers must not
// rerun the simulation on selection changes.
func Layout(g Graph, cfg LayoutConfig) []Position {
	n := len(g.Nodes)
	if n == 0 {
		return nil
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg = DefaultLayoutConfig()
	}

	pos := seed(g, cfg)
	if n == 1 {
		return pos
	}

	temp := math.Max(cfg.Width, cfg.Height) / 8
	cool := temp / float64(cfg.Iterations+1)
	for i := 0; i < cfg.Iterations; i++ {
		pos = step(g, pos, cfg, temp)
		temp -= cool
	}
	return pos
}

// seed places nodes evenly on a centered ellipse, in input order.
func seed(g Graph, cfg LayoutConfig) []Position {
	n := len(g.Nodes)
	cx, cy := cfg.Width/2, cfg.Height/2
	rx, ry := cfg.Width*0.35, cfg.Height*0.35
	out := make([]Position, n)
	for i := range out {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Position{X: cx + rx*math.Cos(angle), Y: cy + ry*math.Sin(angle)}
	}
	return out
}

// step advances the simulation by one tick over an immutable snapshot and
// returns the next positions.
func step(g Graph, pos []Position, cfg LayoutConfig, temp float64) []Position {
	n := len(pos)
	k := math.Sqrt(cfg.Width * cfg.Height / float64(n))
	dispX := make([]float64, n)
	dispY := make([]float64, n)

	// Repulsion between every pair, with a strong extra push while the
	// collision radii overlap.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := pos[i].X - pos[j].X
			dy := pos[i].Y - pos[j].Y
			dist := math.Hypot(dx, dy)
			if dist < 0.01 {
				// Coincident nodes: separate along a fixed axis.
				dx, dy, dist = 0.01, 0, 0.01
			}
			force := k * k / dist
			if overlap := Radius(g.Nodes[i].Count) + Radius(g.Nodes[j].Count) - dist; overlap > 0 {
				force += overlap * k
			}
			ux, uy := dx/dist, dy/dist
			dispX[i] += ux * force
			dispY[i] += uy * force
			dispX[j] -= ux * force
			dispY[j] -= uy * force
		}
	}

	// Attraction along edges, weighted a little by edge count.
	for _, e := range g.Edges {
		if e.From == e.To {
			continue
		}
		dx := pos[e.From].X - pos[e.To].X
		dy := pos[e.From].Y - pos[e.To].Y
		dist := math.Hypot(dx, dy)
		if dist < 0.01 {
			continue
		}
		force := dist * dist / k * (1 + math.Log1p(float64(e.Count-1))/4)
		ux, uy := dx/dist, dy/dist
		dispX[e.From] -= ux * force
		dispY[e.From] -= uy * force
		dispX[e.To] += ux * force
		dispY[e.To] += uy * force
	}

	out := make([]Position, n)
	for i := range pos {
		dx, dy := dispX[i], dispY[i]
		dist := math.Hypot(dx, dy)
		if dist > temp && dist > 0 {
			dx = dx / dist * temp
			dy = dy / dist * temp
		}
		r := Radius(g.Nodes[i].Count)
		out[i] = Position{
			X: clamp(pos[i].X+dx, r, cfg.Width-r),
			Y: clamp(pos[i].Y+dy, r, cfg.Height-r),
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
