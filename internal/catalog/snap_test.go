package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapTieBreak(t *testing.T) {
	steps := []float64{75, 150, 225, 300}

	// Exact midpoint of 75 and 150: the lower step wins.
	require.Equal(t, 75.0, Snap(112.5, steps))
	// Midpoint of 150 and 225 likewise.
	require.Equal(t, 150.0, Snap(187.5, steps))
}

func TestSnapSentinel(t *testing.T) {
	steps := []float64{75, 150, 225, 300}
	require.Equal(t, UndisclosedSentinel, Snap(-5, steps))
	require.Equal(t, UndisclosedSentinel, Snap(-0.001, steps))
}

func TestSnapDeadZone(t *testing.T) {
	steps := []float64{75, 150, 225, 300}
	// Strictly between 0 and 37.5 promotes to the smallest step.
	require.Equal(t, 75.0, Snap(10, steps))
	require.Equal(t, 75.0, Snap(37.4, steps))
	// At or above half the smallest step, normal nearest-step wins.
	require.Equal(t, 75.0, Snap(37.5, steps))
	require.Equal(t, 75.0, Snap(100, steps))
	require.Equal(t, 150.0, Snap(130, steps))
	require.Equal(t, 300.0, Snap(1000, steps))
}

func TestSteps(t *testing.T) {
	require.Equal(t, []float64{75, 150, 225, 300}, Steps(300))
	require.Equal(t, []float64{25, 50, 75, 100}, Steps(100))
}

func TestBufferedMax(t *testing.T) {
	// A ~250m max buffers to a 300m grid.
	require.Equal(t, 300.0, BufferedMax(250))
	// A 60m max buffers within a finer grid and still covers 60.
	require.Equal(t, 80.0, BufferedMax(60))
	// Empty or undisclosed-only datasets get a usable default window.
	require.Equal(t, 100.0, BufferedMax(0))
}
