package visual

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside-data/tracklab/internal/pitch"
)

func zigzag(n int) []pitch.Point {
	pts := make([]pitch.Point, n)
	for i := range pts {
		x := float64(i%20) - 10
		y := float64(i%60) - 30
		pts[i] = pitch.Point{X: x, Y: y}
	}
	return pts
}

func assertPNGWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "plot file should not be empty")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8], "expected PNG magic header")
}

func TestSaveHeatmap(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "heatmap.png")
	require.NoError(t, SaveHeatmap(zigzag(500), pitch.Default(), path))
	assertPNGWritten(t, path)
}

func TestSaveHeatmapEmptyTrajectory(t *testing.T) {
	t.Parallel()

	// No samples still renders a valid (empty) pitch.
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, SaveHeatmap(nil, pitch.Default(), path))
	assertPNGWritten(t, path)
}

func TestSaveVectorMap(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vectormap.png")
	require.NoError(t, SaveVectorMap(zigzag(200), pitch.Default(), path))
	assertPNGWritten(t, path)
}

func TestSaveVectorMapUniformSpeed(t *testing.T) {
	t.Parallel()

	// Constant speed has zero span; must not divide by zero.
	pts := []pitch.Point{{X: 0}, {X: 2}, {X: 4}, {X: 6}}
	path := filepath.Join(t.TempDir(), "uniform.png")
	require.NoError(t, SaveVectorMap(pts, pitch.Default(), path))
	assertPNGWritten(t, path)
}

func TestOccupancyGrid(t *testing.T) {
	t.Parallel()

	g := newOccupancyGrid(pitch.Default(), DefaultGridX, DefaultGridY)

	g.add(pitch.Point{X: 0, Y: 0})
	g.add(pitch.Point{X: 0, Y: 0})
	g.add(pitch.Point{X: 30, Y: 50})    // max edge folds into last cell
	g.add(pitch.Point{X: -30, Y: -50})  // min corner
	g.add(pitch.Point{X: 100, Y: 100})  // out of bounds dropped

	nx, ny := g.Dims()
	assert.Equal(t, DefaultGridX, nx)
	assert.Equal(t, DefaultGridY, ny)

	total := 0.0
	for c := 0; c < nx; c++ {
		for r := 0; r < ny; r++ {
			total += g.Z(c, r)
		}
	}
	assert.Equal(t, 4.0, total)

	assert.Equal(t, 2.0, g.Z(nx/2, ny/2))
	assert.Equal(t, 1.0, g.Z(nx-1, ny-1))
	assert.Equal(t, 1.0, g.Z(0, 0))

	// Cell centres stay inside the pitch.
	b := pitch.Default()
	assert.Greater(t, g.X(0), b.XMin)
	assert.Less(t, g.X(nx-1), b.XMax)
	assert.Greater(t, g.Y(0), b.YMin)
	assert.Less(t, g.Y(ny-1), b.YMax)
}
