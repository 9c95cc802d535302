// Package visual renders trajectory plots as PNG files: an occupancy
// heatmap and a speed-coloured vector map, both drawn over the fixed
// pitch extent.
package visual

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pitchside-data/tracklab/internal/pitch"
)

// Default heatmap grid resolution (cells across x and y).
const (
	DefaultGridX = 30
	DefaultGridY = 50
)

// occupancyGrid buckets samples into a fixed grid over the pitch and
// implements plotter.GridXYZ for heatmap rendering.
type occupancyGrid struct {
	bounds pitch.Bounds
	nx, ny int
	counts []float64
}

func newOccupancyGrid(bounds pitch.Bounds, nx, ny int) *occupancyGrid {
	return &occupancyGrid{
		bounds: bounds,
		nx:     nx,
		ny:     ny,
		counts: make([]float64, nx*ny),
	}
}

// add buckets one position. Out-of-bounds samples are dropped;
// samples on the max edge fold into the last cell.
func (g *occupancyGrid) add(p pitch.Point) {
	if !g.bounds.Contains(p) {
		return
	}
	cx := int((p.X - g.bounds.XMin) / g.bounds.Width() * float64(g.nx))
	cy := int((p.Y - g.bounds.YMin) / g.bounds.Height() * float64(g.ny))
	if cx == g.nx {
		cx--
	}
	if cy == g.ny {
		cy--
	}
	g.counts[cy*g.nx+cx]++
}

func (g *occupancyGrid) Dims() (int, int) { return g.nx, g.ny }

func (g *occupancyGrid) Z(c, r int) float64 { return g.counts[r*g.nx+c] }

func (g *occupancyGrid) X(c int) float64 {
	return g.bounds.XMin + (float64(c)+0.5)*g.bounds.Width()/float64(g.nx)
}

func (g *occupancyGrid) Y(r int) float64 {
	return g.bounds.YMin + (float64(r)+0.5)*g.bounds.Height()/float64(g.ny)
}

// SaveHeatmap renders an occupancy heatmap of the trajectory to a PNG
// at path.
func SaveHeatmap(points []pitch.Point, bounds pitch.Bounds, path string) error {
	grid := newOccupancyGrid(bounds, DefaultGridX, DefaultGridY)
	for _, pt := range points {
		grid.add(pt)
	}

	p := plot.New()
	p.Title.Text = "Player Position Heatmap"
	p.X.Label.Text = "X position (m)"
	p.Y.Label.Text = "Y position (m)"
	p.X.Min, p.X.Max = bounds.XMin, bounds.XMax
	p.Y.Min, p.Y.Max = bounds.YMin, bounds.YMax

	hm := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	p.Add(hm)

	// Pitch is 60x100 m; keep the canvas at the same ratio.
	if err := p.Save(6*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save heatmap: %w", err)
	}
	return nil
}
