package visual

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pitchside-data/tracklab/internal/pitch"
)

var pitchGreen = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}

// segmentColor maps a normalised speed in [0, 1] onto the red (slow)
// to white (fast) gradient.
func segmentColor(t float64) color.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: 0xff,
		G: uint8(255 * t),
		B: uint8(255 * t),
		A: 0xff,
	}
}

// SaveVectorMap renders the trajectory as consecutive line segments
// coloured by segment speed on a pitch-green background, written as a
// PNG to path.
func SaveVectorMap(points []pitch.Point, bounds pitch.Bounds, path string) error {
	p := plot.New()
	p.Title.Text = "Player Movement Vector Map"
	p.X.Label.Text = "X position (m)"
	p.Y.Label.Text = "Y position (m)"
	p.X.Min, p.X.Max = bounds.XMin, bounds.XMax
	p.Y.Min, p.Y.Max = bounds.YMin, bounds.YMax
	p.BackgroundColor = pitchGreen

	if len(points) >= 2 {
		speeds := make([]float64, len(points)-1)
		minSpeed, maxSpeed := math.Inf(1), math.Inf(-1)
		for i := 1; i < len(points); i++ {
			speeds[i-1] = math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
			minSpeed = math.Min(minSpeed, speeds[i-1])
			maxSpeed = math.Max(maxSpeed, speeds[i-1])
		}
		span := maxSpeed - minSpeed
		if span == 0 {
			span = 1 // uniform speed renders uniformly slow-coloured
		}

		for i := 1; i < len(points); i++ {
			seg := plotter.XYs{
				{X: points[i-1].X, Y: points[i-1].Y},
				{X: points[i].X, Y: points[i].Y},
			}
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("failed to build segment %d: %w", i, err)
			}
			line.Color = segmentColor((speeds[i-1] - minSpeed) / span)
			line.Width = vg.Points(1.5)
			p.Add(line)
		}
	}

	if err := p.Save(6*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save vector map: %w", err)
	}
	return nil
}
