// Package pitch defines the playing-surface geometry shared by the
// simulator, metrics and visualisation layers.
//
// Coordinates are metres with the origin at the pitch centre: x runs
// touchline to touchline, y runs goal to goal.
package pitch

// Point is a position or direction vector in pitch coordinates.
type Point struct {
	X float64
	Y float64
}

// Bounds is the axis-aligned rectangle the play happens inside.
// It is shared read-only across all agents in a run.
type Bounds struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// Default returns the standard pitch: 60 m across, 100 m long,
// centred on the origin.
func Default() Bounds {
	return Bounds{XMin: -30, XMax: 30, YMin: -50, YMax: 50}
}

// Contains reports whether p lies inside the bounds, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// ClampX returns x limited to [XMin, XMax].
func (b Bounds) ClampX(x float64) float64 {
	if x < b.XMin {
		return b.XMin
	}
	if x > b.XMax {
		return b.XMax
	}
	return x
}

// ClampY returns y limited to [YMin, YMax].
func (b Bounds) ClampY(y float64) float64 {
	if y < b.YMin {
		return b.YMin
	}
	if y > b.YMax {
		return b.YMax
	}
	return y
}

// Width returns the x extent in metres.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns the y extent in metres.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }
