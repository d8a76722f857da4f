package flake

import "math"

// Point is a position relative to the centre of the drawing surface.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis aligned region in surface coordinates.
type Rect struct {
	X, Y, W, H float64
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// DestPosition returns the point at distance length from center along angle (degrees).
func DestPosition(center Point, angle, length float64) Point {
	rad := DegToRad(angle)
	return Point{
		X: center.X + length*math.Cos(rad),
		Y: center.Y + length*math.Sin(rad),
	}
}
