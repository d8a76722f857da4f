package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/flakesim/internal/flake"
)

// Surface strokes flake segments onto whatever raylib target is active,
// with the flake origin at Origin. Scale is pixels per flake unit.
type Surface struct {
	Origin rl.Vector2
	Scale  float32
	Bounds rl.Rectangle
}

func NewSurface(bounds rl.Rectangle) *Surface {
	return &Surface{
		Origin: rl.NewVector2(bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2),
		Scale:  1,
		Bounds: bounds,
	}
}

// Fit sets Scale so a flake reaching extent fills the surface bounds.
func (s *Surface) Fit(extent float64) {
	if extent <= 0 {
		s.Scale = 1
		return
	}
	half := min(s.Bounds.Width, s.Bounds.Height) / 2
	s.Scale = 0.95 * half / float32(extent)
}

func (s *Surface) toScreen(p flake.Point) rl.Vector2 {
	return rl.NewVector2(s.Origin.X+float32(p.X)*s.Scale, s.Origin.Y+float32(p.Y)*s.Scale)
}

// clipRect maps region to screen space and crops it to the surface bounds.
func (s *Surface) clipRect(region flake.Rect) rl.Rectangle {
	a := s.toScreen(flake.Point{X: region.X, Y: region.Y})
	b := s.toScreen(flake.Point{X: region.X + region.W, Y: region.Y + region.H})
	x0, y0 := max(a.X, s.Bounds.X), max(a.Y, s.Bounds.Y)
	x1, y1 := min(b.X, s.Bounds.X+s.Bounds.Width), min(b.Y, s.Bounds.Y+s.Bounds.Height)
	if x1 < x0 || y1 < y0 {
		return rl.NewRectangle(x0, y0, 0, 0)
	}
	return rl.NewRectangle(x0, y0, x1-x0, y1-y0)
}

// lineThick is the stroke width in pixels, never below one pixel.
func (s *Surface) lineThick(width float64) float32 {
	return max(float32(width)*s.Scale, 1)
}

func strokeColor(c flake.HSL) rl.Color {
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, 255)
}

func (s *Surface) Clear(region flake.Rect) {
	rl.DrawRectangleRec(s.clipRect(region), ColBg)
}

func (s *Surface) Stroke(seg flake.Segment) {
	rl.DrawLineEx(s.toScreen(seg.From), s.toScreen(seg.To), s.lineThick(seg.Width), strokeColor(seg.Color))
}
