package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/flakesim/internal/flake"
	"github.com/san-kum/flakesim/internal/viz"
)

const DefaultBackground = "#0a0a0a"

// SVG is a flake.Surface that keeps strokes as SVG lines. The origin sits at
// the centre of the viewBox.
type SVG struct {
	Width, Height float64
	Background    string
	segments      []flake.Segment
}

func NewSVG(width, height float64) *SVG {
	return &SVG{Width: width, Height: height, Background: DefaultBackground}
}

// Clear drops every stroke touching region. A region covering the whole
// viewBox empties the surface, since nothing outside it is visible.
func (s *SVG) Clear(region flake.Rect) {
	if covers(region, s.viewBox()) {
		s.segments = s.segments[:0]
		return
	}
	kept := s.segments[:0]
	for _, seg := range s.segments {
		if !touches(region, seg) {
			kept = append(kept, seg)
		}
	}
	s.segments = kept
}

func (s *SVG) Stroke(seg flake.Segment) {
	s.segments = append(s.segments, seg)
}

// Len is the number of strokes currently on the surface.
func (s *SVG) Len() int { return len(s.segments) }

func (s *SVG) viewBox() flake.Rect {
	return flake.Rect{X: -s.Width / 2, Y: -s.Height / 2, W: s.Width, H: s.Height}
}

func covers(outer, inner flake.Rect) bool {
	return outer.X <= inner.X && outer.Y <= inner.Y &&
		outer.X+outer.W >= inner.X+inner.W && outer.Y+outer.H >= inner.Y+inner.H
}

// touches compares the bounding box of seg against r.
func touches(r flake.Rect, seg flake.Segment) bool {
	minX, maxX := min(seg.From.X, seg.To.X), max(seg.From.X, seg.To.X)
	minY, maxY := min(seg.From.Y, seg.To.Y), max(seg.From.Y, seg.To.Y)
	return maxX >= r.X && minX <= r.X+r.W && maxY >= r.Y && minY <= r.Y+r.H
}

// Element renders the surface as an inline <svg> element.
func (s *SVG) Element() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.1f %.1f %.0f %.0f">
<rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" fill="%s"/>
<g fill="none" stroke-linecap="round">
`, s.Width, s.Height, -s.Width/2, -s.Height/2, s.Width, s.Height,
		-s.Width/2, -s.Height/2, s.Width, s.Height, s.Background))

	for _, seg := range s.segments {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.3g"/>
`, seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, seg.Color.CSS(), seg.Width))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// String renders a standalone SVG document.
func (s *SVG) String() string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + s.Element()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// CanvasToSVG converts a Braille canvas to SVG format, one circle per lit dot
// filled with the ink of its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, DefaultBackground))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			ink := canvas.Ink[y/4][x/2]
			if ink == "" {
				ink = "#ffffff"
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, ink))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
