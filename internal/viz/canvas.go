package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/flakesim/internal/flake"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Ink holds the hex colour of the last stroke through each cell.
	Ink [][]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]string, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// SubWidth and SubHeight are the canvas size in braille dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
func (c *Canvas) Set(x, y int, ink string) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = ink
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	c.ClearCells(0, 0, c.Width, c.Height)
}

// ClearCells blanks the cells in [col0, col1) x [row0, row1).
func (c *Canvas) ClearCells(col0, row0, col1, row1 int) {
	col0, col1 = max(col0, 0), min(col1, c.Width)
	row0, row1 = max(row0, 0), min(row1, c.Height)
	for i := row0; i < row1; i++ {
		for j := col0; j < col1; j++ {
			c.Grid[i][j] = blank
			c.Ink[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink string) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Lit counts the lit dots.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - blank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with every run of same-coloured cells styled in its ink.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[i][j] == c.Ink[i][start] {
				continue
			}
			run := string(row[start:j])
			if ink := c.Ink[i][start]; ink != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(ink)).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Surface draws flake segments onto a Canvas with the origin at its centre.
// Scale is braille dots per flake unit.
type Surface struct {
	Canvas *Canvas
	Scale  float64
	// WidthScale converts stroke width to dots before it is capped at MaxThickness.
	WidthScale   float64
	MaxThickness int
}

func NewSurface(c *Canvas) *Surface {
	return &Surface{Canvas: c, Scale: 1, WidthScale: 1, MaxThickness: 2}
}

// Fit sets Scale so a flake reaching extent fills the canvas.
func (s *Surface) Fit(extent float64) {
	if extent <= 0 {
		s.Scale = 1
		return
	}
	half := float64(min(s.Canvas.SubWidth(), s.Canvas.SubHeight())) / 2
	s.Scale = 0.95 * half / extent
}

func (s *Surface) toDots(p flake.Point) (int, int) {
	cx := float64(s.Canvas.SubWidth()) / 2
	cy := float64(s.Canvas.SubHeight()) / 2
	return int(math.Round(cx + p.X*s.Scale)), int(math.Round(cy + p.Y*s.Scale))
}

func (s *Surface) Clear(region flake.Rect) {
	x0, y0 := s.toDots(flake.Point{X: region.X, Y: region.Y})
	x1, y1 := s.toDots(flake.Point{X: region.X + region.W, Y: region.Y + region.H})
	s.Canvas.ClearCells(x0/2, y0/4, (x1+1)/2+1, (y1+3)/4+1)
}

func (s *Surface) Stroke(seg flake.Segment) {
	x0, y0 := s.toDots(seg.From)
	x1, y1 := s.toDots(seg.To)
	ink := seg.Color.Hex()

	s.Canvas.DrawLine(x0, y0, x1, y1, ink)

	thick := min(int(seg.Width*s.WidthScale*s.Scale), s.MaxThickness)
	if thick < 2 {
		return
	}
	// offset copies along the dominant perpendicular axis
	horizontal := absInt(x1-x0) >= absInt(y1-y0)
	for k := 1; k < thick; k++ {
		if horizontal {
			s.Canvas.DrawLine(x0, y0+k, x1, y1+k, ink)
		} else {
			s.Canvas.DrawLine(x0+k, y0, x1+k, y1, ink)
		}
	}
}
