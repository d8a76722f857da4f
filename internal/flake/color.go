package flake

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// Saturation and Lightness of every stroke, in percent.
	Saturation = 100.0
	Lightness  = 50.0
)

// HSL is a colour with hue in degrees and saturation/lightness in percent.
type HSL struct {
	H, S, L float64
}

// HueColor derives the stroke colour from the base angle.
func HueColor(baseAngle float64) HSL {
	return HSL{H: NormalizeHue(baseAngle), S: Saturation, L: Lightness}
}

// NormalizeHue maps any angle into [0, 360).
func NormalizeHue(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func (c HSL) colorful() colorful.Color {
	return colorful.Hsl(NormalizeHue(c.H), c.S/100, c.L/100).Clamped()
}

// Hex returns the colour as #rrggbb.
func (c HSL) Hex() string {
	return c.colorful().Hex()
}

// RGB255 returns the 8-bit channels of the colour.
func (c HSL) RGB255() (r, g, b uint8) {
	return c.colorful().RGB255()
}

// CSS returns the colour in CSS hsl() notation.
func (c HSL) CSS() string {
	return fmt.Sprintf("hsl(%.4g, %.4g%%, %.4g%%)", NormalizeHue(c.H), c.S, c.L)
}
