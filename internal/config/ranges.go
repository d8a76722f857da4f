package config

import "math"

// Range is a closed interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Ranges bound the parameters that drive the cost of a frame.
// Work per frame grows as branches^depth, so these are a resource limit.
type Ranges struct {
	Branches Range `yaml:"branches"`
	Size     Range `yaml:"size"`
	Depth    Range `yaml:"depth"`
	Speed    Range `yaml:"speed"`
}

// Hard caps on the ranges a config file may declare.
const (
	MaxBranches = 20
	MaxDepth    = 10
)

func DefaultRanges() Ranges {
	return Ranges{
		Branches: Range{Min: 1, Max: 20},
		Size:     Range{Min: 50, Max: 1000},
		Depth:    Range{Min: 1, Max: 10},
		Speed:    Range{Min: 0, Max: 30},
	}
}

// Clamp constrains v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt constrains v to [lo, hi] with lo and hi truncated to integers.
// Bounds beyond the int32 range saturate. A NaN bound is treated as zero.
func ClampInt(v int, lo, hi float64) int {
	l, h := toInt(lo), toInt(hi)
	if v < l {
		return l
	}
	if v > h {
		return h
	}
	return v
}

func toInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

func (r Range) finite() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && !math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0)
}

func (r Range) Clamp(v float64) float64 { return Clamp(v, r.Min, r.Max) }
func (r Range) ClampInt(v int) int      { return ClampInt(v, r.Min, r.Max) }

// Apply clamps branches, size, depth and speed. Base angle and direction pass through.
func (r Ranges) Apply(p Params) Params {
	p.Branches = r.Branches.ClampInt(p.Branches)
	p.Size = r.Size.Clamp(p.Size)
	p.Depth = r.Depth.ClampInt(p.Depth)
	p.Speed = r.Speed.Clamp(p.Speed)
	if math.IsNaN(p.BaseAngle) || math.IsInf(p.BaseAngle, 0) {
		p.BaseAngle = 0
	}
	return p
}

// Valid reports whether the ranges are finite, within MaxBranches and
// MaxDepth, and can produce at least one segment.
func (r Ranges) Valid() bool {
	if !r.Branches.finite() || !r.Size.finite() || !r.Depth.finite() || !r.Speed.finite() {
		return false
	}
	return r.Branches.Min >= 1 && r.Branches.Max >= r.Branches.Min && r.Branches.Max <= MaxBranches &&
		r.Depth.Min >= 1 && r.Depth.Max >= r.Depth.Min && r.Depth.Max <= MaxDepth &&
		r.Size.Max >= r.Size.Min && r.Speed.Max >= r.Speed.Min
}
