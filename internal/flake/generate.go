package flake

import "errors"

// ErrInvalidBranches is returned by Generate when asked for fewer than one branch.
var ErrInvalidBranches = errors.New("flake: branches must be at least 1")

// Segment is a single stroke. It is handed to a Surface and not retained.
type Segment struct {
	From, To Point
	Width    float64
	Color    HSL
}

// Surface receives the output of Generate.
type Surface interface {
	Clear(region Rect)
	Stroke(seg Segment)
}

// Generate draws branches segments of length size around center, starting at
// baseAngle and evenly spaced, then recurses from every endpoint with half the
// size and width and one level less depth. A depth of zero or less draws nothing.
func Generate(s Surface, center Point, branches int, size, width float64, depth int, baseAngle float64) error {
	if depth <= 0 {
		return nil
	}
	if branches < 1 {
		return ErrInvalidBranches
	}

	step := 360 / float64(branches)
	color := HueColor(baseAngle)
	nexts := make([]Point, 0, branches)

	for i := 0; i < branches; i++ {
		dest := DestPosition(center, baseAngle+float64(i)*step, size)
		s.Stroke(Segment{From: center, To: dest, Width: width, Color: color})
		nexts = append(nexts, dest)
	}

	for _, p := range nexts {
		if err := Generate(s, p, branches, size/2, width/2, depth-1, baseAngle); err != nil {
			return err
		}
	}
	return nil
}

// Count returns branches + branches^2 + ... + branches^depth.
func Count(branches, depth int) int {
	total := 0
	for _, n := range LevelCounts(branches, depth) {
		total += n
	}
	return total
}

// LevelCounts returns the number of segments drawn at each recursion level.
func LevelCounts(branches, depth int) []int {
	if depth <= 0 || branches < 1 {
		return nil
	}
	counts := make([]int, depth)
	n := 1
	for i := range counts {
		n *= branches
		counts[i] = n
	}
	return counts
}

// Extent is the furthest distance from the centre a flake of this size can reach.
func Extent(size float64, depth int) float64 {
	ext := 0.0
	for i := 0; i < depth; i++ {
		ext += size
		size /= 2
	}
	return ext
}
