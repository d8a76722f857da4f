package flake

// Recorder is a Surface that keeps every stroke since the last Clear.
type Recorder struct {
	Segments []Segment
	Clears   int
	Cleared  []Rect
}

func NewRecorder() *Recorder {
	return &Recorder{Segments: make([]Segment, 0, 64)}
}

func (r *Recorder) Clear(region Rect) {
	r.Segments = r.Segments[:0]
	r.Clears++
	r.Cleared = append(r.Cleared, region)
}

func (r *Recorder) Stroke(seg Segment) {
	r.Segments = append(r.Segments, seg)
}

// Bounds returns the smallest rectangle holding every recorded endpoint.
func (r *Recorder) Bounds() Rect {
	if len(r.Segments) == 0 {
		return Rect{}
	}
	minX, maxX := r.Segments[0].From.X, r.Segments[0].From.X
	minY, maxY := r.Segments[0].From.Y, r.Segments[0].From.Y
	for _, s := range r.Segments {
		for _, p := range [2]Point{s.From, s.To} {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
