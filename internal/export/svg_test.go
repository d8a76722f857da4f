package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/flakesim/internal/flake"
	"github.com/san-kum/flakesim/internal/viz"
)

func TestSVGFlake(t *testing.T) {
	s := NewSVG(800, 600)
	if err := flake.Generate(s, flake.Point{}, 3, 200, 10, 2, -90); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 12 {
		t.Fatalf("expected 12 strokes, got %d", s.Len())
	}

	out := s.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Error("expected xml prolog")
	}
	if got := strings.Count(out, "<line "); got != 12 {
		t.Errorf("expected 12 lines, got %d", got)
	}
	if !strings.Contains(out, `viewBox="-400.0 -300.0 800 600"`) {
		t.Error("expected viewBox centred on the origin")
	}
	if !strings.Contains(out, `x2="0.00" y2="-200.00"`) {
		t.Error("expected first branch pointing up")
	}
	if !strings.Contains(out, `stroke="hsl(270, 100%, 50%)"`) {
		t.Errorf("expected hue 270 stroke in %s", out)
	}
	if !strings.Contains(out, `stroke-width="5"`) {
		t.Error("expected halved width on the second level")
	}
}

func TestSVGClear(t *testing.T) {
	s := NewSVG(100, 100)
	s.Stroke(flake.Segment{To: flake.Point{X: 10}})
	s.Stroke(flake.Segment{From: flake.Point{X: 20, Y: 20}, To: flake.Point{X: 40, Y: 40}})

	s.Clear(flake.Rect{X: -5, Y: -5, W: 10, H: 10})
	if s.Len() != 1 {
		t.Fatalf("expected the far stroke to survive, got %d strokes", s.Len())
	}

	s.Stroke(flake.Segment{To: flake.Point{X: 5000}})
	s.Clear(flake.Rect{X: -60, Y: -60, W: 120, H: 120})
	if s.Len() != 0 {
		t.Errorf("expected empty surface, got %d strokes", s.Len())
	}
	if strings.Contains(s.Element(), "<line") {
		t.Error("cleared surface should render no lines")
	}
}

func TestSVGWriteTo(t *testing.T) {
	s := NewSVG(10, 10)
	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) || buf.String() != s.String() {
		t.Error("WriteTo should write the document")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should render nothing")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0, "#ff0000")
	c.Set(3, 3, "")

	out := CanvasToSVG(c, 2)
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(out, `cx="1.0" cy="1.0" r="0.8" fill="#ff0000"`) {
		t.Errorf("unexpected first dot in %s", out)
	}
	if !strings.Contains(out, `fill="#ffffff"`) {
		t.Error("dots without ink should render white")
	}
}
