package flake

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func TestGenerateSegmentCount(t *testing.T) {
	tests := []struct {
		branches, depth int
	}{
		{1, 1},
		{1, 7},
		{2, 4},
		{3, 1},
		{3, 5},
		{5, 3},
		{20, 2},
	}

	for _, tt := range tests {
		rec := NewRecorder()
		if err := Generate(rec, Point{}, tt.branches, 100, 10, tt.depth, 0); err != nil {
			t.Fatalf("branches=%d depth=%d: %v", tt.branches, tt.depth, err)
		}
		want := 0
		for n, i := 1, 0; i < tt.depth; i++ {
			n *= tt.branches
			want += n
		}
		if len(rec.Segments) != want {
			t.Errorf("branches=%d depth=%d: expected %d segments, got %d", tt.branches, tt.depth, want, len(rec.Segments))
		}
		if Count(tt.branches, tt.depth) != want {
			t.Errorf("Count(%d, %d) = %d, want %d", tt.branches, tt.depth, Count(tt.branches, tt.depth), want)
		}
	}
}

func TestGenerateZeroDepth(t *testing.T) {
	for _, depth := range []int{0, -1, -10} {
		rec := NewRecorder()
		if err := Generate(rec, Point{X: 4, Y: 2}, 7, 300, 10, depth, 45); err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if len(rec.Segments) != 0 {
			t.Errorf("depth %d: expected no segments, got %d", depth, len(rec.Segments))
		}
	}
}

func TestGenerateInvalidBranches(t *testing.T) {
	for _, branches := range []int{0, -3} {
		rec := NewRecorder()
		err := Generate(rec, Point{}, branches, 100, 10, 2, 0)
		if !errors.Is(err, ErrInvalidBranches) {
			t.Errorf("branches %d: expected ErrInvalidBranches, got %v", branches, err)
		}
		if len(rec.Segments) != 0 {
			t.Errorf("branches %d: expected no segments, got %d", branches, len(rec.Segments))
		}
	}
}

func TestGenerateThreeBranches(t *testing.T) {
	rec := NewRecorder()
	if err := Generate(rec, Point{}, 3, 100, 10, 1, 0); err != nil {
		t.Fatal(err)
	}
	if len(rec.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(rec.Segments))
	}

	for i, angle := range []float64{0, 120, 240} {
		seg := rec.Segments[i]
		if seg.From != (Point{}) {
			t.Errorf("segment %d: expected origin start, got %+v", i, seg.From)
		}
		length := math.Hypot(seg.To.X-seg.From.X, seg.To.Y-seg.From.Y)
		if math.Abs(length-100) > tol {
			t.Errorf("segment %d: expected length 100, got %f", i, length)
		}
		got := math.Atan2(seg.To.Y, seg.To.X) * 180 / math.Pi
		if got < 0 {
			got += 360
		}
		if math.Abs(got-angle) > 1e-6 {
			t.Errorf("segment %d: expected angle %.0f, got %f", i, angle, got)
		}
		if seg.Width != 10 {
			t.Errorf("segment %d: expected width 10, got %f", i, seg.Width)
		}
	}
}

func TestGenerateHalvesEachLevel(t *testing.T) {
	rec := NewRecorder()
	if err := Generate(rec, Point{}, 2, 40, 8, 3, 30); err != nil {
		t.Fatal(err)
	}

	// depth-first order: level 1 pair, then level 2 pair, then its level 3 children
	wantLen := []float64{40, 40, 20, 20, 10, 10}
	wantWidth := []float64{8, 8, 4, 4, 2, 2}
	for i := range wantLen {
		seg := rec.Segments[i]
		length := math.Hypot(seg.To.X-seg.From.X, seg.To.Y-seg.From.Y)
		if math.Abs(length-wantLen[i]) > tol {
			t.Errorf("segment %d: expected length %.0f, got %f", i, wantLen[i], length)
		}
		if seg.Width != wantWidth[i] {
			t.Errorf("segment %d: expected width %.0f, got %f", i, wantWidth[i], seg.Width)
		}
	}
}

func TestGenerateReusesBaseAngle(t *testing.T) {
	rec := NewRecorder()
	if err := Generate(rec, Point{}, 4, 64, 4, 2, 10); err != nil {
		t.Fatal(err)
	}

	// the first child of every branch starts at baseAngle, not at the parent's angle
	for i := 4; i < len(rec.Segments); i += 4 {
		seg := rec.Segments[i]
		got := math.Atan2(seg.To.Y-seg.From.Y, seg.To.X-seg.From.X) * 180 / math.Pi
		if math.Abs(got-10) > 1e-6 {
			t.Errorf("segment %d: expected angle 10, got %f", i, got)
		}
	}
}

func TestGenerateColorFollowsBaseAngle(t *testing.T) {
	rec := NewRecorder()
	if err := Generate(rec, Point{}, 3, 50, 1, 2, -90); err != nil {
		t.Fatal(err)
	}
	for i, seg := range rec.Segments {
		if seg.Color != (HSL{H: 270, S: 100, L: 50}) {
			t.Errorf("segment %d: unexpected color %+v", i, seg.Color)
		}
	}
}

func TestDestPosition(t *testing.T) {
	tests := []struct {
		center       Point
		angle, size  float64
		wantX, wantY float64
	}{
		{Point{}, 0, 100, 100, 0},
		{Point{}, 90, 50, 0, 50},
		{Point{}, -90, 200, 0, -200},
		{Point{X: 1, Y: 2}, 180, 3, -2, 2},
		{Point{X: -5, Y: 5}, 45, math.Sqrt2, -4, 6},
	}

	for _, tt := range tests {
		got := DestPosition(tt.center, tt.angle, tt.size)
		if math.Abs(got.X-tt.wantX) > tol || math.Abs(got.Y-tt.wantY) > tol {
			t.Errorf("DestPosition(%+v, %f, %f) = %+v, want (%f, %f)", tt.center, tt.angle, tt.size, got, tt.wantX, tt.wantY)
		}
	}
}

func TestLevelCounts(t *testing.T) {
	got := LevelCounts(3, 4)
	want := []int{3, 9, 27, 81}
	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d: expected %d, got %d", i, want[i], got[i])
		}
	}
	if LevelCounts(0, 3) != nil || LevelCounts(3, 0) != nil {
		t.Error("expected nil for empty flake")
	}
}

func TestExtent(t *testing.T) {
	if got := Extent(200, 3); got != 350 {
		t.Errorf("expected extent 350, got %f", got)
	}
	if got := Extent(200, 0); got != 0 {
		t.Errorf("expected extent 0, got %f", got)
	}

	rec := NewRecorder()
	_ = Generate(rec, Point{}, 1, 200, 1, 3, 0)
	b := rec.Bounds()
	if math.Abs(b.W-350) > tol {
		t.Errorf("expected bounds width 350, got %f", b.W)
	}
}
