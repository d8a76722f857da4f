package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/export"
	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	layers, branches, size, baseAngle, speed, direction = 0, 0, 0, 0, 0, false
	query, configFile, preset = "", "", ""

	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.IntVar(&layers, config.KeyLayers, config.DefaultDepth, "")
	f.IntVar(&branches, config.KeyBranches, config.DefaultBranches, "")
	f.Float64Var(&size, config.KeySize, config.DefaultSize, "")
	f.Float64Var(&baseAngle, config.KeyBaseAngle, config.DefaultBaseAngle, "")
	f.Float64Var(&speed, config.KeySpeed, config.DefaultSpeed, "")
	f.BoolVar(&direction, config.KeyDirection, config.DefaultDirection, "")
	return cmd
}

func TestResolveParamsDefaults(t *testing.T) {
	cmd := newParamsCmd()
	p, file, err := resolveParams(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if p != config.DefaultParams() {
		t.Errorf("expected defaults, got %+v", p)
	}
	if file.Interval != config.DefaultInterval {
		t.Errorf("expected default interval, got %v", file.Interval)
	}
}

func TestResolveParamsLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flakesim.yaml")
	cfg := config.DefaultFile()
	cfg.Params.Branches = 8
	cfg.Params.Size = 90
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	cmd := newParamsCmd()
	configFile = path
	p, _, err := resolveParams(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if p.Branches != 8 || p.Size != 90 {
		t.Errorf("expected config values, got %+v", p)
	}

	preset = "tree"
	p, _, _ = resolveParams(cmd)
	if want, _ := config.GetPreset("tree"); p != want {
		t.Errorf("expected preset to override config, got %+v", p)
	}

	query = "?layers=3&branches=4&direction=true"
	p, _, _ = resolveParams(cmd)
	if p.Depth != 3 || p.Branches != 4 || !p.Direction || p.Size != config.DefaultSize {
		t.Errorf("expected query to override preset, got %+v", p)
	}

	if err := cmd.Flags().Set(config.KeyBranches, "11"); err != nil {
		t.Fatal(err)
	}
	p, _, _ = resolveParams(cmd)
	if p.Branches != 11 || p.Depth != 3 {
		t.Errorf("expected flag to override query, got %+v", p)
	}
}

func TestResolveParamsErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
	}{
		{"missing config", func() { configFile = filepath.Join(os.TempDir(), "does-not-exist.yaml") }},
		{"unknown preset", func() { preset = "nope" }},
		{"bad query", func() { query = "size=%zz" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newParamsCmd()
			tt.setup()
			if _, _, err := resolveParams(cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderFrame(t *testing.T) {
	file := config.DefaultFile()
	svg := export.NewSVG(400, 400)
	p := config.Params{Depth: 2, Branches: 3, Size: 100, BaseAngle: 0, Speed: 1}
	if err := renderFrame(svg, p, fittedOptions(file)); err != nil {
		t.Fatal(err)
	}
	if svg.Len() != 12 {
		t.Errorf("expected 12 strokes, got %d", svg.Len())
	}
}

func TestFittedOptions(t *testing.T) {
	opts := fittedOptions(config.DefaultFile())
	// 1000 + 500 + ... over ten levels
	if opts.SurfaceWidth < 3990 || opts.SurfaceWidth != opts.SurfaceHeight {
		t.Errorf("unexpected surface %vx%v", opts.SurfaceWidth, opts.SurfaceHeight)
	}

	wide := config.DefaultFile()
	wide.Ranges.Depth.Max = 1e30
	if got := fittedOptions(wide); got.SurfaceWidth != opts.SurfaceWidth {
		t.Errorf("expected depth to cap at %d levels, got surface %v", config.MaxDepth, got.SurfaceWidth)
	}
}

func TestWriteQR(t *testing.T) {
	showQR = false
	qrFile = filepath.Join(t.TempDir(), "link.png")
	defer func() { qrFile = "" }()

	if err := writeQR("http://localhost:8080/?layers=2"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(qrFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 8 || string(data[:4]) != "\x89PNG" {
		t.Error("expected a PNG file")
	}
}
