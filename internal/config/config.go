package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDepth     = 5
	DefaultBranches  = 3
	DefaultSize      = 200.0
	DefaultBaseAngle = -90.0
	DefaultSpeed     = 1.0
	DefaultDirection = false

	DefaultInterval       = 40 * time.Millisecond
	DefaultRotationFactor = 0.3
	DefaultLineWidth      = 10.0
	DefaultMargin         = 20.0
	DefaultTheme          = "cyberpunk"
)

// Params is the user adjustable fractal configuration.
type Params struct {
	Depth     int     `yaml:"layers"`
	Branches  int     `yaml:"branches"`
	Size      float64 `yaml:"size"`
	BaseAngle float64 `yaml:"base_angle"`
	Speed     float64 `yaml:"speed"`
	Direction bool    `yaml:"direction"`
}

// File is the on-disk configuration.
type File struct {
	Params         Params        `yaml:"params"`
	Interval       time.Duration `yaml:"interval"`
	RotationFactor float64       `yaml:"rotation_factor"`
	LineWidth      float64       `yaml:"line_width"`
	Margin         float64       `yaml:"margin"`
	Theme          string        `yaml:"theme"`
	Ranges         Ranges        `yaml:"ranges"`
}

func DefaultParams() Params {
	return Params{
		Depth:     DefaultDepth,
		Branches:  DefaultBranches,
		Size:      DefaultSize,
		BaseAngle: DefaultBaseAngle,
		Speed:     DefaultSpeed,
		Direction: DefaultDirection,
	}
}

func DefaultFile() *File {
	return &File{
		Params:         DefaultParams(),
		Interval:       DefaultInterval,
		RotationFactor: DefaultRotationFactor,
		LineWidth:      DefaultLineWidth,
		Margin:         DefaultMargin,
		Theme:          DefaultTheme,
		Ranges:         DefaultRanges(),
	}
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultFile()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if !cfg.Ranges.Valid() {
		return nil, fmt.Errorf("%s: ranges out of bounds (branches 1..%d, depth 1..%d)", path, MaxBranches, MaxDepth)
	}
	return cfg, nil
}

func Save(path string, cfg *File) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
