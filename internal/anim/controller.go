package anim

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/flake"
)

// Options are the fixed settings of a controller.
type Options struct {
	Interval       time.Duration
	RotationFactor float64
	LineWidth      float64
	Margin         float64
	SurfaceWidth   float64
	SurfaceHeight  float64
	Ranges         config.Ranges
}

func DefaultOptions(width, height float64) Options {
	return Options{
		Interval:       config.DefaultInterval,
		RotationFactor: config.DefaultRotationFactor,
		LineWidth:      config.DefaultLineWidth,
		Margin:         config.DefaultMargin,
		SurfaceWidth:   width,
		SurfaceHeight:  height,
		Ranges:         config.DefaultRanges(),
	}
}

// OptionsFromFile takes interval, rotation, line width, margin and ranges from a config file.
func OptionsFromFile(f *config.File, width, height float64) Options {
	opts := DefaultOptions(width, height)
	if f == nil {
		return opts
	}
	opts.Interval = f.Interval
	opts.RotationFactor = f.RotationFactor
	opts.LineWidth = f.LineWidth
	opts.Margin = f.Margin
	opts.Ranges = f.Ranges
	return opts
}

// RenderState is the mutable state of the animation.
type RenderState struct {
	LastFrame time.Duration
	Started   bool
	Params    config.Params
	Frames    int
}

// Location receives the serialised parameters on submit. Replace must not
// create a new history entry.
type Location interface {
	Replace(query string) error
}

// LocationFunc adapts a function to Location.
type LocationFunc func(query string) error

func (f LocationFunc) Replace(query string) error { return f(query) }

type Controller struct {
	surface  flake.Surface
	location Location
	opts     Options
	logger   *log.Logger
	onFrame  func(RenderState) error

	state  RenderState
	halted bool
	err    error
}

// New builds a controller seeded with params. A nil logger logs to the standard logger.
func New(surface flake.Surface, location Location, params config.Params, opts Options, logger *log.Logger) (*Controller, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if location == nil {
		return nil, ErrNoLocation
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("%w: negative interval %v", ErrBadOptions, opts.Interval)
	}
	if !opts.Ranges.Valid() {
		return nil, fmt.Errorf("%w: ranges %+v", ErrBadOptions, opts.Ranges)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		surface:  surface,
		location: location,
		opts:     opts,
		logger:   logger,
		state:    RenderState{Params: params},
	}, nil
}

// OnFrame registers fn to run after every rendered frame. An error from fn halts the controller.
func (c *Controller) OnFrame(fn func(RenderState) error) { c.onFrame = fn }

func (c *Controller) State() RenderState    { return c.state }
func (c *Controller) Params() config.Params { return c.state.Params }
func (c *Controller) Options() Options      { return c.opts }
func (c *Controller) Halted() bool          { return c.halted }

// Err returns the error that halted the controller, if any.
func (c *Controller) Err() error { return c.err }

// Frame handles one host callback at time ts and reports whether the next
// frame should be requested. The first call only records the baseline.
func (c *Controller) Frame(ts time.Duration) (next bool) {
	if c.halted {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			c.halt(ts, fmt.Errorf("%w: %v", ErrPanic, r))
			next = false
		}
	}()

	if !c.state.Started {
		c.state.Started = true
		c.state.LastFrame = ts
		return true
	}
	if ts-c.state.LastFrame < c.opts.Interval {
		return true
	}
	c.state.LastFrame = ts

	if err := c.render(); err != nil {
		c.halt(ts, err)
		return false
	}
	return true
}

func (c *Controller) render() error {
	c.surface.Clear(c.ClearRegion())

	c.state.Params = c.opts.Ranges.Apply(c.state.Params)
	p := c.state.Params
	if err := flake.Generate(c.surface, flake.Point{}, p.Branches, p.Size, c.opts.LineWidth, p.Depth, p.BaseAngle); err != nil {
		return err
	}

	c.state.Params.BaseAngle += Step(p.Speed, c.opts.RotationFactor, p.Direction)
	c.state.Frames++

	if c.onFrame != nil {
		return c.onFrame(c.state)
	}
	return nil
}

func (c *Controller) halt(ts time.Duration, err error) {
	c.halted = true
	c.err = &FrameError{Frame: c.state.Frames, Time: ts, Wrapped: err}
	c.logger.Printf("frame %d at %v failed, animation stopped: %v", c.state.Frames, ts, err)
}

// ClearRegion is a square centred on the origin covering the whole surface plus the margin.
func (c *Controller) ClearRegion() flake.Rect {
	side := math.Max(c.opts.SurfaceWidth, c.opts.SurfaceHeight) + c.opts.Margin
	return flake.Rect{X: -side / 2, Y: -side / 2, W: side, H: side}
}

// Submit replaces the parameters with the form values and writes them to the location.
func (c *Controller) Submit(form config.Form) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
			c.logger.Printf("submit failed: %v", err)
		}
	}()

	p := config.FromForm(form)
	c.state.Params = p
	if err := c.location.Replace(p.Encode()); err != nil {
		err = fmt.Errorf("replace location: %w", err)
		c.logger.Printf("submit failed: %v", err)
		return err
	}
	return nil
}

// Step is the base angle change of one rendered frame.
func Step(speed, factor float64, direction bool) float64 {
	if direction {
		return speed * factor
	}
	return -speed * factor
}
