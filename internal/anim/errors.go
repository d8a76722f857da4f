package anim

import (
	"errors"
	"time"
)

var (
	// ErrNoSurface indicates a controller was built without a drawing surface.
	ErrNoSurface = errors.New("anim: no drawing surface")

	// ErrNoLocation indicates a controller was built without a location sink.
	ErrNoLocation = errors.New("anim: no location sink")

	// ErrBadOptions indicates an unusable interval or clamp ranges.
	ErrBadOptions = errors.New("anim: invalid options")

	// ErrHalted indicates the animation stopped after a failed frame.
	ErrHalted = errors.New("anim: animation halted")

	// ErrPanic wraps a value recovered from a panicking frame or submit.
	ErrPanic = errors.New("anim: panic")
)

// FrameError wraps a failure with the frame it happened in.
type FrameError struct {
	Frame   int
	Time    time.Duration
	Wrapped error
}

func (e *FrameError) Error() string {
	return e.Wrapped.Error()
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
