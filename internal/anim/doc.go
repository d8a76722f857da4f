// Package anim drives the flake animation.
//
// A [Controller] owns the render state and is fed timestamps by a host
// scheduler (a bubbletea tick, a raylib frame, a [time.Ticker]). Each call
// to [Controller.Frame] either records the time baseline, throttles, or
// clears the surface, regenerates the flake and advances the base angle.
//
// Any failure inside a frame stops the controller for good: Frame logs the
// error and returns false, and the host stops asking for frames.
//
// # Thread Safety
//
// Controller is NOT thread-safe. Hosts with more than one goroutine hand the
// controller to [Run], which serialises frames and form submissions.
package anim
