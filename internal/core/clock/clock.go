// Package clock converts variable frame times into a whole number of fixed
// simulation steps.
package clock

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidStep = errors.New("invalid fixed step")

// Clock accumulates scaled frame time and hands out fixed steps.
// It is not safe for concurrent use.
type Clock struct {
	fixed       float64
	accumulator float64
	scale       float64
	paused      bool
	maxSteps    int
	dropped     uint64
}

// Option configures a Clock.
type Option func(*Clock)

// WithTimeScale sets the initial time scale. Negative values are ignored.
func WithTimeScale(scale float64) Option {
	return func(c *Clock) { c.SetTimeScale(scale) }
}

// WithMaxSteps caps the steps returned by a single Advance. Zero means no cap.
func WithMaxSteps(n int) Option {
	return func(c *Clock) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// New creates a clock with the given fixed step in seconds.
func New(fixed float64, opts ...Option) (*Clock, error) {
	if !(fixed > 0) || math.IsInf(fixed, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, fixed)
	}
	c := &Clock{fixed: fixed, scale: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Advance accumulates delta seconds and returns how many fixed steps are due.
// The steps are consumed from the accumulator by repeated subtraction so the
// result does not depend on how frame time was split across calls.
func (c *Clock) Advance(delta float64) int {
	if !c.paused && delta > 0 && !math.IsInf(delta, 1) {
		c.accumulator += delta * c.scale
	}

	steps := 0
	for c.accumulator >= c.fixed {
		c.accumulator -= c.fixed
		steps++
	}

	if c.maxSteps > 0 && steps > c.maxSteps {
		c.dropped += uint64(steps - c.maxSteps)
		steps = c.maxSteps
	}
	return steps
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
func (c *Clock) Alpha() float64 {
	return c.accumulator / c.fixed
}

// Fixed returns the fixed step in seconds.
func (c *Clock) Fixed() float64 {
	return c.fixed
}

// Accumulator returns the unconsumed time in seconds.
func (c *Clock) Accumulator() float64 {
	return c.accumulator
}

// SetPaused stops or resumes accumulation. A paused clock still reports the
// alpha it had when paused.
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
}

func (c *Clock) Paused() bool {
	return c.paused
}

// SetTimeScale changes the multiplier applied to incoming deltas.
func (c *Clock) SetTimeScale(scale float64) bool {
	if !(scale >= 0) || math.IsInf(scale, 1) {
		return false
	}
	c.scale = scale
	return true
}

func (c *Clock) TimeScale() float64 {
	return c.scale
}

// Dropped returns how many steps were discarded by the step cap.
func (c *Clock) Dropped() uint64 {
	return c.dropped
}

// Reset clears the accumulator.
func (c *Clock) Reset() {
	c.accumulator = 0
}
