// seehuhn.de/go/trglyph - geometry and codec for TypeRig glyph files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package editor

import (
	"sync"
	"time"
)

// Coalescer collapses bursts of calls into a single trailing call.
// Each [Coalescer.Trigger] restarts the delay; the function runs once the
// delay has passed without further triggers.
//
// It is safe to use a Coalescer from several goroutines.  The function
// itself is called without any lock held.
type Coalescer struct {
	delay time.Duration
	clock Clock
	fn    func()

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewCoalescer returns a Coalescer which calls fn.  If clock is nil, the
// system clock is used.
func NewCoalescer(delay time.Duration, clock Clock, fn func()) *Coalescer {
	if clock == nil {
		clock = systemClock{}
	}
	return &Coalescer{delay: delay, clock: clock, fn: fn}
}

// Trigger schedules a call, replacing any pending one.
func (c *Coalescer) Trigger() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.delay, func() { c.fire(gen) })
}

// Pending reports whether a call is scheduled.
func (c *Coalescer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Cancel discards the pending call, if any.  It reports whether a call
// was pending.
func (c *Coalescer) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := c.timer != nil
	c.stopLocked()
	return pending
}

// Flush runs the pending call immediately, if there is one.  It reports
// whether the function was called.
func (c *Coalescer) Flush() bool {
	if !c.Cancel() {
		return false
	}
	c.fn()
	return true
}

func (c *Coalescer) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// fire is called by the timer.  Calls from timers which have been
// replaced or stopped in the meantime are ignored.
func (c *Coalescer) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.gen++
	c.mu.Unlock()

	c.fn()
}
