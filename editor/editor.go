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

// Package editor holds the state of an interactive glyph editing session.
//
// A [Session] owns the glyph being edited, the selection, the view port
// and an XML text mirror of the glyph.  Programmatic changes to the glyph
// regenerate the text; changes to the text replace the glyph once they
// parse.  While nodes are dragged, text regeneration is coalesced.
//
// A Session must not be used concurrently from several goroutines.  Timer
// callbacks scheduled by the session synchronize with the session's
// methods internally.
package editor

import (
	"time"

	"seehuhn.de/go/trglyph/hittest"
	"seehuhn.de/go/trglyph/view"
)

// Default delays.
const (
	DefaultSyncDelay = 80 * time.Millisecond
	DefaultEditDelay = 400 * time.Millisecond
)

// Arrow key step sizes, for plain, shifted and control-modified keys.
const (
	StepSmall  = 1
	StepMedium = 10
	StepLarge  = 100
)

// Zoom factors used by keyboard shortcuts and the mouse wheel.
const (
	ZoomKey      = 1.15
	ZoomWheelIn  = 1.1
	ZoomWheelOut = 0.9
)

// Options configure a [Session].  The zero value selects the defaults.
type Options struct {
	// HitRadius is the pick radius for nodes, in screen units.
	HitRadius float64

	// ContourTolerance is the pick tolerance for contours, in screen
	// units.
	ContourTolerance float64

	// SyncDelay is the quiet time after the last drag step before the
	// text is regenerated.
	SyncDelay time.Duration

	// EditDelay is the quiet time after the last text edit before the
	// text is parsed.
	EditDelay time.Duration

	// Padding is the screen space left around the glyph by [Session.Fit].
	Padding float64

	// Clock schedules delayed work.  The default uses [time.AfterFunc].
	Clock Clock
}

func (o *Options) withDefaults() Options {
	var res Options
	if o != nil {
		res = *o
	}
	if res.HitRadius <= 0 {
		res.HitRadius = hittest.DefaultRadius
	}
	if res.ContourTolerance <= 0 {
		res.ContourTolerance = hittest.DefaultTolerance
	}
	if res.SyncDelay <= 0 {
		res.SyncDelay = DefaultSyncDelay
	}
	if res.EditDelay <= 0 {
		res.EditDelay = DefaultEditDelay
	}
	if res.Padding <= 0 {
		res.Padding = view.SinglePadding
	}
	if res.Clock == nil {
		res.Clock = systemClock{}
	}
	return res
}

// Clock schedules functions to run after a delay.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled call.  It is implemented by [*time.Timer].
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// TextBuffer is the text widget mirroring the glyph.
type TextBuffer interface {
	Text() string
	SetText(text string)
}
