// Package animate interpolates window geometry over time on the UI loop.
//
// An Animator is owned by the UI loop: Animate, Shake and Cancel must be
// called from it, and every frame it schedules runs there too. Starting a
// new run bumps the generation counter, so frames still queued for an older
// run see a stale token and return without touching the window.
package animate

import (
	"math"
	"time"

	"floatpad/internal/geom"
)

const (
	// DefaultSteps is the frame count used for dock and undock transitions.
	DefaultSteps = 12

	// DefaultInterval is the delay between two frames.
	DefaultInterval = 10 * time.Millisecond
)

// ShakeOffsets is the horizontal jitter used to draw the eye to the panel.
var ShakeOffsets = []int{5, -5, 4, -4, 2, -2, 0}

// Scheduler runs fn on the UI loop after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(t float64) float64

// EaseOutCubic starts fast and settles into the target.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// Lerp interpolates every field of a rect and rounds to whole pixels.
func Lerp(start, end geom.Rect, t float64) geom.Rect {
	mix := func(a, b int) int {
		return int(math.Round(float64(a) + float64(b-a)*t))
	}
	return geom.Rect{
		X:      mix(start.X, end.X),
		Y:      mix(start.Y, end.Y),
		Width:  mix(start.Width, end.Width),
		Height: mix(start.Height, end.Height),
	}
}

// Frame is one in-flight run of the animator.
type Frame struct {
	Start    geom.Rect
	End      geom.Rect
	Step     int
	Steps    int
	Interval time.Duration
	Ease     EaseFunc
	token    uint64

	onFrame    func(geom.Rect)
	onComplete func()
}

// Progress returns the eased progress of the current step.
func (f *Frame) Progress() float64 {
	return f.Ease(float64(f.Step) / float64(f.Steps))
}

// Animator drives geometry transitions for a single window.
type Animator struct {
	sched      Scheduler
	generation uint64
	active     bool
}

// New creates an animator that schedules frames through sched.
func New(sched Scheduler) *Animator {
	return &Animator{sched: sched}
}

// Animate moves a rect from start to end over steps frames. Frame i of
// 0..steps is eased from i/steps; the last frame is always exactly end,
// followed by onComplete. Any earlier run is invalidated.
func (a *Animator) Animate(start, end geom.Rect, steps int, interval time.Duration, ease EaseFunc, onFrame func(geom.Rect), onComplete func()) {
	if steps < 1 {
		steps = 1
	}
	if ease == nil {
		ease = EaseOutCubic
	}
	a.generation++
	a.active = true
	f := &Frame{
		Start:      start,
		End:        end,
		Steps:      steps,
		Interval:   interval,
		Ease:       ease,
		token:      a.generation,
		onFrame:    onFrame,
		onComplete: onComplete,
	}
	a.tick(f)
}

// Shake jitters the rect horizontally through ShakeOffsets and restores it.
func (a *Animator) Shake(r geom.Rect, interval time.Duration, onFrame func(geom.Rect)) {
	a.generation++
	a.active = true
	token := a.generation

	var step func(i int)
	step = func(i int) {
		if token != a.generation {
			return
		}
		if i >= len(ShakeOffsets) {
			onFrame(r)
			a.active = false
			return
		}
		shifted := r
		shifted.X += ShakeOffsets[i]
		onFrame(shifted)
		a.sched.After(interval, func() { step(i + 1) })
	}
	step(0)
}

// Cancel drops every pending frame without writing a final one.
func (a *Animator) Cancel() {
	a.generation++
	a.active = false
}

// Busy reports whether a run is still delivering frames.
func (a *Animator) Busy() bool {
	return a.active
}

func (a *Animator) tick(f *Frame) {
	if f.token != a.generation {
		return
	}
	if f.Step >= f.Steps {
		f.onFrame(f.End)
		a.active = false
		if f.onComplete != nil {
			f.onComplete()
		}
		return
	}
	f.onFrame(Lerp(f.Start, f.End, f.Progress()))
	f.Step++
	a.sched.After(f.Interval, func() { a.tick(f) })
}
