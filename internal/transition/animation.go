package transition

import (
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
)

// Phase tracks where an animation is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseComplete
)

// Animation is the per-output timing state machine. One instance per output,
// owned by the event loop; it is never shared. Start may be called again
// mid-run to supersede the current transition.
type Animation struct {
	clock    clockwork.Clock
	registry *Registry

	phase      Phase
	spec       *Spec
	startTime  time.Time // zero until the first tick anchors the clock
	progress   float32
	timeFactor float32
	random     float32
	resolved   Kind // concrete kind for this run; Random resolves once
	extents    Extents
}

func NewAnimation(clock clockwork.Clock, registry *Registry) *Animation {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Animation{clock: clock, registry: registry}
}

// Start arms the animation. Progress resets to zero and the start time is
// cleared so the first scheduled tick anchors the clock; accepting the
// request and rendering the first frame stay decoupled.
func (a *Animation) Start(spec Spec, extents Extents) {
	a.spec = &spec
	a.extents = extents
	a.phase = PhaseRunning
	a.startTime = time.Time{}
	a.progress = 0
	a.timeFactor = 0
	a.random = rand.Float32()
	a.resolved = spec.Kind
	if spec.Kind == KindRandom {
		a.resolved = a.pickRandomKind(spec.EnabledKinds)
	}
}

// pickRandomKind draws one concrete kind for the whole run. nil means the
// full built-in pool plus every registered custom effect; an empty
// restriction leaves nothing to pick and degrades to None.
func (a *Animation) pickRandomKind(enabled []Kind) Kind {
	pool := enabled
	if pool == nil {
		pool = append([]Kind{}, builtinKinds...)
		for _, name := range a.registry.Names() {
			pool = append(pool, Kind(name))
		}
	}
	if len(pool) == 0 {
		return KindNone
	}
	return pool[rand.IntN(len(pool))]
}

// Active reports whether a tick timer should stay registered.
func (a *Animation) Active() bool {
	return a.phase == PhaseRunning
}

func (a *Animation) Phase() Phase { return a.phase }

// Progress is the eased position in [0,1] of the current run.
func (a *Animation) Progress() float32 { return a.progress }

// Anchor pins the start time on the first tick after Start.
func (a *Animation) Anchor() {
	if a.phase == PhaseRunning && a.startTime.IsZero() {
		a.startTime = a.clock.Now()
	}
}

// Tick advances the animation to the current clock reading and reports
// whether this tick completed the run. It is a no-op when idle, before the
// clock is anchored, and after completion; repeated calls past completion
// never re-report finished.
func (a *Animation) Tick() bool {
	if a.phase != PhaseRunning || a.spec == nil {
		return false
	}

	if a.spec.Duration == 0 {
		// Degenerate duration: an instant cut, finished on the very
		// first tick regardless of anchoring.
		a.progress = 1.0
		a.timeFactor = 1.0
		a.phase = PhaseComplete
		return true
	}

	if a.startTime.IsZero() {
		return false
	}

	elapsed := a.clock.Since(a.startTime)
	duration := time.Duration(a.spec.Duration) * time.Millisecond
	if elapsed >= duration {
		a.progress = 1.0
		a.timeFactor = 1.0
		a.phase = PhaseComplete
		return true
	}

	linear := float32(elapsed.Seconds() / duration.Seconds())
	a.timeFactor, a.progress = a.spec.Bezier.Evaluate(linear)
	return false
}

// Interval is the timer period for this run: 1000/fps ms when capped, zero
// delay otherwise so the display paces the loop.
func (a *Animation) Interval() time.Duration {
	if a.spec == nil || a.spec.FPS == 0 {
		return 0
	}
	return time.Duration(1000/a.spec.FPS) * time.Millisecond
}

// Transform computes the frame transform for the current state. Built-in
// kinds go through the pure formula table; anything else is resolved against
// the effect registry, falling back to identity on failure.
func (a *Animation) Transform() FrameTransform {
	if a.spec == nil {
		return IdentityTransform()
	}

	kind := a.resolved
	if !kind.IsBuiltin() {
		return a.registry.resolve(string(kind), EffectInput{
			Progress:   a.progress,
			TimeFactor: a.timeFactor,
			Random:     a.random,
			Extents:    a.extents,
		})
	}
	return transformFor(kind, a.progress, a.timeFactor, a.random, a.extents)
}
