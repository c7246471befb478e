// Package scheduler runs the daemon's single-threaded event loop. One
// goroutine owns every output: display events, per-output frame timers and
// wallpaper commands are multiplexed over one select, so no animation or
// compositor state ever needs a lock.
package scheduler

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/driftworks/driftpaper/internal/blur"
	"github.com/driftworks/driftpaper/internal/display"
	"github.com/driftworks/driftpaper/internal/texture"
	"github.com/driftworks/driftpaper/internal/transition"
)

// Command asks the loop to install a wallpaper. An empty Outputs list
// addresses every known output.
type Command struct {
	Outputs []string
	Image   *texture.Image
	Label   string
	Resize  texture.ResizeMode
	Spec    transition.Spec

	// Reply, when non-nil, receives exactly one result.
	Reply chan error
}

// OutputStatus is a point-in-time snapshot of one output, served to status
// queries without touching loop state from another goroutine.
type OutputStatus struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Scale     int    `json:"scale"`
	Wallpaper string `json:"wallpaper"`
	Animating bool   `json:"animating"`
}

// Recorder is notified after each wallpaper lands, so the last-wallpaper
// cache can be replayed on the next start.
type Recorder interface {
	Record(output, label string)
}

// Scheduler owns the loop state. Construct with New, feed it through
// Dispatch/Status, and drive it with Run.
type Scheduler struct {
	clock    clockwork.Clock
	source   display.Source
	registry *transition.Registry
	kernels  *blur.Cache
	recorder Recorder

	// OnAdded, when set, supplies the initial wallpaper for an output that
	// just appeared (used for cache replay on startup).
	OnAdded func(display.Info) *Command

	commands chan Command
	queries  chan chan []OutputStatus
	outputs  map[string]*output
}

func New(clock clockwork.Clock, source display.Source,
	registry *transition.Registry, recorder Recorder) *Scheduler {
	if registry == nil {
		registry = transition.NewRegistry()
	}
	return &Scheduler{
		clock:    clock,
		source:   source,
		registry: registry,
		kernels:  blur.NewCache(),
		recorder: recorder,
		commands: make(chan Command, 16),
		queries:  make(chan chan []OutputStatus, 4),
		outputs:  make(map[string]*output),
	}
}

// Dispatch queues a wallpaper command for the loop.
func (s *Scheduler) Dispatch(cmd Command) {
	s.commands <- cmd
}

// Status asks the loop for a snapshot of every output.
func (s *Scheduler) Status(ctx context.Context) ([]OutputStatus, error) {
	reply := make(chan []OutputStatus, 1)
	select {
	case s.queries <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case statuses := <-reply:
		return statuses, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run drives the loop until ctx is cancelled or the display source closes
// its event stream.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Info("scheduler running")
	for {
		timer := s.armTimer()

		select {
		case <-ctx.Done():
			log.Info("scheduler stopping", "reason", ctx.Err())
			return ctx.Err()

		case ev, ok := <-s.source.Events():
			if !ok {
				log.Info("display source closed, scheduler stopping")
				return nil
			}
			s.handleEvent(ev)

		case cmd := <-s.commands:
			s.handleCommand(cmd)

		case reply := <-s.queries:
			reply <- s.snapshot()

		case <-timer:
			s.tickDue()
		}
	}
}

// armTimer returns a channel that fires at the earliest pending tick
// deadline, or nil (blocking forever) when nothing is animating.
func (s *Scheduler) armTimer() <-chan time.Time {
	var earliest time.Time
	found := false
	for _, o := range s.outputs {
		if !o.anim.Active() {
			continue
		}
		if !found || o.nextTick.Before(earliest) {
			earliest = o.nextTick
			found = true
		}
	}
	if !found {
		return nil
	}
	delay := earliest.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}
	return s.clock.After(delay)
}

// tickDue ticks every animating output whose deadline has passed and
// re-arms its timer from the animation's frame interval.
func (s *Scheduler) tickDue() {
	now := s.clock.Now()
	for _, o := range s.outputs {
		if !o.anim.Active() || o.nextTick.After(now) {
			continue
		}
		o.tick()
		if o.anim.Active() {
			o.nextTick = now.Add(o.anim.Interval())
		}
	}
}

func (s *Scheduler) handleEvent(ev display.Event) {
	switch ev.Kind {
	case display.OutputAdded:
		s.addOutput(ev.Info)
	case display.OutputRemoved:
		log.Info("output removed", "name", ev.Info.Name)
		delete(s.outputs, ev.Info.Name)
	case display.OutputResized:
		o, ok := s.outputs[ev.Info.Name]
		if !ok {
			return
		}
		log.Info("output resized", "name", ev.Info.Name,
			"width", ev.Info.Width, "height", ev.Info.Height)
		o.resize(ev.Info)
		o.render()
	}
}

func (s *Scheduler) addOutput(info display.Info) {
	surface, err := s.source.Surface(info.Name)
	if err != nil {
		log.Error("no surface for output", "name", info.Name, "error", err)
		return
	}
	log.Info("output added", "name", info.Name,
		"width", info.Width, "height", info.Height, "scale", info.Scale)
	o := newOutput(info, surface, s.clock, s.registry, s.kernels)
	s.outputs[info.Name] = o

	if s.OnAdded != nil {
		if cmd := s.OnAdded(info); cmd != nil {
			s.applyTo(o, *cmd)
		}
	}
}

func (s *Scheduler) handleCommand(cmd Command) {
	if cmd.Image == nil {
		s.replyTo(cmd, ErrNoImage)
		return
	}

	matched := 0
	for name, o := range s.outputs {
		if len(cmd.Outputs) > 0 && !contains(cmd.Outputs, name) {
			continue
		}
		s.applyTo(o, cmd)
		matched++
	}
	if matched == 0 {
		s.replyTo(cmd, display.ErrUnknownOutput)
		return
	}
	s.replyTo(cmd, nil)
}

func (s *Scheduler) applyTo(o *output, cmd Command) {
	log.Info("setting wallpaper", "output", o.info.Name, "wallpaper", cmd.Label,
		"transition", string(cmd.Spec.Kind), "duration_ms", cmd.Spec.Duration)
	o.setWallpaper(cmd.Image, cmd.Label, cmd.Resize, cmd.Spec)
	if s.recorder != nil {
		s.recorder.Record(o.info.Name, cmd.Label)
	}
}

func (s *Scheduler) replyTo(cmd Command, err error) {
	if cmd.Reply != nil {
		cmd.Reply <- err
	}
	if err != nil {
		log.Warn("wallpaper command rejected", "error", err)
	}
}

func (s *Scheduler) snapshot() []OutputStatus {
	statuses := make([]OutputStatus, 0, len(s.outputs))
	for _, o := range s.outputs {
		statuses = append(statuses, OutputStatus{
			Name:      o.info.Name,
			Width:     o.info.Width,
			Height:    o.info.Height,
			Scale:     o.info.Scale,
			Wallpaper: o.wallpaper,
			Animating: o.anim.Active(),
		})
	}
	return statuses
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
