// Package display models the outputs the daemon paints and the event
// stream that announces their lifecycle. The scheduler multiplexes this
// stream with its timers; it never polls output state.
package display

import (
	"github.com/charmbracelet/log"

	"github.com/driftworks/driftpaper/internal/render"
)

// Info describes one output's geometry.
type Info struct {
	Name   string
	Width  int
	Height int
	Scale  int
}

// EventKind discriminates output lifecycle events.
type EventKind int

const (
	OutputAdded EventKind = iota
	OutputRemoved
	OutputResized
)

// Event is one output lifecycle notification.
type Event struct {
	Kind EventKind
	Info Info
}

// Source feeds output events to the scheduler and hands out a frame
// surface per output.
type Source interface {
	// Events is the lifecycle stream. The source closes it on shutdown.
	Events() <-chan Event
	// Surface returns the frame target for a known output.
	Surface(name string) (render.Surface, error)
	// Close releases the source and closes the event stream.
	Close() error
}

// StaticSource is a Source whose outputs come from configuration: every
// configured output is announced as added once, and no further events
// arrive unless tests inject them.
type StaticSource struct {
	events   chan Event
	surfaces map[string]*render.Framebuffer
}

func NewStaticSource(infos []Info) *StaticSource {
	s := &StaticSource{
		events:   make(chan Event, len(infos)+4),
		surfaces: make(map[string]*render.Framebuffer, len(infos)),
	}
	for _, info := range infos {
		if info.Scale < 1 {
			info.Scale = 1
		}
		log.Debug("announcing output", "name", info.Name,
			"width", info.Width, "height", info.Height, "scale", info.Scale)
		s.surfaces[info.Name] = render.NewFramebuffer(info.Name,
			info.Width*info.Scale, info.Height*info.Scale)
		s.events <- Event{Kind: OutputAdded, Info: info}
	}
	return s
}

func (s *StaticSource) Events() <-chan Event { return s.events }

func (s *StaticSource) Surface(name string) (render.Surface, error) {
	fb, ok := s.surfaces[name]
	if !ok {
		return nil, ErrUnknownOutput
	}
	return fb, nil
}

// Inject queues an event, for hotplug simulation in tests.
func (s *StaticSource) Inject(ev Event) {
	if ev.Kind == OutputAdded || ev.Kind == OutputResized {
		info := ev.Info
		if info.Scale < 1 {
			info.Scale = 1
		}
		if fb, ok := s.surfaces[info.Name]; ok {
			fb.Resize(info.Width*info.Scale, info.Height*info.Scale)
		} else {
			s.surfaces[info.Name] = render.NewFramebuffer(info.Name,
				info.Width*info.Scale, info.Height*info.Scale)
		}
	}
	s.events <- ev
}

func (s *StaticSource) Close() error {
	close(s.events)
	return nil
}
