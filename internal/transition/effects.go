package transition

import (
	"github.com/charmbracelet/log"
)

// EffectInput is what a scripted effect sees each tick.
type EffectInput struct {
	Progress   float32
	TimeFactor float32
	Random     float32
	Extents    Extents
}

// EffectResult is the record a scripted effect returns. Every field is
// optional; a nil field means "identity" for that parameter.
type EffectResult struct {
	ClipLeft, ClipTop, ClipRight, ClipBottom *float32
	Opacity                                  *float32
	Radius                                   *[4]float32
	Rotation                                 *float32
	Blur                                     *int
	BlurTint                                 *[4]float32
}

// Effect computes a transform record for a named transition.
type Effect func(EffectInput) (EffectResult, error)

// Registry maps effect names to scripted effects. It is populated once at
// startup and read from the event-loop thread only.
type Registry struct {
	effects map[string]Effect
}

func NewRegistry() *Registry {
	return &Registry{effects: make(map[string]Effect)}
}

func (r *Registry) Register(name string, fn Effect) {
	r.effects[name] = fn
}

func (r *Registry) Lookup(name string) (Effect, bool) {
	fn, ok := r.effects[name]
	return fn, ok
}

// Names returns the registered effect names; Random draws customs from here
// when unrestricted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	return names
}

// resolve runs the named effect and merges its record over the identity
// transform. A lookup miss, an evaluation error, or an invalid clip never
// fails the frame: the offending field (or the whole transform) degrades to
// identity with a warning.
func (r *Registry) resolve(name string, in EffectInput) FrameTransform {
	t := IdentityTransform()

	fn, ok := r.Lookup(name)
	if !ok {
		log.Warnf("transition effect %q not registered, using identity", name)
		return t
	}

	res, err := fn(in)
	if err != nil {
		log.Warnf("transition effect %q failed: %v", name, err)
		return t
	}

	clip := t.Clip
	if res.ClipLeft != nil {
		clip.Left = *res.ClipLeft
	}
	if res.ClipTop != nil {
		clip.Top = *res.ClipTop
	}
	if res.ClipRight != nil {
		clip.Right = *res.ClipRight
	}
	if res.ClipBottom != nil {
		clip.Bottom = *res.ClipBottom
	}
	if _, err := NewClip(clip.Left, clip.Top, clip.Right, clip.Bottom); err != nil {
		log.Warnf("transition effect %q: %v, using full clip", name, err)
	} else {
		t.Clip = clip
	}

	if res.Opacity != nil {
		t.Opacity = clamp01(*res.Opacity)
	}
	if res.Radius != nil {
		t.Radius = *res.Radius
	}
	if res.Rotation != nil {
		t.Rotation = *res.Rotation
	}
	if res.Blur != nil && *res.Blur >= 0 {
		t.BlurRadius = *res.Blur
	}
	if res.BlurTint != nil {
		t.BlurTint = *res.BlurTint
	}

	return t
}
