package scheduler

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/driftworks/driftpaper/internal/blur"
	"github.com/driftworks/driftpaper/internal/compositor"
	"github.com/driftworks/driftpaper/internal/display"
	"github.com/driftworks/driftpaper/internal/render"
	"github.com/driftworks/driftpaper/internal/texture"
	"github.com/driftworks/driftpaper/internal/transition"
)

// layer pairs an image with the transform it is drawn under. The previous
// layer's transform is frozen at demotion time and never advances again.
type layer struct {
	image     *texture.Image
	transform transition.FrameTransform
}

// output is the scheduler's per-output state: current and outgoing
// wallpaper, the timing state machine, and the sized drawing resources.
type output struct {
	info    display.Info
	surface render.Surface
	comp    *compositor.Compositor

	anim     *transition.Animation
	target   *layer
	previous *layer

	wallpaper  string // label for status reporting
	resizeMode texture.ResizeMode
	nextTick   time.Time
}

func newOutput(info display.Info, surface render.Surface,
	clock clockwork.Clock, registry *transition.Registry, kernels *blur.Cache) *output {
	w, h := pixelSize(info)
	return &output{
		info:       info,
		surface:    surface,
		comp:       compositor.New(w, h, kernels),
		anim:       transition.NewAnimation(clock, registry),
		resizeMode: texture.ResizeCrop,
	}
}

func pixelSize(info display.Info) (int, int) {
	scale := info.Scale
	if scale < 1 {
		scale = 1
	}
	return info.Width * scale, info.Height * scale
}

// setWallpaper installs a new target. A transition already in flight is
// superseded: the current target drops to the previous layer with its
// transform frozen where the interruption caught it. A completed run is
// frozen at its terminal transform, which for a custom effect need not be
// the identity.
func (o *output) setWallpaper(img *texture.Image, label string, mode texture.ResizeMode, spec transition.Spec) {
	o.resizeMode = mode
	w, h := pixelSize(o.info)
	fitted := img.Resize(mode, w, h)

	if o.target != nil {
		o.previous = &layer{image: o.target.image, transform: o.anim.Transform()}
	}
	o.target = &layer{image: fitted}
	o.wallpaper = label

	o.anim.Start(spec, transition.Extents{Width: float32(w), Height: float32(h)})
	o.nextTick = time.Time{}
}

// resize adapts the sized resources to new geometry. Animation state is
// left alone so an in-flight transition continues at the new size.
func (o *output) resize(info display.Info) {
	o.info = info
	w, h := pixelSize(info)
	o.comp.Resize(w, h)
	o.surface.Resize(w, h)
	if o.target != nil {
		o.target.image = o.target.image.Resize(o.resizeMode, w, h)
	}
	if o.previous != nil {
		o.previous.image = o.previous.image.Resize(o.resizeMode, w, h)
	}
}

// tick advances the animation and draws one frame: update, render, anchor,
// then the completion check, so the terminal frame with progress 1.0 is
// always drawn before the outgoing layer is released.
func (o *output) tick() {
	finished := o.anim.Tick()
	o.render()
	o.anim.Anchor()
	if finished {
		o.previous = nil
		log.Debug("transition complete", "output", o.info.Name, "wallpaper", o.wallpaper)
	}
}

// render composites the previous layer (frozen transform) under the target
// layer (live transform) and presents. A failed surface acquire skips the
// frame; the next tick retries.
func (o *output) render() {
	frame, err := o.surface.Acquire()
	if err != nil {
		log.Warn("no frame available, skipping tick", "output", o.info.Name, "error", err)
		return
	}

	layers := make([]compositor.Layer, 0, 2)
	if o.previous != nil {
		layers = append(layers, compositor.Layer{
			Image:     o.previous.image,
			Transform: o.previous.transform,
		})
	}
	if o.target != nil {
		layers = append(layers, compositor.Layer{
			Image:     o.target.image,
			Transform: o.anim.Transform(),
		})
	}

	o.comp.Prepare(layers)
	o.comp.Render(frame)
	if err := o.surface.Present(); err != nil {
		log.Warn("present failed", "output", o.info.Name, "error", err)
	}
}
