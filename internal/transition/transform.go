package transition

import (
	"fmt"
	"math"
)

// Extents is the geometry of the output an animation runs on, in pixels.
type Extents struct {
	X, Y          float32
	Width, Height float32
}

// Clip bounds the visible region of a layer, as fractions of the surface.
type Clip struct {
	Left, Top, Right, Bottom float32
}

// FullClip covers the whole surface.
func FullClip() Clip {
	return Clip{Left: 0, Top: 0, Right: 1, Bottom: 1}
}

// NewClip validates the ordering invariant. Built-in formulas never violate
// it; custom effects can, and callers substitute the full clip when they do.
func NewClip(left, top, right, bottom float32) (Clip, error) {
	c := Clip{Left: left, Top: top, Right: right, Bottom: bottom}
	if left > right || top > bottom {
		return c, fmt.Errorf("invalid clip: left %v > right %v or top %v > bottom %v",
			left, right, top, bottom)
	}
	return c, nil
}

// FrameTransform is the per-tick visual state of one drawn layer. It is
// recomputed every tick, never persisted, except for the frozen copy a
// demoted previous image keeps.
type FrameTransform struct {
	Clip       Clip
	Opacity    float32
	Radius     [4]float32
	Rotation   float32
	BlurRadius int
	BlurTint   [4]float32
}

// IdentityTransform draws the full frame opaque and unfiltered.
func IdentityTransform() FrameTransform {
	return FrameTransform{Clip: FullClip(), Opacity: 1.0}
}

func uniformRadius(r float32) [4]float32 {
	return [4]float32{r, r, r, r}
}

// transformFor computes the built-in transform for one concrete kind from
// already-resolved animation state. It is shared by the regular dispatch and
// Random resolution, so Random never needs a scratch animation.
func transformFor(kind Kind, progress, timeFactor, random float32, extents Extents) FrameTransform {
	t := IdentityTransform()

	switch kind {
	case KindNone:

	case KindFade, KindSimple:
		t.Opacity = progress

	case KindLeft:
		t.Clip.Right = progress

	case KindRight:
		t.Clip.Left = 1.0 - progress

	case KindTop:
		t.Clip.Bottom = progress

	case KindBottom:
		t.Clip.Top = 1.0 - progress

	case KindCenter:
		t.Clip = irisClip(0.5, 0.5*progress, extents)
		t.Radius = uniformRadius(1.0 - progress)

	case KindAny:
		t.Clip = irisClip(random, progress, extents)
		wobble := 0.8 + 0.2*float32(math.Sin(float64(timeFactor*5.0)))
		t.Radius = uniformRadius((1.0 - progress) * wobble)

	case KindOuter, KindWipe, KindWave, KindGrow:
		// Reserved kinds: identity until their geometry lands.

	case KindRandom:
		// Resolved to a concrete kind before reaching here.
	}

	return t
}

// irisClip builds a clip square centered at center that grows with half,
// scaled per axis so the iris stays circular on non-square outputs. The
// scale factors are >= 1, so the clip reaches the full frame by the time
// half reaches 0.5.
func irisClip(center, half float32, extents Extents) Clip {
	sx, sy := float32(1.0), float32(1.0)
	if extents.Width > 0 && extents.Height > 0 {
		if s := extents.Height / extents.Width; s > 1 {
			sx = s
		}
		if s := extents.Width / extents.Height; s > 1 {
			sy = s
		}
	}
	return Clip{
		Left:   clamp01(center - half*sx),
		Top:    clamp01(center - half*sy),
		Right:  clamp01(center + half*sx),
		Bottom: clamp01(center + half*sy),
	}
}
