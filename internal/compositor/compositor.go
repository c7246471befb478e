// Package compositor turns per-tick frame transforms into composited
// frames. Layers are batched into one instance list per tick, images are
// kept in rolling texture slots so unchanged layers skip re-upload, and
// blurred layers route through the two-pass separable pipeline.
package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/driftworks/driftpaper/internal/blur"
	"github.com/driftworks/driftpaper/internal/texture"
	"github.com/driftworks/driftpaper/internal/transition"
)

// Layer is one image scheduled for drawing this tick, lowest first.
type Layer struct {
	Image     *texture.Image
	Transform transition.FrameTransform
}

// instance carries the draw parameters of one layer with the clip already
// mapped to pixel bounds.
type instance struct {
	slot     int
	bounds   image.Rectangle
	radius   [4]float32
	opacity  float32
	rotation float32
	blur     int
	blurTint [4]float32
}

// slot is the CPU analog of one array-texture layer: the uploaded copy plus
// the identity of its source, used to skip redundant uploads.
type slot struct {
	source *texture.Image
	tex    *image.RGBA
}

// Compositor owns the sized resources for one output. All methods run on
// the event-loop thread.
type Compositor struct {
	kernels *blur.Cache

	width, height int
	slots         []slot
	instances     []instance

	// Framebuffer-sized blur targets, recreated on resize.
	layerTarget *image.RGBA // standard pass output
	blurScratch *image.RGBA // horizontal pass output
}

func New(width, height int, kernels *blur.Cache) *Compositor {
	if kernels == nil {
		kernels = blur.NewCache()
	}
	c := &Compositor{kernels: kernels}
	c.Resize(width, height)
	return c
}

// Resize recreates every framebuffer-sized resource. Uploaded slots are
// invalidated because their pixel data was sized for the old geometry;
// animation state is untouched by design.
func (c *Compositor) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width = width
	c.height = height
	c.layerTarget = image.NewRGBA(image.Rect(0, 0, width, height))
	c.blurScratch = image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range c.slots {
		c.slots[i] = slot{}
	}
}

func (c *Compositor) Size() (int, int) { return c.width, c.height }

// Prepare batches the tick's layers into the instance list, uploads any
// image that changed since the last tick into its slot, and warms the
// kernel cache for every blur radius in use.
func (c *Compositor) Prepare(layers []Layer) {
	c.instances = c.instances[:0]

	for i, layer := range layers {
		if layer.Image == nil {
			continue
		}
		c.upload(i, layer.Image)

		t := layer.Transform
		c.instances = append(c.instances, instance{
			slot:     i,
			bounds:   c.clipBounds(t.Clip),
			radius:   t.Radius,
			opacity:  clamp01(t.Opacity),
			rotation: t.Rotation,
			blur:     t.BlurRadius,
			blurTint: t.BlurTint,
		})
		c.kernels.Get(t.BlurRadius)
	}
}

// upload copies the layer image into its slot unless the slot already holds
// this exact buffer.
func (c *Compositor) upload(index int, img *texture.Image) {
	for len(c.slots) <= index {
		c.slots = append(c.slots, slot{})
	}
	s := &c.slots[index]
	if s.source == img && s.tex != nil {
		return
	}

	src := img.RGBA()
	if s.tex == nil || s.tex.Bounds() != src.Bounds() {
		s.tex = image.NewRGBA(src.Bounds())
	}
	copy(s.tex.Pix, src.Pix)
	s.source = img
}

// clipBounds maps clip fractions onto output pixels.
func (c *Compositor) clipBounds(clip transition.Clip) image.Rectangle {
	return image.Rect(
		int(clip.Left*float32(c.width)),
		int(clip.Top*float32(c.height)),
		int(clip.Right*float32(c.width)),
		int(clip.Bottom*float32(c.height)),
	)
}

// Render draws the prepared instances into dst, bottom layer first. Each
// instance renders through the layer target; blurred instances take the
// extra horizontal+vertical passes before compositing.
func (c *Compositor) Render(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)

	for _, inst := range c.instances {
		tex := c.slots[inst.slot].tex
		if tex == nil || inst.bounds.Empty() {
			continue
		}

		clearTransparent(c.layerTarget)
		c.drawInstance(c.layerTarget, tex, inst)

		if inst.blur > 0 {
			k := c.kernels.Get(inst.blur)
			blur.Horizontal(c.blurScratch, c.layerTarget, k)
			blur.Vertical(c.layerTarget, c.blurScratch, k)
			blur.Tint(c.layerTarget, inst.blurTint)
		}

		compositeOver(dst, c.layerTarget)
	}
}

func clearTransparent(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

// compositeOver alpha-blends src over dst across the full frame.
func compositeOver(dst, src *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
