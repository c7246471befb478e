package compositor

import (
	"image"
	"math"
)

// drawInstance rasterizes one layer into dst: the slot texture stretched
// over the full output, restricted to the instance's clip bounds, with the
// rounded-corner mask, rotation about the clip center, and opacity applied
// per pixel.
func (c *Compositor) drawInstance(dst *image.RGBA, tex *image.RGBA, inst instance) {
	bounds := inst.bounds.Intersect(dst.Bounds())
	if bounds.Empty() || inst.opacity <= 0 {
		return
	}

	tw := tex.Bounds().Dx()
	th := tex.Bounds().Dy()
	// The texture was resized for the output upstream, but geometry can
	// drift for a frame across a resize; scale sampling to stay in range.
	sx := float32(tw) / float32(c.width)
	sy := float32(th) / float32(c.height)

	cx := float32(inst.bounds.Min.X+inst.bounds.Max.X) / 2
	cy := float32(inst.bounds.Min.Y+inst.bounds.Max.Y) / 2
	sin, cos := float32(0), float32(1)
	if inst.rotation != 0 {
		s, co := math.Sincos(float64(inst.rotation))
		sin, cos = float32(s), float32(co)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5
			if !insideRounded(px, py, inst.bounds, inst.radius) {
				continue
			}

			// Rotation spins the content; the mask stays axis-aligned.
			tx, ty := px, py
			if inst.rotation != 0 {
				dx := px - cx
				dy := py - cy
				tx = cx + dx*cos - dy*sin
				ty = cy + dx*sin + dy*cos
			}

			ix := clampInt(int(tx*sx), 0, tw-1)
			iy := clampInt(int(ty*sy), 0, th-1)
			so := tex.PixOffset(tex.Bounds().Min.X+ix, tex.Bounds().Min.Y+iy)
			do := dst.PixOffset(x, y)

			// RGBA is premultiplied, so opacity scales every channel.
			dst.Pix[do+0] = mulAlpha(tex.Pix[so+0], inst.opacity)
			dst.Pix[do+1] = mulAlpha(tex.Pix[so+1], inst.opacity)
			dst.Pix[do+2] = mulAlpha(tex.Pix[so+2], inst.opacity)
			dst.Pix[do+3] = mulAlpha(tex.Pix[so+3], inst.opacity)
		}
	}
}

// insideRounded tests a point against the clip rectangle with per-corner
// radii. Radii are fractions of the half-extent of the rectangle's shorter
// side; order is top-left, top-right, bottom-right, bottom-left.
func insideRounded(px, py float32, rect image.Rectangle, radius [4]float32) bool {
	w := float32(rect.Dx())
	h := float32(rect.Dy())
	half := w
	if h < w {
		half = h
	}
	half /= 2

	x0 := float32(rect.Min.X)
	y0 := float32(rect.Min.Y)
	x1 := float32(rect.Max.X)
	y1 := float32(rect.Max.Y)

	corners := [4][2]float32{
		{x0, y0},
		{x1, y0},
		{x1, y1},
		{x0, y1},
	}
	signs := [4][2]float32{
		{1, 1},
		{-1, 1},
		{-1, -1},
		{1, -1},
	}

	for i, r := range radius {
		rp := clamp01(r) * half
		if rp <= 0 {
			continue
		}
		ccx := corners[i][0] + signs[i][0]*rp
		ccy := corners[i][1] + signs[i][1]*rp
		// Only the square pocket between the corner and the circle
		// center can be outside the rounded shape.
		inPocketX := signs[i][0]*(ccx-px) > 0
		inPocketY := signs[i][1]*(ccy-py) > 0
		if inPocketX && inPocketY {
			dx := px - ccx
			dy := py - ccy
			if dx*dx+dy*dy > rp*rp {
				return false
			}
		}
	}
	return true
}

func mulAlpha(a uint8, opacity float32) uint8 {
	v := float32(a) * opacity
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
