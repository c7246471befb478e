package blur

import "image"

// Horizontal runs the first separable pass: every destination pixel is the
// kernel-weighted sum of linearly sampled source texels along the row. dst
// and src must have equal bounds and must not alias.
func Horizontal(dst, src *image.RGBA, k *Kernel) {
	pass(dst, src, k, true)
}

// Vertical runs the second pass along columns, completing the 2-D blur at
// O(r) per pixel instead of O(r²).
func Vertical(dst, src *image.RGBA, k *Kernel) {
	pass(dst, src, k, false)
}

func pass(dst, src *image.RGBA, k *Kernel, horizontal bool) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a float32
			for i, weight := range k.Weights {
				off := k.Offsets[i]
				var sr, sg, sb, sa float32
				if horizontal {
					sr, sg, sb, sa = sampleLinearX(src, float32(x)+off, y, w)
				} else {
					sr, sg, sb, sa = sampleLinearY(src, x, float32(y)+off, h)
				}
				r += sr * weight
				g += sg * weight
				bl += sb * weight
				a += sa * weight
			}
			o := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			dst.Pix[o+0] = clampByte(r)
			dst.Pix[o+1] = clampByte(g)
			dst.Pix[o+2] = clampByte(bl)
			dst.Pix[o+3] = clampByte(a)
		}
	}
}

// Tint blends a straight-alpha color over every non-transparent pixel.
// Components are in [0,1]; a zero-alpha tint is a no-op.
func Tint(img *image.RGBA, tint [4]float32) {
	if tint[3] <= 0 {
		return
	}
	ta := clamp01f(tint[3])
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := img.PixOffset(x, y)
			if img.Pix[o+3] == 0 {
				continue
			}
			for c := 0; c < 3; c++ {
				v := float32(img.Pix[o+c])
				img.Pix[o+c] = clampByte(v + (tint[c]*255.0-v)*ta)
			}
		}
	}
}

// sampleLinearX fetches a fractional texel along the row, clamping to the
// edge like CLAMP_TO_EDGE sampling.
func sampleLinearX(src *image.RGBA, fx float32, y, w int) (float32, float32, float32, float32) {
	x0 := int(floor(fx))
	frac := fx - float32(x0)
	r0, g0, b0, a0 := texel(src, clampInt(x0, 0, w-1), y)
	if frac == 0 {
		return r0, g0, b0, a0
	}
	r1, g1, b1, a1 := texel(src, clampInt(x0+1, 0, w-1), y)
	return lerp(r0, r1, frac), lerp(g0, g1, frac), lerp(b0, b1, frac), lerp(a0, a1, frac)
}

func sampleLinearY(src *image.RGBA, x int, fy float32, h int) (float32, float32, float32, float32) {
	y0 := int(floor(fy))
	frac := fy - float32(y0)
	r0, g0, b0, a0 := texel(src, x, clampInt(y0, 0, h-1))
	if frac == 0 {
		return r0, g0, b0, a0
	}
	r1, g1, b1, a1 := texel(src, x, clampInt(y0+1, 0, h-1))
	return lerp(r0, r1, frac), lerp(g0, g1, frac), lerp(b0, b1, frac), lerp(a0, a1, frac)
}

func texel(src *image.RGBA, x, y int) (float32, float32, float32, float32) {
	b := src.Bounds()
	o := src.PixOffset(b.Min.X+x, b.Min.Y+y)
	return float32(src.Pix[o+0]), float32(src.Pix[o+1]),
		float32(src.Pix[o+2]), float32(src.Pix[o+3])
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func floor(v float32) float32 {
	f := float32(int(v))
	if v < 0 && f != v {
		f--
	}
	return f
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

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
