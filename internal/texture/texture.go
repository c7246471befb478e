// Package texture holds the decoded RGBA pixel buffers the compositor
// consumes and the strategies for fitting them to an output.
package texture

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ResizeMode selects how an image is fitted to output geometry.
type ResizeMode string

const (
	// ResizeNone keeps the original size, centered over a black fill.
	ResizeNone ResizeMode = "no"
	// ResizeCrop scales to cover the output and crops the overflow.
	ResizeCrop ResizeMode = "crop"
	// ResizeFit scales to fit inside the output, preserving aspect ratio.
	ResizeFit ResizeMode = "fit"
	// ResizeStretch fills the output exactly, ignoring aspect ratio.
	ResizeStretch ResizeMode = "stretch"
)

func ParseResizeMode(s string) ResizeMode {
	switch ResizeMode(s) {
	case ResizeNone, ResizeCrop, ResizeFit, ResizeStretch:
		return ResizeMode(s)
	default:
		return ResizeCrop
	}
}

// Image is an immutable RGBA8 pixel buffer.
type Image struct {
	rgba *image.RGBA
}

// FromImage converts any decoded image into an RGBA buffer.
func FromImage(img image.Image) *Image {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return &Image{rgba: rgba}
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Image{rgba: rgba}
}

// Solid builds a single-color buffer, used for `clear` requests.
func Solid(width, height int, c color.RGBA) *Image {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rgba.SetRGBA(x, y, c)
		}
	}
	return &Image{rgba: rgba}
}

func (i *Image) Width() int        { return i.rgba.Bounds().Dx() }
func (i *Image) Height() int       { return i.rgba.Bounds().Dy() }
func (i *Image) RGBA() *image.RGBA { return i.rgba }

// Resize fits the image to width×height per mode.
func (i *Image) Resize(mode ResizeMode, width, height int) *Image {
	if i.Width() == width && i.Height() == height {
		return i
	}
	switch mode {
	case ResizeNone:
		return i.pad(width, height)
	case ResizeFit:
		return i.fit(width, height)
	case ResizeStretch:
		return i.stretch(width, height)
	default:
		return i.cover(width, height)
	}
}

func (i *Image) pad(width, height int) *Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Black fill behind a centered, unscaled copy.
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	offset := image.Pt((width-i.Width())/2, (height-i.Height())/2)
	draw.Draw(dst, i.rgba.Bounds().Add(offset), i.rgba, image.Point{}, draw.Over)
	return &Image{rgba: dst}
}

func (i *Image) fit(width, height int) *Image {
	sw, sh := scaleToFit(i.Width(), i.Height(), width, height)
	scaled := scale(i.rgba, sw, sh)
	return (&Image{rgba: scaled}).pad(width, height)
}

func (i *Image) cover(width, height int) *Image {
	sw, sh := scaleToCover(i.Width(), i.Height(), width, height)
	scaled := scale(i.rgba, sw, sh)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	offset := image.Pt((sw-width)/2, (sh-height)/2)
	draw.Draw(dst, dst.Bounds(), scaled, offset, draw.Src)
	return &Image{rgba: dst}
}

func (i *Image) stretch(width, height int) *Image {
	return &Image{rgba: scale(i.rgba, width, height)}
}

func scale(src *image.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func scaleToFit(w, h, maxW, maxH int) (int, int) {
	rw := float64(maxW) / float64(w)
	rh := float64(maxH) / float64(h)
	r := rw
	if rh < rw {
		r = rh
	}
	return max(1, int(float64(w)*r+0.5)), max(1, int(float64(h)*r+0.5))
}

func scaleToCover(w, h, minW, minH int) (int, int) {
	rw := float64(minW) / float64(w)
	rh := float64(minH) / float64(h)
	r := rw
	if rh > rw {
		r = rh
	}
	return max(minW, int(float64(w)*r+0.5)), max(minH, int(float64(h)*r+0.5))
}
