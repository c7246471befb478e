// Package render abstracts the frame target the compositor draws into.
// Acquire/present mirrors a swapchain: acquisition can fail transiently,
// in which case the caller skips the tick and retries on the next one.
package render

import (
	"image"

	"github.com/charmbracelet/log"
)

// Surface is one output's frame target.
type Surface interface {
	// Acquire hands out the writable back buffer for the next frame. An
	// error means no buffer is available right now; the frame is skipped,
	// not failed.
	Acquire() (*image.RGBA, error)
	// Present publishes the last acquired buffer.
	Present() error
	// Resize reallocates buffers for new output geometry.
	Resize(width, height int)
}

// Framebuffer is the software Surface: a double-buffered RGBA pair where
// Present swaps the back buffer to the front.
type Framebuffer struct {
	name  string
	back  *image.RGBA
	front *image.RGBA
}

func NewFramebuffer(name string, width, height int) *Framebuffer {
	f := &Framebuffer{name: name}
	f.Resize(width, height)
	return f
}

func (f *Framebuffer) Acquire() (*image.RGBA, error) {
	return f.back, nil
}

func (f *Framebuffer) Present() error {
	f.front, f.back = f.back, f.front
	log.Debug("presented frame", "output", f.name,
		"width", f.front.Bounds().Dx(), "height", f.front.Bounds().Dy())
	return nil
}

func (f *Framebuffer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	f.back = image.NewRGBA(image.Rect(0, 0, width, height))
	f.front = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Front exposes the last presented frame.
func (f *Framebuffer) Front() *image.RGBA { return f.front }
