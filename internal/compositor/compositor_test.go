package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/driftworks/driftpaper/internal/texture"
	"github.com/driftworks/driftpaper/internal/transition"
)

func solidLayer(w, h int, c color.RGBA, tr transition.FrameTransform) Layer {
	return Layer{Image: texture.Solid(w, h, c), Transform: tr}
}

func TestRenderClipMapsToPixels(t *testing.T) {
	c := New(100, 50, nil)

	tr := transition.IdentityTransform()
	tr.Clip.Right = 0.5 // left-half reveal

	c.Prepare([]Layer{solidLayer(100, 50, color.RGBA{R: 255, A: 255}, tr)})

	dst := image.NewRGBA(image.Rect(0, 0, 100, 50))
	c.Render(dst)

	if px := dst.RGBAAt(10, 25); px.R != 255 {
		t.Errorf("inside clip: %+v, want red", px)
	}
	if px := dst.RGBAAt(80, 25); px.R != 0 {
		t.Errorf("outside clip: %+v, want black background", px)
	}
}

func TestRenderOpacityBlendsOverPrevious(t *testing.T) {
	c := New(10, 10, nil)

	under := transition.IdentityTransform()
	over := transition.IdentityTransform()
	over.Opacity = 0.5

	c.Prepare([]Layer{
		solidLayer(10, 10, color.RGBA{R: 255, A: 255}, under),
		solidLayer(10, 10, color.RGBA{B: 255, A: 255}, over),
	})

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c.Render(dst)

	px := dst.RGBAAt(5, 5)
	if px.R < 100 || px.R > 155 {
		t.Errorf("red = %d, want ~128 under half-opaque blue", px.R)
	}
	if px.B < 100 || px.B > 155 {
		t.Errorf("blue = %d, want ~128", px.B)
	}
}

func TestUploadSkipsUnchangedImage(t *testing.T) {
	c := New(20, 20, nil)
	img := texture.Solid(20, 20, color.RGBA{G: 255, A: 255})
	tr := transition.IdentityTransform()

	c.Prepare([]Layer{{Image: img, Transform: tr}})
	first := c.slots[0].tex

	c.Prepare([]Layer{{Image: img, Transform: tr}})
	if c.slots[0].tex != first {
		t.Error("unchanged image was re-uploaded")
	}

	other := texture.Solid(20, 20, color.RGBA{B: 255, A: 255})
	c.Prepare([]Layer{{Image: other, Transform: tr}})
	if c.slots[0].source != other {
		t.Error("changed image was not uploaded")
	}
}

func TestResizeInvalidatesSlots(t *testing.T) {
	c := New(20, 20, nil)
	img := texture.Solid(20, 20, color.RGBA{A: 255})
	c.Prepare([]Layer{{Image: img, Transform: transition.IdentityTransform()}})

	c.Resize(40, 40)
	if c.slots[0].source != nil {
		t.Error("slot survived resize with stale pixel data")
	}

	w, h := c.Size()
	if w != 40 || h != 40 {
		t.Errorf("size = %dx%d, want 40x40", w, h)
	}
}

func TestRenderEmptyClipDrawsNothing(t *testing.T) {
	c := New(10, 10, nil)

	tr := transition.IdentityTransform()
	tr.Clip = transition.Clip{Left: 0.5, Top: 0.5, Right: 0.5, Bottom: 0.5}

	c.Prepare([]Layer{solidLayer(10, 10, color.RGBA{R: 255, A: 255}, tr)})

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c.Render(dst)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if dst.RGBAAt(x, y).R != 0 {
				t.Fatalf("pixel (%d,%d) drawn despite collapsed clip", x, y)
			}
		}
	}
}

func TestRenderRoundedCornersMaskCorners(t *testing.T) {
	c := New(40, 40, nil)

	tr := transition.IdentityTransform()
	tr.Radius = [4]float32{1, 1, 1, 1} // fully rounded: an inscribed circle

	c.Prepare([]Layer{solidLayer(40, 40, color.RGBA{R: 255, A: 255}, tr)})

	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	c.Render(dst)

	if dst.RGBAAt(1, 1).R != 0 {
		t.Error("corner pixel drawn despite full rounding")
	}
	if dst.RGBAAt(20, 20).R != 255 {
		t.Error("center pixel missing")
	}
}

func TestRenderBlurTintsLayer(t *testing.T) {
	c := New(16, 16, nil)

	tr := transition.IdentityTransform()
	tr.BlurRadius = 2
	tr.BlurTint = [4]float32{0, 0, 1, 1} // fully blue

	c.Prepare([]Layer{solidLayer(16, 16, color.RGBA{R: 255, A: 255}, tr)})

	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	c.Render(dst)

	px := dst.RGBAAt(8, 8)
	if px.B != 255 || px.R != 0 {
		t.Errorf("center = %+v, want fully tinted blue", px)
	}
}
