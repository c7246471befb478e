// Package blur implements the separable Gaussian blur used by the
// compositor: a per-radius kernel cache and the horizontal/vertical passes
// that consume it.
package blur

import "math"

// Kernel holds reduced 1-D Gaussian taps. Offsets are fractional pixel
// positions: every adjacent sample pair of the raw kernel is merged into one
// tap at their intensity-weighted midpoint, halving the fetches a pass
// needs for the same visual result.
type Kernel struct {
	Weights []float32
	Offsets []float32
}

// Cache builds kernels once per integer radius and keeps them for the
// lifetime of the rendering context. The radius space is small and bounded
// by configuration, so entries are never evicted. Mutated only from the
// event-loop thread.
type Cache struct {
	kernels map[int]*Kernel
}

func NewCache() *Cache {
	return &Cache{kernels: make(map[int]*Kernel)}
}

// Get returns the kernel for radius, building it on first use. Radius zero
// (and below) yields the identity kernel so callers can treat "no blur"
// uniformly.
func (c *Cache) Get(radius int) *Kernel {
	if k, ok := c.kernels[radius]; ok {
		return k
	}

	var k *Kernel
	if radius <= 0 {
		k = &Kernel{Weights: []float32{1.0}, Offsets: []float32{0.0}}
	} else {
		weights, offsets := gaussianKernel1D(radius*3, float32(radius))
		k = &Kernel{Weights: weights, Offsets: offsets}
	}
	c.kernels[radius] = k
	return k
}

// gaussianKernel1D samples a normalized Gaussian with the given sigma over
// the window [-radius, radius], then folds adjacent sample pairs into
// linear-sampling taps.
func gaussianKernel1D(radius int, sigma float32) ([]float32, []float32) {
	n := 2*radius + 1
	values := make([]float32, 0, n)
	offsets := make([]float32, 0, n)
	intensity := float32(0.0)

	s := float64(sigma)
	norm := 1.0 / math.Sqrt(2.0*math.Pi*s*s)
	for y := -radius; y <= radius; y++ {
		yf := float64(y)
		g := float32(norm * math.Exp(-yf*yf/(2.0*s*s)))
		values = append(values, g)
		offsets = append(offsets, float32(y))
		intensity += g
	}

	var weights, taps []float32
	i := 0
	for ; i+1 < len(values); i += 2 {
		a, b := values[i], values[i+1]
		k := a + b
		weights = append(weights, k/intensity)
		taps = append(taps, offsets[i]+a/k)
	}
	if i < len(values) {
		weights = append(weights, values[i]/intensity)
		taps = append(taps, offsets[i])
	}

	return weights, taps
}
