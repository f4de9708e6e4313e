package blur

import (
	"math"
	"sync"
)

// Kernel returns a normalized 1D gaussian kernel for the given sigma.
//
// The kernel has 2*ceil(3*sigma)+1 taps, which covers 99.7% of the
// distribution. For sigma <= 0 the identity kernel [1] is returned.
func Kernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}

	half := Extent(sigma)
	kernel := make([]float32, half*2+1)

	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}

	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// Extent returns how many pixels a blur with the given sigma spreads
// coverage beyond the original shape on each side.
func Extent(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// kernelCache keeps recently used kernels keyed by sigma in 1/100 px steps.
type kernelCache struct {
	mu      sync.RWMutex
	kernels map[int][]float32
	limit   int
}

var kernels = &kernelCache{kernels: make(map[int][]float32), limit: 32}

func (c *kernelCache) get(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))

	c.mu.RLock()
	k, ok := c.kernels[key]
	c.mu.RUnlock()
	if ok {
		return k
	}

	k = Kernel(sigma)

	c.mu.Lock()
	if len(c.kernels) >= c.limit {
		// Shadows in one document reuse a handful of radii, so dropping
		// everything on overflow is good enough.
		clear(c.kernels)
	}
	c.kernels[key] = k
	c.mu.Unlock()
	return k
}
