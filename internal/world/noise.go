package world

import "math"

// Deterministic 2D value noise with octaves, used for the hills heightmap.

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash2 is a SplitMix64 style integer hash, stable across runs for the same inputs.
func hash2(x, z, seed int64) uint64 {
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// lattice maps a lattice point to [0, 1].
func lattice(x, z, seed int64) float64 {
	return float64(hash2(x, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	fx, fz := fade(x-x0), fade(z-z0)
	ix, iz := int64(x0), int64(z0)

	i0 := lerp(lattice(ix, iz, seed), lattice(ix+1, iz, seed), fx)
	i1 := lerp(lattice(ix, iz+1, seed), lattice(ix+1, iz+1, seed), fx)
	return lerp(i0, i1, fz)
}

// fractalNoise sums octaves of value noise, each at double frequency and half weight.
// The result stays in [0, 1].
func fractalNoise(x, z float64, seed int64, octaves int) float64 {
	amplitude, frequency := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := range octaves {
		sum += valueNoise(x*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

const (
	hillScale   = 1.0 / 24
	hillOctaves = 3
)

// HillHeight returns the surface cell y of the hills heightmap at x, z, in [0, amplitude].
func HillHeight(x, z int, seed int64, amplitude int) int {
	n := fractalNoise(float64(x)*hillScale, float64(z)*hillScale, seed, hillOctaves)
	return min(int(math.Floor(n*float64(amplitude+1))), amplitude)
}

// NewHills fills every column of the square from y = -depth up to its HillHeight.
func NewHills(radius, depth int, seed int64, amplitude int) *World {
	w := NewEmpty()
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			top := HillHeight(x, z, seed, amplitude)
			for y := -depth; y <= top; y++ {
				w.Set(x, y, z)
			}
		}
	}
	return w
}
