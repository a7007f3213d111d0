package worldgen

import "math"

// Deterministic lattice value noise. All samples are in [0,1].

func smoothstep5(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func mix(a, b, t float64) float64 {
	return a + t*(b-a)
}

// mix64 is a SplitMix64 finalizer over a combined lattice key.
func mix64(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func lattice2(x, z, seed int64) float64 {
	h := mix64(uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x6C62272E07BB0142 + uint64(seed))
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func lattice3(x, y, z, seed int64) float64 {
	h := mix64(uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed))
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func noise2(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	ix, iz := int64(x0), int64(z0)
	fx, fz := smoothstep5(x-x0), smoothstep5(z-z0)

	a := mix(lattice2(ix, iz, seed), lattice2(ix+1, iz, seed), fx)
	b := mix(lattice2(ix, iz+1, seed), lattice2(ix+1, iz+1, seed), fx)
	return mix(a, b, fz)
}

func noise3(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)
	fx, fy, fz := smoothstep5(x-x0), smoothstep5(y-y0), smoothstep5(z-z0)

	edge := func(dy, dz int64) float64 {
		return mix(lattice3(ix, iy+dy, iz+dz, seed), lattice3(ix+1, iy+dy, iz+dz, seed), fx)
	}
	near := mix(edge(0, 0), edge(1, 0), fy)
	far := mix(edge(0, 1), edge(1, 1), fy)
	return mix(near, far, fz)
}

// fbm sums octaves of sample, each at double frequency and the given
// persistence, normalised back to [0,1].
func fbm(octaves int, persistence float64, seed int64, sample func(freq float64, seed int64) float64) float64 {
	amp, freq := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := range octaves {
		sum += sample(freq, seed+int64(i*131)) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
