package raster

import "math/rand"

// Random returns a rows×cols raster of uniform values in [0,1) drawn from rng.
// Callers own the generator; no global random state is used.
func Random(rng *rand.Rand, rows, cols int) (*Raster, error) {
	r, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range r.data {
		r.data[i] = rng.Float64()
	}
	return r, nil
}

// Shuffle returns a copy of r with its cells permuted by rng.
func Shuffle(rng *rand.Rand, r *Raster) *Raster {
	out := r.Clone()
	rng.Shuffle(len(out.data), func(i, j int) {
		out.data[i], out.data[j] = out.data[j], out.data[i]
	})
	return out
}
