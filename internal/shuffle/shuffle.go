package shuffle

// Shuffle returns a seeded Fisher-Yates permutation of items.
// The input slice is left untouched.
func Shuffle[T any](seed uint32, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	rng := NewMulberry32(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Take shuffles items with seed and keeps at most n of them.
func Take[T any](seed uint32, items []T, n int) []T {
	out := Shuffle(seed, items)
	n = max(n, 0)
	if n < len(out) {
		out = out[:n]
	}
	return out
}
