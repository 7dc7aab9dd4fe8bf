package adjquiz

import "math/rand/v2"

// Shuffle permutes s in place with a Fisher–Yates shuffle, so every
// permutation is equally likely.
func Shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Select draws min(n, len(bank)) questions without replacement, in random
// order. The bank itself is left untouched.
func Select(bank []Question, n int, rng *rand.Rand) []Question {
	if n > len(bank) {
		n = len(bank)
	}
	if n <= 0 {
		return nil
	}
	pool := make([]Question, len(bank))
	copy(pool, bank)
	Shuffle(pool, rng)
	return pool[:n:n]
}
