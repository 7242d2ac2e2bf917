// Package dice provides the randomness abstraction used by the outfit
// randomizer. Production code draws from crypto/rand; tests inject a seeded
// source so shuffles are reproducible.
package dice

// Source is the randomness provider for shuffles and random picks.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Shuffle permutes s in place using a Fisher-Yates walk over src.
//
// Postcondition: s holds the same elements in a uniformly random order.
func Shuffle[T any](s []T, src Source) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Pick returns a uniformly random element of s.
//
// Postcondition: ok is false iff s is empty.
func Pick[T any](s []T, src Source) (T, bool) {
	var zero T
	if len(s) == 0 {
		return zero, false
	}
	return s[src.Intn(len(s))], true
}
