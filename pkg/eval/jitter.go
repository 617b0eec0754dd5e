package eval

import "math/rand"

// Jitter produces small deterministic noise derived from a seed, used by the
// search layer to break ties between equal-valued root candidates (§4.5
// "Tie-breaking & noise") without introducing non-determinism across runs
// with the same seed. Grounded directly on the teacher's own Random
// evaluator (pkg/eval/random.go): a math/rand source seeded once, consulted
// repeatedly.
type Jitter struct {
	rnd   *rand.Rand
	limit int
}

// NewJitter returns a Jitter perturbing scores within [-limit/2, limit/2].
// A non-positive limit disables jitter: Next always returns zero.
func NewJitter(limit int, seed int64) Jitter {
	return Jitter{rnd: rand.New(rand.NewSource(seed)), limit: limit}
}

// Next returns the next jitter value in the deterministic sequence.
func (j Jitter) Next() Score {
	if j.limit <= 0 {
		return 0
	}
	return Score(j.rnd.Intn(j.limit) - j.limit/2)
}
