package quiz

import (
	"math/rand/v2"
	"sync"
)

// Shuffler draws independent uniform permutations. The zero value uses the runtime
// seeded global source. A Shuffler may be shared by engines of concurrent requests.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewShuffler(src rand.Source) *Shuffler {
	if src == nil {
		return &Shuffler{}
	}
	return &Shuffler{rng: rand.New(src)}
}

func (s *Shuffler) intN(n int) int {
	if s == nil || s.rng == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Shuffle returns a Fisher–Yates permutation of items. The input is left untouched.
func Shuffle[T any](s *Shuffler, items []T) []T {
	shuffled := append([]T(nil), items...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
