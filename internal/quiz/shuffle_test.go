package quiz

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestShuffleIsPermutationAndDoesNotMutate(t *testing.T) {
	input := []int{1, 2, 2, 3, 4, 5, 6, 7}
	original := slices.Clone(input)
	shuffler := NewShuffler(rand.NewPCG(1, 2))

	for round := 0; round < 50; round++ {
		got := Shuffle(shuffler, input)
		if !slices.Equal(input, original) {
			t.Fatalf("input mutated: %v", input)
		}
		if len(got) != len(input) {
			t.Fatalf("length = %d, want %d", len(got), len(input))
		}
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		if !slices.Equal(sorted, original) {
			t.Fatalf("not a permutation: %v", got)
		}
	}
}

func TestShuffleEdgeSizes(t *testing.T) {
	if got := Shuffle[int](nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if got := Shuffle(nil, []string{"only"}); len(got) != 1 || got[0] != "only" {
		t.Fatalf("unexpected single element shuffle: %v", got)
	}
}

func TestShuffleReachesEveryOrder(t *testing.T) {
	shuffler := NewShuffler(rand.NewPCG(7, 11))
	seen := make(map[[3]int]int)

	for round := 0; round < 3000; round++ {
		got := Shuffle(shuffler, []int{0, 1, 2})
		seen[[3]int{got[0], got[1], got[2]}]++
	}

	if len(seen) != 6 {
		t.Fatalf("expected all 6 orders, saw %d: %v", len(seen), seen)
	}
	for order, count := range seen {
		// 500 expected per order; a biased swap would push some orders far off.
		if count < 350 || count > 650 {
			t.Fatalf("order %v drawn %d times, outside tolerance", order, count)
		}
	}
}

func TestShuffleIndependentDraws(t *testing.T) {
	shuffler := NewShuffler(rand.NewPCG(3, 5))
	input := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	first := Shuffle(shuffler, input)
	for round := 0; round < 20; round++ {
		if !slices.Equal(Shuffle(shuffler, input), first) {
			return
		}
	}
	t.Fatalf("every draw produced the same order %v", first)
}
