package combinations

import (
	"fmt"
	"strings"
)

// Combination is an ascending set of leg indices settled together as one bet
type Combination []int

// String renders the combination with 1-based leg numbers, e.g. "1+3+4"
func (c Combination) String() string {
	parts := make([]string, len(c))
	for i, idx := range c {
		parts[i] = fmt.Sprintf("%d", idx+1)
	}
	return strings.Join(parts, "+")
}

// For returns the combinations a bet type settles over legCount selections: ascending by
// size, then lexicographic. A leg count the bet type does not accept yields no combinations.
func For(bt BetType, legCount int) []Combination {
	if !bt.Accepts(legCount) {
		return nil
	}

	combos := make([]Combination, 0, Count(bt, legCount))
	for _, k := range bt.Sizes {
		combos = append(combos, Generate(legCount, k)...)
	}
	return combos
}

// Generate returns all k-element subsets of 0..n-1 in lexicographic order
func Generate(n, k int) []Combination {
	if k <= 0 || k > n {
		return nil
	}

	out := make([]Combination, 0, Binomial(n, k))
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		combo := make(Combination, k)
		copy(combo, idx)
		out = append(out, combo)

		// Find the rightmost index that can still move right
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Count returns Σ C(n, k) over the bet type's sizes, or 0 when n is not accepted
func Count(bt BetType, legCount int) int {
	if !bt.Accepts(legCount) {
		return 0
	}
	total := 0
	for _, k := range bt.Sizes {
		total += Binomial(legCount, k)
	}
	return total
}

// BetCount is the number of bets struck: each-way doubles it since the win and place
// halves are settled independently.
func BetCount(bt BetType, legCount int, eachWay bool) int {
	n := Count(bt, legCount)
	if eachWay {
		return n * 2
	}
	return n
}

// Binomial returns C(n, k)
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
