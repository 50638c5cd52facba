package game

import "math/rand"

// ShuffledRange returns 0..n-1 in random order.
func ShuffledRange(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	rng.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func StringListWithout(l []string, s string) ([]string, bool) {
	for i, x := range l {
		if x == s {
			var out []string
			out = append(out, l[0:i]...)
			out = append(out, l[i+1:]...)
			return out, true
		}
	}
	return l, false
}

func IntListContains(l []int, s int) bool {
	for _, x := range l {
		if s == x {
			return true
		}
	}
	return false
}
