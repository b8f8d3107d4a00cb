package rnd

import "fmt"

// Below returns a value in [0, n). n must be positive.
func Below(src Source, n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rnd: Below called with n=%d", n))
	}
	return int(src.Uint32() % uint32(n))
}

// NextBelow is Below for the small ranges used by dice and hands.
func NextBelow(src Source, n uint8) uint8 {
	if n == 0 {
		panic("rnd: NextBelow called with n=0")
	}
	return uint8(src.Uint32() % uint32(n))
}

// Dn rolls an n-sided die, returning a value in [1, n].
func Dn(src Source, n uint8) int {
	return int(NextBelow(src, n)) + 1
}

// Float64 returns a value in [0, 1).
func Float64(src Source) float64 {
	return float64(src.Uint32()) / (1 << 32)
}

// PartialShuffle runs the first k steps of a Fisher-Yates shuffle over s:
// for i in [0, k) element i is swapped with a uniformly chosen element of
// s[i:]. Only the prefix s[:k] is uniformly shuffled.
func PartialShuffle[T any](src Source, s []T, k int) {
	n := len(s)
	if k > n {
		k = n
	}
	for i := 0; i < k; i++ {
		j := i + Below(src, n-i)
		s[i], s[j] = s[j], s[i]
	}
}

// Shuffle shuffles all of s.
func Shuffle[T any](src Source, s []T) {
	PartialShuffle(src, s, len(s))
}
