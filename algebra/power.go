package algebra

import "iter"

// Power enumerates {0,...,n-1}^k in lexicographic order, the first
// coordinate being the most significant. The yielded slice is reused between
// iterations. Power(n, 0) yields the empty tuple once, for any n.
func Power(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k > 0 && n == 0 {
			return
		}
		tuple := make([]int, k)
		for {
			if !yield(tuple) {
				return
			}
			i := k - 1
			for ; i >= 0; i-- {
				tuple[i]++
				if tuple[i] < n {
					break
				}
				tuple[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// Pow is n^k with 0^0 = 1.
func Pow(n, k int) int {
	r := 1
	for ; k > 0; k-- {
		r *= n
	}
	return r
}
