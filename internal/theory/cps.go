package theory

import "sort"

// CPS computes a combination product set: the products of every
// choose-sized combination of the generator factors, expressed as ratios
// against the smallest product and folded into one equave, ascending.
//
// CPS([]int{1, 3, 5, 7}, 2, 2) is the classic hexany.
func CPS(factors []int, choose int, equave float64) []float64 {
	if choose <= 0 || choose > len(factors) {
		return nil
	}

	var products []float64
	combos(factors, choose, func(combo []int) {
		p := 1.0
		for _, f := range combo {
			p *= float64(f)
		}
		products = append(products, p)
	})

	minProd := products[0]
	for _, p := range products[1:] {
		if p < minProd {
			minProd = p
		}
	}

	ratios := make([]float64, len(products))
	for i, p := range products {
		ratios[i] = FoldInterval(p/minProd, equave, 1)
	}
	sort.Float64s(ratios)
	return ratios
}

// combos calls fn with each k-combination of factors, in lexicographic
// order of indices. The slice passed to fn is reused between calls.
func combos(factors []int, k int, fn func([]int)) {
	combo := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(combo)
			return
		}
		for i := start; i <= len(factors)-(k-depth); i++ {
			combo[depth] = factors[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
