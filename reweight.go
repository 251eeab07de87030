package allocation

import "math"

// Reweight adapts a template to the categories the user selected.
//
// Without any preference the safe default weights are returned. Otherwise the
// categories left out are zeroed and their weight flows to the preferred
// ones, in proportion to their template weight (evenly when they all weigh
// zero in the template). The result sums to exactly 100.
func Reweight(template Weights, preferred CategorySet) Weights {
	if len(preferred.Sorted()) == 0 {
		return Templates[SafeDefault].Weights
	}

	var shares [numCategories]float64
	total := 0.0
	for _, c := range Categories {
		if preferred.Has(c) {
			shares[c] = float64(template[c])
			total += shares[c]
		}
	}
	if total == 0 {
		for _, c := range Categories {
			if preferred.Has(c) {
				shares[c] = 1
			}
		}
	}
	return normalize(shares)
}

// normalize scales non-negative shares to integer points summing to 100.
//
// Each share is rounded half away from zero, then the rounding remainder is
// added to (or taken from) the largest weight; ties go to the first category.
func normalize(shares [numCategories]float64) Weights {
	total := 0.0
	for _, s := range shares {
		total += math.Max(0, s)
	}
	var w Weights
	if total == 0 {
		return w
	}
	sum := 0
	for i, s := range shares {
		w[i] = int(math.Round(math.Max(0, s) * 100 / total))
		sum += w[i]
	}
	if diff := 100 - sum; diff != 0 {
		largest := 0
		for i := range w {
			if w[i] > w[largest] {
				largest = i
			}
		}
		w[largest] += diff
	}
	return w
}
