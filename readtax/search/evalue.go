package search

import (
	"math"

	"readtax/score"
)

// EValue computes the Karlin-Altschul expected number of chance
// alignments scoring at least score, given query length m and effective
// database length n, using the BLOSUM62-calibrated constants K and
// lambda.
func EValue(m, n, alignScore int) float64 {
	return score.KarlinK * float64(m) * float64(n) * math.Exp(-score.KarlinLambda*float64(alignScore))
}
