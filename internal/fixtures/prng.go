// Package fixtures holds the deterministic synthetic datasets the scenes are
// built on: the polling table, the income vs vote share curve, the district
// grid and the live election-night series.
package fixtures

import "math"

// Seeded returns a pseudo-random value in [0, 1) derived from seed. It must
// stay bit-for-bit stable: every dataset below is keyed off it.
func Seeded(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}
