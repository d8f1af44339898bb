package scenario

import (
	"fmt"
	"math"
)

func formatYears(from, to int) string {
	return fmt.Sprintf("%d – %d", from, to)
}

func formatRange(lo, hi float64) string {
	return fmt.Sprintf("%g – %g", lo, hi)
}

// formatIncome renders 52000 as "$52k".
func formatIncome(x float64) string {
	return fmt.Sprintf("$%dk", jsRound(x/1000))
}

func formatClock(sec int) string {
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
