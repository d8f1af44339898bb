package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type rgb struct{ r, g, b float64 }

func parseHex(hex string) rgb {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return rgb{}
	}
	part := func(s string) float64 {
		v, _ := strconv.ParseUint(s, 16, 8)
		return float64(v)
	}
	return rgb{part(h[0:2]), part(h[2:4]), part(h[4:6])}
}

// jsRound rounds half up, matching the browser's Math.round.
func jsRound(x float64) int {
	return int(math.Floor(x + 0.5))
}

// mixColor linearly interpolates two hex colors and returns a css rgb().
func mixColor(from, to string, t float64) string {
	a, b := parseHex(from), parseHex(to)
	return fmt.Sprintf("rgb(%d,%d,%d)",
		jsRound(a.r+(b.r-a.r)*t),
		jsRound(a.g+(b.g-a.g)*t),
		jsRound(a.b+(b.b-a.b)*t),
	)
}
