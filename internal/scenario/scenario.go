// Package scenario holds the live widget state of each interactive scene and
// the chart data derived from it. Every scene exposes Snapshot, which reads
// the state as it is at call time.
package scenario

import (
	"errors"
	"fmt"
	"math"
)

// Key identifies a scene. Keys sort in play order.
type Key string

const (
	KeyAxis Key = "scene1"
	KeyCall Key = "scene2"
	KeyMap  Key = "scene3"
	KeyBins Key = "scene4"
)

// Keys returns every scene key in play order.
func Keys() []Key {
	return []Key{KeyAxis, KeyCall, KeyMap, KeyBins}
}

// ParseKey accepts either a scene key or one of the short aliases used in
// URLs and the deck file.
func ParseKey(s string) (Key, error) {
	switch s {
	case string(KeyAxis), "axis":
		return KeyAxis, nil
	case string(KeyCall), "call":
		return KeyCall, nil
	case string(KeyMap), "map":
		return KeyMap, nil
	case string(KeyBins), "bins":
		return KeyBins, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScene, s)
}

var (
	ErrUnknownScene   = errors.New("unknown scene")
	ErrNotRunning     = errors.New("countdown is not running")
	ErrAlreadyRunning = errors.New("countdown already running")
	ErrAlreadyCalled  = errors.New("race already called")
	ErrUnknownParty   = errors.New("unknown party")
	ErrEdgeCount      = errors.New("edge count does not match bin count")
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
