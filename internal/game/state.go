package game

import (
	"maps"

	"misleadviz/internal/outcome"
	"misleadviz/internal/scenario"
)

// State accumulates the published outcome of each scene plus the merged
// dashboard flags. It is owned by one session and not safe for concurrent
// use on its own.
type State struct {
	decisions map[scenario.Key]outcome.Outcome
	flags     map[string]string
}

// NewState returns an empty accumulator.
func NewState() *State {
	return &State{
		decisions: make(map[scenario.Key]outcome.Outcome),
		flags:     make(map[string]string),
	}
}

// Record stores o as the decision for its scene, replacing any earlier one.
func (s *State) Record(o outcome.Outcome) {
	s.decisions[o.Scene] = o
	maps.Copy(s.flags, o.Flags)
}

// Decision returns the recorded outcome of a scene.
func (s *State) Decision(key scenario.Key) (outcome.Outcome, bool) {
	o, ok := s.decisions[key]
	return o, ok
}

// Decisions returns the recorded outcomes in play order.
func (s *State) Decisions() []outcome.Outcome {
	out := make([]outcome.Outcome, 0, len(s.decisions))
	for _, k := range scenario.Keys() {
		if o, ok := s.decisions[k]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Flags returns a copy of the merged flags.
func (s *State) Flags() map[string]string {
	return maps.Clone(s.flags)
}

// Len is the number of scenes published so far.
func (s *State) Len() int { return len(s.decisions) }
