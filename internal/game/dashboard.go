package game

import (
	"sort"

	"misleadviz/internal/scenario"
)

// Placeholder copy shown before any scene is published.
const (
	EmptyDashboardTitle = "No decisions recorded"
	EmptyDashboardHint  = "Play through the scenes and publish to see your recap."
)

// FlagEntry is one key/value pair on a dashboard card.
type FlagEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Card summarizes one published scene.
type Card struct {
	Scene  scenario.Key `json:"scene"`
	Title  string       `json:"title"`
	Choice string       `json:"choice"`
	Detail string       `json:"detail"`
	Flags  []FlagEntry  `json:"flags"`
}

// Dashboard is the end-of-game recap.
type Dashboard struct {
	Cards []Card `json:"cards"`
}

// Empty reports whether nothing was published.
func (d Dashboard) Empty() bool { return len(d.Cards) == 0 }

// BuildDashboard projects the accumulated state into cards, one per
// published scene in play order.
func BuildDashboard(s *State) Dashboard {
	decisions := s.Decisions()
	d := Dashboard{Cards: make([]Card, 0, len(decisions))}
	for _, o := range decisions {
		card := Card{
			Scene:  o.Scene,
			Title:  o.Title,
			Choice: o.Choice,
			Detail: o.Detail,
			Flags:  make([]FlagEntry, 0, len(o.Flags)),
		}
		for k, v := range o.Flags {
			card.Flags = append(card.Flags, FlagEntry{Key: k, Value: v})
		}
		sort.Slice(card.Flags, func(i, j int) bool { return card.Flags[i].Key < card.Flags[j].Key })
		d.Cards = append(d.Cards, card)
	}
	return d
}
