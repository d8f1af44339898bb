package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"misleadviz/internal/outcome"
	"misleadviz/internal/scenario"
)

func TestState_RecordOverwrites(t *testing.T) {
	s := NewState()
	s.Record(outcome.Axis(scenario.AxisSnapshot{YMin: 55, YMax: 85}))
	s.Record(outcome.Axis(scenario.AxisSnapshot{YMin: 60, YMax: 80}))

	assert.Equal(t, 1, s.Len())
	o, ok := s.Decision(scenario.KeyAxis)
	assert.True(t, ok)
	assert.Equal(t, outcome.Exaggerated, o.Flag)
	assert.Equal(t, map[string]string{"flag_frame": "exaggerated"}, s.Flags())
}

func TestState_DecisionsInPlayOrder(t *testing.T) {
	s := NewState()
	s.Record(outcome.Bins(scenario.BinSnapshot{BinCount: 4}))
	s.Record(outcome.Axis(scenario.AxisSnapshot{YMin: 0, YMax: 85}))
	s.Record(outcome.Map(scenario.MapSnapshot{Mode: 3}))

	var got []scenario.Key
	for _, o := range s.Decisions() {
		got = append(got, o.Scene)
	}
	want := []scenario.Key{scenario.KeyAxis, scenario.KeyMap, scenario.KeyBins}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decision order (-want +got):\n%s", diff)
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(NewState())
	assert.True(t, d.Empty())
	assert.Empty(t, d.Cards)
}

func TestBuildDashboard_SkipsUnpublishedScenes(t *testing.T) {
	s := NewState()
	s.Record(outcome.Map(scenario.MapSnapshot{Mode: 0}))
	s.Record(outcome.Call(scenario.CallSnapshot{}))

	d := BuildDashboard(s)
	want := []Card{
		{
			Scene:  scenario.KeyCall,
			Title:  "Scene 2 - Call the Race",
			Choice: "Did not call",
			Detail: "Time ran out",
			Flags:  []FlagEntry{{Key: "flag_uncertainty", Value: "late"}},
		},
		{
			Scene:  scenario.KeyMap,
			Title:  "Scene 3 - Land Doesn't Vote",
			Choice: "Area-only map",
			Detail: "View mode: 0",
			Flags:  []FlagEntry{{Key: "flag_map", Value: "misleading"}},
		},
	}
	if diff := cmp.Diff(want, d.Cards); diff != "" {
		t.Errorf("dashboard cards (-want +got):\n%s", diff)
	}
}
