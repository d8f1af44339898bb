package outcome

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"misleadviz/internal/fixtures"
	"misleadviz/internal/scenario"
)

func TestFrameFlag_Boundary(t *testing.T) {
	tests := []struct {
		yMin, yMax float64
		want       Flag
	}{
		{60, 82, Exaggerated},
		{60, 83, Balanced},
		{60, 80, Exaggerated},
		{55, 85, Balanced},
		{0, 85, Balanced},
		{40, 41, Exaggerated},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FrameFlag(tt.yMin, tt.yMax), "[%v,%v]", tt.yMin, tt.yMax)
	}
}

func TestAxis_ContentFollowsFlag(t *testing.T) {
	o := Axis(scenario.AxisSnapshot{YMin: 60, YMax: 80})
	assert.Equal(t, scenario.KeyAxis, o.Scene)
	assert.Equal(t, Exaggerated, o.Flag)
	assert.Equal(t, "Truncated y-axis range", o.Choice)
	assert.Equal(t, "Y span: 20", o.Detail)
	assert.Equal(t, map[string]string{"flag_frame": "exaggerated"}, o.Flags)
	assert.Len(t, o.Immediate, 3)
	assert.Len(t, o.Now, 3)
	assert.Len(t, o.Later, 2)

	b := Axis(scenario.AxisSnapshot{YMin: 55, YMax: 85})
	assert.Equal(t, Balanced, b.Flag)
	assert.Equal(t, "Contextual y-axis range", b.Choice)
}

func TestAxis_NaNFallsBackToFullRange(t *testing.T) {
	o := Axis(scenario.AxisSnapshot{YMin: math.NaN(), YMax: math.NaN()})
	assert.Equal(t, Balanced, o.Flag)
	assert.Equal(t, "Y span: 100", o.Detail)
}

func TestCallBand_Boundaries(t *testing.T) {
	tests := []struct {
		t    float64
		want Flag
	}{
		{0, TooEarly},
		{19.9, TooEarly},
		{20.0, Ideal},
		{39.9, Ideal},
		{40.0, TooLate},
		{60, TooLate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CallBand(tt.t), "t=%v", tt.t)
	}
}

func TestCall_Missed(t *testing.T) {
	o := Call(scenario.CallSnapshot{TimeSec: 60})
	assert.Equal(t, Missed, o.Flag)
	assert.False(t, o.Correct)
	assert.Equal(t, "Did not call", o.Choice)
	assert.Equal(t, "Time ran out", o.Detail)
	assert.Equal(t, "late", o.Flags["flag_uncertainty"])
	assert.Equal(t, "We missed the moment.", o.Immediate[0].Text)
}

func TestCall_CorrectnessOnlyChangesLaterPost(t *testing.T) {
	right := Call(scenario.CallSnapshot{DidCall: true, Picked: fixtures.PartyPurple, TimeSec: 12})
	wrong := Call(scenario.CallSnapshot{DidCall: true, Picked: fixtures.PartyGreen, TimeSec: 12})
	require.Equal(t, TooEarly, right.Flag)
	assert.True(t, right.Correct)
	assert.False(t, wrong.Correct)
	assert.Equal(t, "rushed", right.Flags["flag_uncertainty"])

	if diff := cmp.Diff(right.Immediate, wrong.Immediate); diff != "" {
		t.Errorf("immediate dialogue should not depend on correctness (-right +wrong):\n%s", diff)
	}
	assert.NotEqual(t, right.Later, wrong.Later)
	assert.Equal(t, "Time: 12.0s", right.Detail)
	assert.Equal(t, "Called: Purple Party", right.Choice)
}

func TestCall_IdealAndLate(t *testing.T) {
	ideal := Call(scenario.CallSnapshot{DidCall: true, Picked: fixtures.PartyPurple, TimeSec: 30})
	assert.Equal(t, Ideal, ideal.Flag)
	assert.Equal(t, "timely", ideal.Flags["flag_uncertainty"])
	assert.Equal(t, "As the count finalizes, your call holds up.", ideal.Later[0].Text)

	lateRight := Call(scenario.CallSnapshot{DidCall: true, Picked: fixtures.PartyPurple, TimeSec: 45})
	lateWrong := Call(scenario.CallSnapshot{DidCall: true, Picked: fixtures.PartyGreen, TimeSec: 45})
	assert.Equal(t, TooLate, lateRight.Flag)
	assert.Equal(t, lateRight.Later, lateWrong.Later)
	assert.Equal(t, "You called Purple Party after the big broadcasts.", lateRight.Immediate[0].Text)
}

func TestMapFlag(t *testing.T) {
	want := []Flag{Misleading, Misleading, Clarifying, Clarifying, Clarifying}
	for mode, f := range want {
		assert.Equal(t, f, MapFlag(mode), "mode %d", mode)
	}
	o := Map(scenario.MapSnapshot{Mode: 1})
	assert.Equal(t, "Area-only map", o.Choice)
	assert.Equal(t, "View mode: 1", o.Detail)
}

func TestAggregationFlag(t *testing.T) {
	want := map[int]Flag{
		0: TooCoarse, 1: TooCoarse, 2: TooCoarse,
		3: GoodBalance, 4: GoodBalance, 5: GoodBalance, 6: GoodBalance,
		7: TooNoisy, 8: TooNoisy, 20: TooNoisy,
	}
	for k, f := range want {
		assert.Equal(t, f, AggregationFlag(k), "k=%d", k)
	}
	o := Bins(scenario.BinSnapshot{BinCount: 42})
	assert.Equal(t, "Bin count: 8", o.Choice)
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	snaps := []any{
		scenario.AxisSnapshot{YMin: 10, YMax: 50},
		scenario.CallSnapshot{DidCall: true, Picked: fixtures.PartyGreen, TimeSec: 33},
		scenario.MapSnapshot{Mode: 3},
		scenario.BinSnapshot{BinCount: 5},
	}
	for _, s := range snaps {
		a, err := Evaluate(s)
		require.NoError(t, err)
		b, err := Evaluate(s)
		require.NoError(t, err)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("Evaluate(%T) differs between calls:\n%s", s, diff)
		}
	}
	_, err := Evaluate("nope")
	assert.True(t, errors.Is(err, scenario.ErrUnknownScene))
}
