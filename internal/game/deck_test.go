package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"misleadviz/internal/scenario"
)

func TestDefaultDeck_Shape(t *testing.T) {
	d := DefaultDeck()
	require.Greater(t, d.Len(), 2)
	assert.Equal(t, "start", d.At(0).ID)
	assert.Equal(t, PanelDashboard, d.At(d.Len()-1).Panel)

	for _, key := range scenario.Keys() {
		i, ok := d.Immediate(key)
		require.True(t, ok, "no reaction slide for %s", key)
		assert.Equal(t, PanelImmediate, d.At(i).Panel)
	}
	for _, s := range d.Slides() {
		if s.Hook != "" {
			assert.True(t, s.NextDisabled, "interactive slide %q should publish instead of advancing", s.ID)
		}
	}
}

func TestDeck_NextLabel(t *testing.T) {
	d, err := ParseDeck([]byte(`
slides:
  - {id: cover}
  - {id: start}
  - {id: plain}
  - {id: custom, next_label: "Onward"}
`))
	require.NoError(t, err)
	assert.Equal(t, "Start ▶", d.NextLabel(0))
	assert.Equal(t, "Start ▶", d.NextLabel(1))
	assert.Equal(t, "Next ▶", d.NextLabel(2))
	assert.Equal(t, "Onward", d.NextLabel(3))
}

func TestParseDeck_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty", "slides: []", ErrEmptyDeck},
		{"missing id", "slides: [{title: x}]", ErrMissingID},
		{"duplicate", "slides: [{id: a}, {id: a}]", ErrDuplicateID},
		{"reveal without steps", "slides: [{id: a, reveal: true}]", ErrEmptyReveal},
		{"unknown scene", "slides: [{id: a, panel: immediate, scene: pie}]", scenario.ErrUnknownScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDeck([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeck_Find(t *testing.T) {
	d := DefaultDeck()
	i, err := d.Find("s1-intro")
	require.NoError(t, err)
	assert.Equal(t, "s1-intro", d.At(i).ID)

	_, err = d.Find("nope")
	assert.ErrorIs(t, err, ErrUnknownSlide)
}
