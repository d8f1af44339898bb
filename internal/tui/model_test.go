package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"misleadviz/internal/game"
	"misleadviz/internal/scenario"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, opts ...game.Option) *Model {
	t.Helper()
	m := New(game.NewState(), opts...)
	t.Cleanup(m.Close)
	return m
}

func TestArrowKeysNavigate(t *testing.T) {
	m := newModel(t)
	require.Equal(t, 0, m.Controller().Index())

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Controller().Index())

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.Controller().Index())

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.Controller().Index())
	assert.Contains(t, m.View(), game.ErrBackDisabled.Error())
}

func TestAxisKeysAndPublish(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.Controller().GoToID("s1-interact"))

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	snap := m.Controller().Axis().Snapshot()
	assert.Equal(t, float64(5), snap.YMin)
	assert.Equal(t, float64(80), snap.YMax)
	assert.Contains(t, m.View(), "y min")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := m.Controller().State().Decision(scenario.KeyAxis)
	assert.True(t, ok)
	assert.Equal(t, "s1-immediate", m.Controller().Current().ID)
}

func TestCountdownTicksRunOnUpdateLoop(t *testing.T) {
	m := newModel(t, game.WithTickInterval(time.Millisecond))
	require.NoError(t, m.Controller().GoToID("scene2-live"))

	m.Update(runes("s"))
	require.True(t, m.Controller().CountdownRunning())

	cmd := m.Init()
	for m.Controller().CallRace().Snapshot().TimeSec == 0 {
		msg := cmd()
		require.IsType(t, applyMsg(nil), msg)
		_, cmd = m.Update(msg)
	}

	m.Update(runes("p"))
	_, ok := m.Controller().State().Decision(scenario.KeyCall)
	assert.True(t, ok)
	assert.False(t, m.Controller().CountdownRunning())
}

func TestQuitReleasesWaiters(t *testing.T) {
	m := newModel(t)
	wait := m.Init()

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, wait())
}

func TestDashboardEmptyState(t *testing.T) {
	m := newModel(t)
	m.Controller().GoTo(m.Controller().Deck().Len() - 1)
	assert.Contains(t, m.View(), game.EmptyDashboardTitle)
}
