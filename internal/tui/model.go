// Package tui plays the game in a terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"misleadviz/internal/fixtures"
	"misleadviz/internal/game"
	"misleadviz/internal/scenario"
	"misleadviz/internal/viewmodel"
)

// applyMsg carries a countdown tick onto the update loop.
type applyMsg func()

const (
	axisStep  = 5
	sessionID = "terminal"
)

// Model is the bubbletea model around one controller.
type Model struct {
	ctrl   *game.Controller
	styles styles
	inbox  chan applyMsg
	done   chan struct{}
	once   sync.Once
	status string
	width  int
}

// New builds a model with its own controller. Countdown ticks are routed
// through the update loop.
func New(state *game.State, opts ...game.Option) *Model {
	m := &Model{
		styles: newStyles(),
		inbox:  make(chan applyMsg, 64),
		done:   make(chan struct{}),
		width:  80,
	}
	opts = append(opts, game.WithDispatch(m.dispatch))
	m.ctrl = game.NewController(state, opts...)
	return m
}

// Run plays until the player quits or ctx is cancelled.
func Run(ctx context.Context, state *game.State, opts ...game.Option) error {
	m := New(state, opts...)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Controller exposes the underlying controller.
func (m *Model) Controller() *game.Controller { return m.ctrl }

// Close stops the countdown and releases anything waiting on the inbox.
func (m *Model) Close() {
	m.once.Do(func() {
		close(m.done)
		m.ctrl.Close()
	})
}

func (m *Model) dispatch(fn func()) {
	select {
	case m.inbox <- applyMsg(fn):
	case <-m.done:
	}
}

func (m *Model) waitForDispatch() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-m.inbox:
			return fn
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForDispatch()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applyMsg:
		msg()
		return m, m.waitForDispatch()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	m.status = ""
	c := m.ctrl
	var err error
	switch key {
	case "q", "ctrl+c", "esc":
		m.Close()
		return tea.Quit
	case "right", "l", " ", "space", "n":
		if !c.Tap() {
			err = c.Advance()
		}
	case "left", "h", "b":
		err = c.Back()
	case "r":
		err = c.Restart()
	case "enter":
		err = m.publish()
	case "up", "down", "pgup", "pgdown", "+", "-":
		m.adjust(key)
	case "s":
		err = c.StartCall()
	case "p":
		_, err = c.Call(fixtures.PartyPurple)
	case "g":
		_, err = c.Call(fixtures.PartyGreen)
	case "w":
		err = c.Hold()
	}
	if err != nil {
		m.status = err.Error()
	}
	return nil
}

func (m *Model) hook() (scenario.Key, bool) {
	k, err := scenario.ParseKey(m.ctrl.Current().Hook)
	return k, err == nil
}

func (m *Model) publish() error {
	key, ok := m.hook()
	if !ok || key == scenario.KeyCall {
		if !m.ctrl.Tap() {
			return m.ctrl.Advance()
		}
		return nil
	}
	_, err := m.ctrl.Publish(key)
	return err
}

// adjust moves the control of the scene on screen.
func (m *Model) adjust(key string) {
	k, ok := m.hook()
	if !ok {
		return
	}
	delta := 1
	if key == "down" || key == "-" || key == "pgdown" {
		delta = -1
	}
	switch k {
	case scenario.KeyAxis:
		s := m.ctrl.Axis().Snapshot()
		if key == "pgup" || key == "pgdown" {
			m.ctrl.Axis().SetY(s.YMin, s.YMax+float64(delta*axisStep))
		} else {
			m.ctrl.Axis().SetY(s.YMin+float64(delta*axisStep), s.YMax)
		}
	case scenario.KeyMap:
		m.ctrl.LandMap().SetMode(m.ctrl.LandMap().Snapshot().Mode + delta)
	case scenario.KeyBins:
		m.ctrl.Bins().SetCount(m.ctrl.Bins().Snapshot().BinCount + delta)
	}
}

func (m *Model) View() string {
	s := viewmodel.FromController(sessionID, m.ctrl)
	var b strings.Builder
	b.WriteString(m.styles.header.Render(fmt.Sprintf("%s  %d/%d", s.Title, s.Index+1, s.Total)))
	b.WriteString("\n\n")
	for _, step := range s.Steps {
		if step.Shown {
			b.WriteString(m.bubble(step))
			b.WriteString("\n")
		}
	}
	b.WriteString(m.panel(s))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errLine.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.footer.Render(m.help(s)))
	return b.String()
}
