package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"misleadviz/internal/fixtures"
	"misleadviz/internal/outcome"
	"misleadviz/internal/scenario"
	"misleadviz/pkg/realtime"
)

var (
	ErrAdvanceDisabled = errors.New("advance is disabled on this slide")
	ErrNotDashboard    = errors.New("restart is only available on the dashboard")
	ErrBackDisabled    = errors.New("already on the first slide")
	ErrCountdownIdle   = errors.New("countdown is not running")
	ErrNotOnScene      = errors.New("scene is not on screen")
)

// Events pushed to the host when state changes outside a request.
const (
	EventSlide realtime.Event = "slide"
	EventLive  realtime.Event = "live"
)

// Countdown results.
const (
	CountdownCalled    = "called"
	CountdownExpired   = "expired"
	CountdownCancelled = "cancelled"
)

// DefaultTickInterval is one second of simulated election night.
const DefaultTickInterval = time.Second

// SceneState tracks whether a scene's widget has been set up.
type SceneState int

const (
	SceneUninitialized SceneState = iota
	SceneActive
)

func (s SceneState) String() string {
	if s == SceneActive {
		return "active"
	}
	return "uninitialized"
}

// Observer receives domain events, typically to update metrics.
type Observer interface {
	SlideViewed(slide string)
	Published(o outcome.Outcome)
	CountdownFinished(result string)
}

type nopObserver struct{}

func (nopObserver) SlideViewed(string)        {}
func (nopObserver) Published(outcome.Outcome) {}
func (nopObserver) CountdownFinished(string)  {}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithDeck replaces the embedded deck.
func WithDeck(d *Deck) Option {
	return func(c *Controller) { c.deck = d }
}

// WithDispatch sets how countdown ticks get back onto the goroutine that
// owns the controller. dispatch must run fn serialized with every other
// controller call.
func WithDispatch(dispatch func(fn func())) Option {
	return func(c *Controller) { c.dispatch = dispatch }
}

// WithTickInterval sets the countdown interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithObserver registers an Observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithNotify registers fn to be told when a countdown tick changes what is
// on screen. fn is called from inside dispatch.
func WithNotify(fn func(events ...realtime.Event)) Option {
	return func(c *Controller) { c.notify = fn }
}

// Controller sequences the slide deck for one player. It is not safe for
// concurrent use: the host serializes calls, including the dispatched
// countdown ticks.
type Controller struct {
	deck     *Deck
	state    *State
	log      *zap.Logger
	observer Observer
	dispatch func(fn func())
	notify   func(events ...realtime.Event)
	interval time.Duration

	current     int
	revealIndex int
	scenes      map[scenario.Key]SceneState

	axis  *scenario.Axis
	call  *scenario.CallRace
	land  *scenario.LandMap
	bins  *scenario.Bins
	timer *realtime.Countdown
	// gen identifies the live countdown; ticks from an older one are dropped.
	gen uint64
}

// NewController builds a controller on the first slide. A nil state starts
// an empty one.
func NewController(state *State, opts ...Option) *Controller {
	if state == nil {
		state = NewState()
	}
	c := &Controller{
		state:    state,
		log:      zap.NewNop(),
		observer: nopObserver{},
		dispatch: func(fn func()) { fn() },
		notify:   func(...realtime.Event) {},
		interval: DefaultTickInterval,
		scenes:   make(map[scenario.Key]SceneState, len(scenario.Keys())),
		axis:     scenario.NewAxis(),
		call:     scenario.NewCallRace(),
		land:     scenario.NewLandMap(),
		bins:     scenario.NewBins(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.deck == nil {
		c.deck = DefaultDeck()
	}
	c.current = -1
	c.enter(0, false)
	return c
}

// State returns the accumulated game state.
func (c *Controller) State() *State { return c.state }

// Deck returns the slide deck.
func (c *Controller) Deck() *Deck { return c.deck }

// Index is the current slide index.
func (c *Controller) Index() int { return c.current }

// Current is the slide on screen.
func (c *Controller) Current() Slide { return c.deck.At(c.current) }

// SceneState reports whether a scene's widget has been set up.
func (c *Controller) SceneState(key scenario.Key) SceneState { return c.scenes[key] }

// GoTo jumps to slide i, clamped to the deck.
func (c *Controller) GoTo(i int) {
	c.enter(i, false)
}

// GoToID jumps to the slide with the given id.
func (c *Controller) GoToID(id string) error {
	i, err := c.deck.Find(id)
	if err != nil {
		return err
	}
	c.enter(i, false)
	return nil
}

// Advance reveals the next step of the current slide or, once every step
// is shown, moves to the next slide.
func (c *Controller) Advance() error {
	s := c.Current()
	if s.NextDisabled || c.current == c.deck.Len()-1 {
		return ErrAdvanceDisabled
	}
	if c.revealNext() {
		return nil
	}
	c.enter(c.current+1, false)
	return nil
}

// Tap handles a tap on the slide surface. It only ever reveals steps and
// reports whether one was revealed.
func (c *Controller) Tap() bool {
	return c.revealNext()
}

// Back moves to the previous slide with all of its steps shown.
func (c *Controller) Back() error {
	if c.current == 0 {
		return ErrBackDisabled
	}
	c.enter(c.current-1, true)
	return nil
}

// Restart returns to the first slide. Published decisions are kept.
func (c *Controller) Restart() error {
	if c.current != c.deck.Len()-1 {
		return ErrNotDashboard
	}
	c.enter(0, false)
	return nil
}

func (c *Controller) revealing() bool {
	s := c.Current()
	return s.Reveal && c.revealIndex < len(s.Steps)
}

func (c *Controller) revealNext() bool {
	if !c.revealing() {
		return false
	}
	c.revealIndex++
	return true
}

// enter makes slide i current and runs the exit hook of the slide being
// left and the entry hook of the target. showAll skips the reveal.
func (c *Controller) enter(i int, showAll bool) {
	i = max(0, min(i, c.deck.Len()-1))
	if c.current >= 0 {
		c.exit(c.Current())
	}
	c.current = i
	s := c.Current()
	switch {
	case !s.Reveal || showAll:
		c.revealIndex = len(s.Steps)
	default:
		c.revealIndex = min(1, len(s.Steps))
	}
	c.observer.SlideViewed(s.ID)
	c.log.Debug("slide entered", zap.String("slide", s.ID), zap.Int("index", i))
	if s.Hook != "" {
		c.hook(s)
	}
}

func (c *Controller) hook(s Slide) {
	key, err := scenario.ParseKey(s.Hook)
	if err != nil {
		c.log.Warn("slide hook skipped", zap.String("slide", s.ID), zap.Error(err))
		return
	}
	if c.scenes[key] == SceneUninitialized {
		switch key {
		case scenario.KeyAxis:
			c.axis.Init()
		case scenario.KeyCall:
			c.call.Init()
		case scenario.KeyMap:
			c.land.Init()
		case scenario.KeyBins:
			c.bins.Init()
		}
		c.scenes[key] = SceneActive
		c.log.Debug("scene initialized", zap.String("scene", string(key)))
	}
	if key == scenario.KeyCall {
		// Every entry starts the broadcast over behind the start overlay.
		c.stopCountdown(CountdownCancelled)
		c.call.Reset()
	}
}

func (c *Controller) exit(s Slide) {
	if key, err := scenario.ParseKey(s.Hook); err == nil && key == scenario.KeyCall {
		c.stopCountdown(CountdownCancelled)
	}
}

func (c *Controller) onScene(key scenario.Key) bool {
	k, err := scenario.ParseKey(c.Current().Hook)
	return err == nil && k == key
}

// Axis returns the polling chart state.
func (c *Controller) Axis() *scenario.Axis { return c.axis }

// CallRace returns the election night state.
func (c *Controller) CallRace() *scenario.CallRace { return c.call }

// LandMap returns the district map state.
func (c *Controller) LandMap() *scenario.LandMap { return c.land }

// Bins returns the income histogram state.
func (c *Controller) Bins() *scenario.Bins { return c.bins }

// Snapshot reads the live state of a scene.
func (c *Controller) Snapshot(key scenario.Key) (any, error) {
	switch key {
	case scenario.KeyAxis:
		return c.axis.Snapshot(), nil
	case scenario.KeyCall:
		return c.call.Snapshot(), nil
	case scenario.KeyMap:
		return c.land.Snapshot(), nil
	case scenario.KeyBins:
		return c.bins.Snapshot(), nil
	}
	return nil, fmt.Errorf("%w: %q", scenario.ErrUnknownScene, key)
}

// Publish evaluates the scene as it stands, records the outcome and jumps
// to the scene's newsroom reaction. The scene must be on screen.
func (c *Controller) Publish(key scenario.Key) (outcome.Outcome, error) {
	snap, err := c.Snapshot(key)
	if err != nil {
		return outcome.Outcome{}, err
	}
	if !c.onScene(key) {
		return outcome.Outcome{}, ErrNotOnScene
	}
	o, err := outcome.Evaluate(snap)
	if err != nil {
		return outcome.Outcome{}, fmt.Errorf("publish %s: %w", key, err)
	}
	c.state.Record(o)
	c.observer.Published(o)
	c.log.Info("scene published",
		zap.String("scene", string(key)),
		zap.String("flag", string(o.Flag)),
		zap.Bool("correct", o.Correct),
	)
	i, ok := c.deck.Immediate(key)
	if !ok {
		c.log.Warn("no reaction slide for scene", zap.String("scene", string(key)))
		return o, nil
	}
	c.enter(i, false)
	return o, nil
}

// StartCall leaves the start overlay and starts the countdown.
func (c *Controller) StartCall() error {
	if !c.onScene(scenario.KeyCall) {
		return ErrNotOnScene
	}
	if err := c.call.Start(); err != nil {
		return err
	}
	c.stopCountdown(CountdownCancelled)
	c.gen++
	gen := c.gen
	c.timer = realtime.StartCountdown(c.interval, c.call.Steps(), func(int) {
		c.dispatch(func() { c.tick(gen) })
	})
	c.log.Debug("countdown started", zap.Duration("interval", c.interval))
	return nil
}

// Call locks in a winner, stops the countdown and publishes the scene.
func (c *Controller) Call(p fixtures.Party) (outcome.Outcome, error) {
	if !c.onScene(scenario.KeyCall) {
		return outcome.Outcome{}, ErrNotOnScene
	}
	if err := c.call.Call(p); err != nil {
		return outcome.Outcome{}, err
	}
	c.stopCountdown(CountdownCalled)
	return c.Publish(scenario.KeyCall)
}

// Hold tells the newsroom the player is waiting for more data.
func (c *Controller) Hold() error {
	if !c.onScene(scenario.KeyCall) {
		return ErrNotOnScene
	}
	if err := c.call.Hold(); err != nil {
		return ErrCountdownIdle
	}
	return nil
}

// CountdownRunning reports whether a countdown is live.
func (c *Controller) CountdownRunning() bool { return c.timer != nil }

// Close cancels any countdown. The controller stays usable.
func (c *Controller) Close() {
	c.stopCountdown(CountdownCancelled)
}

func (c *Controller) stopCountdown(result string) {
	if c.timer == nil {
		return
	}
	c.timer.Cancel()
	c.timer = nil
	c.gen++
	c.observer.CountdownFinished(result)
	c.log.Debug("countdown stopped", zap.String("result", result))
}

func (c *Controller) tick(gen uint64) {
	if gen != c.gen || c.timer == nil {
		return
	}
	if !c.call.Tick() {
		c.notify(EventLive)
		return
	}
	c.timer = nil
	c.gen++
	c.observer.CountdownFinished(CountdownExpired)
	c.log.Info("countdown ended", zap.Bool("called", c.call.Called()))
	if !c.call.Called() {
		if _, err := c.Publish(scenario.KeyCall); err != nil {
			c.log.Error("publish after countdown", zap.Error(err))
		}
	}
	c.notify(EventSlide, EventLive)
}
