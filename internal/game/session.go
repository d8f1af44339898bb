package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"misleadviz/pkg/realtime"
)

// Default session settings.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultCleanup     = time.Minute
	DefaultActionRate  = 20
	DefaultActionBurst = 40
)

// Session is one player's game: a controller behind a lock, plus a limiter
// for incoming actions.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	ctrl    *Controller
	limiter *rate.Limiter
}

// Do runs fn with exclusive access to the session's controller.
func (s *Session) Do(fn func(c *Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ctrl)
}

// Allow reports whether another action fits in the session's rate budget.
func (s *Session) Allow() bool {
	return s.limiter.Allow()
}

func (s *Session) dispatch(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// StoreConfig tunes session lifetime, pacing and instrumentation.
type StoreConfig struct {
	TTL          time.Duration
	Cleanup      time.Duration
	TickInterval time.Duration
	ActionRate   rate.Limit
	ActionBurst  int
	Deck         *Deck
	Logger       *zap.Logger
	Observer     Observer
}

func (cfg StoreConfig) withDefaults() StoreConfig {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.Cleanup < 0 {
		cfg.Cleanup = 0
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.ActionRate <= 0 {
		cfg.ActionRate = DefaultActionRate
	}
	if cfg.ActionBurst <= 0 {
		cfg.ActionBurst = DefaultActionBurst
	}
	if cfg.Deck == nil {
		cfg.Deck = DefaultDeck()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	return cfg
}

// Store holds sessions and delegates to realtime.SessionStore for expiry
// and broadcast.
type Store struct {
	r   *realtime.SessionStore[*Session]
	cfg StoreConfig
}

// NewStore creates an in-memory session store.
func NewStore(cfg StoreConfig) *Store {
	cfg = cfg.withDefaults()
	s := &Store{
		r:   realtime.NewSessionStore[*Session](cfg.TTL, cfg.Cleanup),
		cfg: cfg,
	}
	s.r.OnEvict(func(id string, sess *Session) {
		sess.Do(func(c *Controller) { c.Close() })
		cfg.Logger.Info("session closed", zap.String("session", id))
	})
	return s
}

// CreateSession starts a new game on the first slide.
func (s *Store) CreateSession() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		limiter:   rate.NewLimiter(s.cfg.ActionRate, s.cfg.ActionBurst),
	}
	log := s.cfg.Logger.With(zap.String("session", sess.ID))
	sess.ctrl = NewController(NewState(),
		WithDeck(s.cfg.Deck),
		WithLogger(log),
		WithObserver(s.cfg.Observer),
		WithTickInterval(s.cfg.TickInterval),
		WithDispatch(sess.dispatch),
		WithNotify(func(events ...realtime.Event) { s.r.Publish(sess.ID, events...) }),
	)
	s.r.Create(sess.ID, sess)
	log.Info("session created")
	return sess
}

// GetSession returns a session by ID if it exists.
func (s *Store) GetSession(id string) (*Session, bool) {
	return s.r.Get(id)
}

// DeleteSession ends a session and cancels its countdown.
func (s *Store) DeleteSession(id string) {
	s.r.Delete(id)
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	return s.r.Len()
}

// Broadcaster returns the SSE broadcaster for a session.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.r.Broadcaster(id)
}

// Publish notifies a session's subscribers.
func (s *Store) Publish(id string, events ...realtime.Event) {
	s.r.Publish(id, events...)
}
