package cart

import (
	"context"
	"sync"

	"storefront/internal/clientstore"

	"go.uber.org/zap"
)

// StorageKey is where the serialized cart lives in client storage.
const StorageKey = "cart"

// Hook runs after every dispatched action with the resulting cart.
type Hook func(ctx context.Context, c Cart) error

// ErrorSink receives hook failures. It must not block.
type ErrorSink func(action string, err error)

type Option func(*Store)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithHook appends a hook that runs after the persistence hook.
func WithHook(h Hook) Option {
	return func(s *Store) { s.hooks = append(s.hooks, h) }
}

func WithErrorSink(sink ErrorSink) Option {
	return func(s *Store) { s.sink = sink }
}

// Store owns the cart of one browsing context. The in-memory cart is
// authoritative; storage only has to be good enough to survive a reload.
type Store struct {
	mu      sync.Mutex
	cart    Cart
	storage clientstore.Storage
	hooks   []Hook
	logger  *zap.SugaredLogger
	sink    ErrorSink
}

// Open builds a store and loads the cart from storage. A missing or
// unreadable value gives an empty cart.
func Open(ctx context.Context, storage clientstore.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hooks = append([]Hook{s.persist}, s.hooks...)
	if s.sink == nil {
		s.sink = func(action string, err error) {
			s.logger.Errorw("cart hook failed", "action", action, "error", err)
		}
	}

	s.cart = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) Cart {
	raw, ok, err := s.storage.GetItem(ctx, StorageKey)
	if err != nil {
		s.logger.Warnw("cart storage unreadable, starting empty", "error", err)
		return Cart{Items: []Item{}}
	}
	if !ok {
		return Cart{Items: []Item{}}
	}

	c, err := Unmarshal([]byte(raw))
	if err != nil {
		s.logger.Warnw("stored cart is corrupt, starting empty", "error", err)
		return Cart{Items: []Item{}}
	}
	return c
}

// Dispatch applies a and then runs the hooks. Hook failures are reported to
// the error sink and never undo the new cart.
func (s *Store) Dispatch(ctx context.Context, a Action) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = Reduce(s.cart, a)
	snapshot := s.cart.clone()

	// the write outlives a caller that has gone away
	hookCtx := context.WithoutCancel(ctx)
	for _, h := range s.hooks {
		if err := h(hookCtx, snapshot.clone()); err != nil {
			s.sink(a.Name(), err)
		}
	}
	return snapshot
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

func (s *Store) persist(ctx context.Context, c Cart) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return s.storage.SetItem(ctx, StorageKey, string(data))
}
