// Package browsing tracks the live browsing contexts of the storefront. A
// browsing context is one browser: its client storage plus the cart store
// opened over it.
package browsing

import (
	"context"
	"sync"
	"time"

	"storefront/internal/cart"
	"storefront/internal/clientstore"
)

type Context struct {
	ID      string
	Storage clientstore.Storage
	Cart    *cart.Store
}

type entry struct {
	bctx     *Context
	lastSeen time.Time
}

// Registry keeps opened contexts in memory. Dropping a context is the same
// as the browser reloading: the next Get reopens the cart from storage.
type Registry struct {
	mu       sync.Mutex
	provider clientstore.Provider
	cartOpts []cart.Option
	contexts map[string]*entry
	now      func() time.Time
}

func NewRegistry(provider clientstore.Provider, cartOpts ...cart.Option) *Registry {
	return &Registry{
		provider: provider,
		cartOpts: cartOpts,
		contexts: make(map[string]*entry),
		now:      time.Now,
	}
}

// Get returns the context for id, opening it on first use.
func (r *Registry) Get(ctx context.Context, id string) *Context {
	r.mu.Lock()
	if e, ok := r.contexts[id]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.bctx
	}
	r.mu.Unlock()

	// open outside the lock, storage may be remote
	storage := r.provider.Storage(id)
	opened := &Context{
		ID:      id,
		Storage: storage,
		Cart:    cart.Open(ctx, storage, r.cartOpts...),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// someone else may have opened it meanwhile, theirs wins
	if e, ok := r.contexts[id]; ok {
		e.lastSeen = r.now()
		return e.bctx
	}
	r.contexts[id] = &entry{bctx: opened, lastSeen: r.now()}
	return opened
}

// Forget drops id so the next Get reopens it from storage.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	delete(r.contexts, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contexts)
}

// Sweep drops contexts idle for longer than idle and reports how many.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for id, e := range r.contexts {
		if e.lastSeen.Before(cutoff) {
			delete(r.contexts, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, every, idle time.Duration, onSweep func(int)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
