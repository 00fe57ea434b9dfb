// Package clientstore is the per-browser key/value storage the storefront
// keeps on behalf of each browsing context. It mirrors the semantics of a
// browser's localStorage: string keys, string values, no transactions and
// no coordination between contexts.
package clientstore

import (
	"context"
	"errors"
)

var (
	ErrQuotaExceeded = errors.New("clientstore: quota exceeded")
	ErrDisabled      = errors.New("clientstore: storage disabled")
)

// Storage is the storage area of one browsing context.
type Storage interface {
	// GetItem returns the value under key and whether it was present.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem is a no-op for absent keys.
	RemoveItem(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Provider hands out the storage area for a browsing context.
type Provider interface {
	Storage(contextID string) Storage
}
