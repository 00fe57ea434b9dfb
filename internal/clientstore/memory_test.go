package clientstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAreasAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	a := m.Storage("ctx-a")
	b := m.Storage("ctx-b")

	require.NoError(t, a.SetItem(ctx, "token", "t-a"))

	v, ok, err := a.GetItem(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t-a", v)

	_, ok, err = b.GetItem(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(0).Storage("ctx")

	require.NoError(t, s.SetItem(ctx, "token", "t"))
	require.NoError(t, s.SetItem(ctx, "role", "1"))

	require.NoError(t, s.RemoveItem(ctx, "token"))
	require.NoError(t, s.RemoveItem(ctx, "missing"))

	_, ok, _ := s.GetItem(ctx, "token")
	assert.False(t, ok)
	_, ok, _ = s.GetItem(ctx, "role")
	assert.True(t, ok)

	require.NoError(t, s.Clear(ctx))
	_, ok, _ = s.GetItem(ctx, "role")
	assert.False(t, ok)
}

func TestMemoryQuota(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(10).Storage("ctx")

	require.NoError(t, s.SetItem(ctx, "k", "12345"))
	assert.ErrorIs(t, s.SetItem(ctx, "other", "123456"), ErrQuotaExceeded)

	// overwriting the same key only counts the new value
	require.NoError(t, s.SetItem(ctx, "k", "123456789"))

	v, _, _ := s.GetItem(ctx, "k")
	assert.Equal(t, "123456789", v)
}

func TestMemoryDisabled(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	s := m.Storage("ctx")
	require.NoError(t, s.SetItem(ctx, "cart", "{}"))

	m.SetDisabled(true)
	assert.ErrorIs(t, s.SetItem(ctx, "cart", "x"), ErrDisabled)
	assert.ErrorIs(t, s.Clear(ctx), ErrDisabled)

	v, ok, err := s.GetItem(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{}", v)
}
