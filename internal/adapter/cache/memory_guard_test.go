package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := NewMemoryGuard()

	ok, err := g.TryConsume(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok, "first consume must pass")

	ok, err = g.TryConsume(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok, "second consume must be rejected")

	ok, err = g.TryConsume(ctx, 43)
	require.NoError(t, err)
	assert.True(t, ok, "other ids are independent")

	require.NoError(t, g.Forget(ctx, 42))
	ok, err = g.TryConsume(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok, "forgotten id can be consumed again")
}
