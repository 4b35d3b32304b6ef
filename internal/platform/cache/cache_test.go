package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilCache_IsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", "v", 0) // must not panic
	c.Delete(ctx, "k")
	assert.NoError(t, c.Close())
}

func TestNew_BadURL(t *testing.T) {
	_, err := New(context.Background(), "not-a-url")
	assert.Error(t, err)
}
