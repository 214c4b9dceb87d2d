package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/courtsplit/internal/billing"
)

func setup(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("set_then_get_round_trips_bill", func(t *testing.T) {
		c, _ := setup(t)
		in := billing.Bill{EventID: "evt_1", CourtCost: 300, GrandTotal: 300, Lines: []billing.LineItem{
			{PlayerID: "p1", Name: "Alice", CourtFee: 225, Total: 225},
		}}
		require.NoError(t, c.Set(ctx, "courtsplit:bill:evt_1", in, time.Minute))

		var out billing.Bill
		ok, err := c.Get(ctx, "courtsplit:bill:evt_1", &out)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "evt_1", out.EventID)
		assert.Equal(t, 225.0, out.Lines[0].Total)
	})

	t.Run("miss", func(t *testing.T) {
		c, _ := setup(t)
		var out billing.Bill
		ok, err := c.Get(ctx, "absent", &out)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ttl_expires", func(t *testing.T) {
		c, mr := setup(t)
		require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))
		mr.FastForward(2 * time.Minute)
		var out map[string]int
		ok, err := c.Get(ctx, "k", &out)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("undecodable_entry_is_dropped", func(t *testing.T) {
		c, mr := setup(t)
		require.NoError(t, mr.Set("k", "not-json"))
		var out billing.Bill
		ok, err := c.Get(ctx, "k", &out)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, mr.Exists("k"))
	})

	t.Run("delete_many_and_none", func(t *testing.T) {
		c, mr := setup(t)
		require.NoError(t, c.Set(ctx, "a", 1, 0))
		require.NoError(t, c.Set(ctx, "b", 2, 0))
		require.NoError(t, c.Delete(ctx))
		require.NoError(t, c.Delete(ctx, "a", "b"))
		assert.False(t, mr.Exists("a"))
		assert.False(t, mr.Exists("b"))
	})

	t.Run("new_pings_server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := New("redis://" + mr.Addr())
		require.NoError(t, err)
		assert.NoError(t, c.Ping(ctx))
		_ = c.Close()

		_, err = New("::bad-url")
		assert.Error(t, err)
	})
}
