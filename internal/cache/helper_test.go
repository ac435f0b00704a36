package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	t.Run("miss fetches and populates the cache", func(t *testing.T) {
		mr := withMiniredis(t)
		ctx := context.Background()

		fetchCalls := 0
		var got cachedUser
		err := Aside(ctx, "user:1", &got, time.Minute, func() error {
			fetchCalls++
			got = cachedUser{ID: 1, Username: "alice"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fetchCalls)
		assert.Equal(t, "alice", got.Username)
		assert.True(t, mr.Exists("user:1"))
	})

	t.Run("hit skips fetch", func(t *testing.T) {
		withMiniredis(t)
		ctx := context.Background()

		var first cachedUser
		require.NoError(t, Aside(ctx, "user:2", &first, time.Minute, func() error {
			first = cachedUser{ID: 2, Username: "bob"}
			return nil
		}))

		var second cachedUser
		err := Aside(ctx, "user:2", &second, time.Minute, func() error {
			return errors.New("fetch should not run on a cache hit")
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", second.Username)
	})

	t.Run("fetch error propagates and nothing is cached", func(t *testing.T) {
		mr := withMiniredis(t)
		ctx := context.Background()

		var got cachedUser
		err := Aside(ctx, "user:3", &got, time.Minute, func() error {
			return errors.New("db down")
		})
		assert.Error(t, err)
		assert.False(t, mr.Exists("user:3"))
	})

	t.Run("nil client degrades to fetch only", func(t *testing.T) {
		SetClient(nil)
		ctx := context.Background()

		fetchCalls := 0
		var got cachedUser
		for i := 0; i < 2; i++ {
			require.NoError(t, Aside(ctx, "user:4", &got, time.Minute, func() error {
				fetchCalls++
				got = cachedUser{ID: 4, Username: "carol"}
				return nil
			}))
		}
		assert.Equal(t, 2, fetchCalls, "every read goes to the fetcher without redis")
	})
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var got cachedUser
	require.NoError(t, Aside(ctx, UserKey(5), &got, time.Minute, func() error {
		got = cachedUser{ID: 5, Username: "dave"}
		return nil
	}))
	require.True(t, mr.Exists(UserKey(5)))

	InvalidateUser(ctx, 5)
	assert.False(t, mr.Exists(UserKey(5)))
}

func TestGetJSON_CorruptEntry(t *testing.T) {
	mr := withMiniredis(t)
	require.NoError(t, mr.Set("user:6", "{not json"))

	var got cachedUser
	found, err := GetJSON(context.Background(), "user:6", &got)
	assert.False(t, found)
	assert.Error(t, err)
}
