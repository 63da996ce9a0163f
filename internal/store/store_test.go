package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(rdb, "test:", 0),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
			got, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(got))

			require.NoError(t, s.Set(ctx, "k", []byte("v2")))
			got, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))

			require.NoError(t, s.Remove(ctx, "k"))
			_, err = s.Get(ctx, "k")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Remove(ctx, "never-set"))
		})
	}
}

func TestStore_AppendKeepsNewest(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.List(ctx, "missing")
			require.NoError(t, err)
			assert.Empty(t, got)

			for i := 1; i <= 5; i++ {
				require.NoError(t, s.Append(ctx, "h", []byte(fmt.Sprint(i)), 3))
			}
			got, err = s.List(ctx, "h")
			require.NoError(t, err)
			assert.Equal(t, [][]byte{[]byte("3"), []byte("4"), []byte("5")}, got)

			require.NoError(t, s.Remove(ctx, "h"))
			got, err = s.List(ctx, "h")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStore_ConcurrentAppendsAreNotLost(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const writers = 20

			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, s.Append(ctx, "orders", []byte(fmt.Sprint(i)), 0))
				}(i)
			}
			wg.Wait()

			got, err := s.List(ctx, "orders")
			require.NoError(t, err)
			assert.Len(t, got, writers)
		})
	}
}

func TestRedisStore_AppendSetsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := NewRedisStore(rdb, "session:", time.Hour)
	require.NoError(t, s.Append(context.Background(), "orders:abc", []byte("x"), 10))

	assert.Equal(t, time.Hour, mr.TTL("session:orders:abc"))
	list, err := mr.List("session:orders:abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, list)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")

	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := NewRedisStore(rdb, "session:", time.Hour)
	require.NoError(t, s.Set(context.Background(), "abc", []byte("x")))

	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	mr.FastForward(2 * time.Hour)
	_, err := s.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
