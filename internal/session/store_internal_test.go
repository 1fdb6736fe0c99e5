package session

import (
	"log/slog"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	logger := slog.Default()

	t.Run("get creates a session on first use", func(t *testing.T) {
		store := NewStore(logger, time.Hour, clock.NewMock())
		token := NewToken()

		book := store.Get(token)

		require.NotNil(t, book)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("get returns the same book for the same token", func(t *testing.T) {
		store := NewStore(logger, time.Hour, clock.NewMock())
		token := NewToken()

		book := store.Get(token)
		_, err := book.Add("Alice", "Paris")
		require.NoError(t, err)

		again := store.Get(token)
		assert.Equal(t, 1, again.Len())
		assert.Equal(t, 1, store.Len())
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		store := NewStore(logger, time.Hour, clock.NewMock())

		first := store.Get(NewToken())
		second := store.Get(NewToken())
		_, err := first.Add("Alice", "Paris")
		require.NoError(t, err)

		assert.Equal(t, 0, second.Len())
		assert.Equal(t, 2, store.Len())
	})

	t.Run("reset empties the book but keeps the session", func(t *testing.T) {
		store := NewStore(logger, time.Hour, clock.NewMock())
		token := NewToken()
		book := store.Get(token)
		_, err := book.Add("Alice", "Paris")
		require.NoError(t, err)

		store.Reset(token)

		assert.Equal(t, 0, store.Get(token).Len())
		assert.Equal(t, 1, store.Len())
	})

	t.Run("reset of an unknown token is a no-op", func(t *testing.T) {
		store := NewStore(logger, time.Hour, clock.NewMock())

		store.Reset("no-such-session")

		assert.Equal(t, 0, store.Len())
	})
}

func TestSweep(t *testing.T) {
	logger := slog.Default()
	ctx := t.Context()

	t.Run("evicts sessions idle past the TTL", func(t *testing.T) {
		mock := clock.NewMock()
		store := NewStore(logger, time.Hour, mock)
		store.Get(NewToken())

		mock.Add(61 * time.Minute)
		store.sweep(ctx)

		assert.Equal(t, 0, store.Len())
	})

	t.Run("keeps sessions within the TTL", func(t *testing.T) {
		mock := clock.NewMock()
		store := NewStore(logger, time.Hour, mock)
		store.Get(NewToken())

		mock.Add(59 * time.Minute)
		store.sweep(ctx)

		assert.Equal(t, 1, store.Len())
	})

	t.Run("activity refreshes the idle timer", func(t *testing.T) {
		mock := clock.NewMock()
		store := NewStore(logger, time.Hour, mock)
		token := NewToken()
		store.Get(token)

		mock.Add(45 * time.Minute)
		store.Get(token) // touch
		mock.Add(45 * time.Minute)
		store.sweep(ctx)

		assert.Equal(t, 1, store.Len())
	})

	t.Run("only idle sessions are dropped", func(t *testing.T) {
		mock := clock.NewMock()
		store := NewStore(logger, time.Hour, mock)
		stale := NewToken()
		fresh := NewToken()
		store.Get(stale)

		mock.Add(50 * time.Minute)
		store.Get(fresh)
		mock.Add(20 * time.Minute)
		store.sweep(ctx)

		assert.Equal(t, 1, store.Len())
		fresh2 := store.Get(fresh)
		require.NotNil(t, fresh2)
	})
}
