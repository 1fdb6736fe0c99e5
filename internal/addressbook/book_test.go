package addressbook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vportier/barycentre/internal/addressbook"
	"github.com/vportier/barycentre/internal/models"
)

func TestAdd(t *testing.T) {
	t.Parallel()

	t.Run("appends a pending entry", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()

		id, err := book.Add("Alice", "10 Rue de Rivoli, Paris")

		require.NoError(t, err)
		entry, ok := book.Entry(id)
		require.True(t, ok)
		assert.Equal(t, "Alice", entry.Name)
		assert.Equal(t, "10 Rue de Rivoli, Paris", entry.Address)
		assert.Equal(t, models.StatusPending, entry.Status)
		assert.Nil(t, entry.Coordinate)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()

		id, err := book.Add("  Bob ", " Lyon ")

		require.NoError(t, err)
		entry, _ := book.Entry(id)
		assert.Equal(t, "Bob", entry.Name)
		assert.Equal(t, "Lyon", entry.Address)
	})

	t.Run("rejects empty name without mutating the book", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()

		_, err := book.Add("   ", "Lyon")

		require.ErrorIs(t, err, addressbook.ErrEmptyName)
		assert.Equal(t, 0, book.Len())
	})

	t.Run("rejects empty address without mutating the book", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()

		_, err := book.Add("Alice", "")

		require.ErrorIs(t, err, addressbook.ErrEmptyAddress)
		assert.Equal(t, 0, book.Len())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		names := []string{"Alice", "Bob", "Chloé"}
		for _, name := range names {
			_, err := book.Add(name, name+" street")
			require.NoError(t, err)
		}

		entries := book.List()
		require.Len(t, entries, 3)
		for i, name := range names {
			assert.Equal(t, name, entries[i].Name)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("deletes the entry", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		id, err := book.Add("Alice", "Paris")
		require.NoError(t, err)

		book.Remove(id)

		assert.Equal(t, 0, book.Len())
		_, ok := book.Entry(id)
		assert.False(t, ok)
	})

	t.Run("unknown ID is a no-op", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		_, err := book.Add("Alice", "Paris")
		require.NoError(t, err)

		book.Remove(uuid.New())

		assert.Equal(t, 1, book.Len())
	})
}

func TestTransitions(t *testing.T) {
	t.Parallel()

	t.Run("resolve sets coordinates once", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		id, err := book.Add("Alice", "Paris")
		require.NoError(t, err)

		applied := book.Resolve(id, models.Coordinates{Latitude: 48.85, Longitude: 2.35})

		require.True(t, applied)
		entry, _ := book.Entry(id)
		assert.Equal(t, models.StatusResolved, entry.Status)
		require.NotNil(t, entry.Coordinate)
		assert.InDelta(t, 48.85, entry.Coordinate.Latitude, 1e-9)

		// A second result for a settled entry is discarded.
		assert.False(t, book.Resolve(id, models.Coordinates{Latitude: 1, Longitude: 1}))
		assert.False(t, book.Fail(id, "late failure"))
	})

	t.Run("fail records the reason", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		id, err := book.Add("Bob", "nowhere at all")
		require.NoError(t, err)

		applied := book.Fail(id, "address not found")

		require.True(t, applied)
		entry, _ := book.Entry(id)
		assert.Equal(t, models.StatusFailed, entry.Status)
		assert.Equal(t, "address not found", entry.FailReason)
		assert.Nil(t, entry.Coordinate)
	})

	t.Run("result for a removed entry is discarded", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		id, err := book.Add("Alice", "Paris")
		require.NoError(t, err)
		book.Remove(id)

		assert.False(t, book.Resolve(id, models.Coordinates{Latitude: 1, Longitude: 2}))
		assert.Equal(t, 0, book.Len())
	})

	t.Run("pending lists only unresolved entries", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		first, _ := book.Add("Alice", "Paris")
		second, _ := book.Add("Bob", "Lyon")
		_, _ = book.Add("Chloé", "Marseille")

		book.Resolve(first, models.Coordinates{Latitude: 48.85, Longitude: 2.35})
		book.Fail(second, "not found")

		pending := book.Pending()
		require.Len(t, pending, 1)
		assert.Equal(t, "Chloé", pending[0].Name)
	})
}

func TestMidpoint(t *testing.T) {
	t.Parallel()

	t.Run("undefined below two resolved entries", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		id, _ := book.Add("Alice", "Paris")

		_, ok := book.Midpoint()
		assert.False(t, ok)

		book.Resolve(id, models.Coordinates{Latitude: 10, Longitude: 20})
		_, ok = book.Midpoint()
		assert.False(t, ok)
	})

	t.Run("excludes pending and failed entries", func(t *testing.T) {
		t.Parallel()
		book := addressbook.New()
		first, _ := book.Add("A", "a")
		second, _ := book.Add("B", "b")
		third, _ := book.Add("C", "c")
		_, _ = book.Add("D", "d") // stays pending

		book.Resolve(first, models.Coordinates{Latitude: 10, Longitude: 20})
		book.Resolve(second, models.Coordinates{Latitude: 20, Longitude: 30})
		book.Fail(third, "not found")

		mid, ok := book.Midpoint()

		require.True(t, ok)
		assert.InDelta(t, 15, mid.Latitude, 1e-9)
		assert.InDelta(t, 25, mid.Longitude, 1e-9)
	})
}
