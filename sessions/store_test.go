package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore(8 * time.Hour)

	tableID := uint(12)
	id := store.Create(Session{
		CustomerID: 1,
		Name:       "Nok",
		Phone:      "0891234567",
		ShopLabel:  "mybar",
		TableLabel: "12",
		TableID:    &tableID,
	})
	assert.NotEmpty(t, id)

	sess, ok := store.Get(id)
	assert.True(t, ok)
	assert.Equal(t, uint(1), sess.CustomerID)
	assert.Equal(t, "Nok", sess.Name)
	assert.Equal(t, "12", sess.TableLabel)
	if assert.NotNil(t, sess.TableID) {
		assert.Equal(t, uint(12), *sess.TableID)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := NewStore(8 * time.Hour)
	_, ok := store.Get("does-not-exist")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	now := time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC)
	store := NewStoreWithClock(time.Hour, func() time.Time { return now })

	id := store.Create(Session{CustomerID: 1})

	// Masih hidup tepat sebelum TTL
	now = now.Add(59 * time.Minute)
	_, ok := store.Get(id)
	assert.True(t, ok)

	// Lewat TTL -> hilang, dan entry ikut terhapus
	now = now.Add(2 * time.Minute)
	_, ok = store.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestUpdateLastWriteWins(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create(Session{CustomerID: 1, TableLabel: "5"})

	ok := store.Update(id, func(s *Session) {
		s.TableLabel = "VIP-A"
		s.TableID = nil
	})
	assert.True(t, ok)

	sess, found := store.Get(id)
	assert.True(t, found)
	assert.Equal(t, "VIP-A", sess.TableLabel)
}

func TestDestroy(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create(Session{CustomerID: 1})

	store.Destroy(id)
	_, ok := store.Get(id)
	assert.False(t, ok)
}

func TestSweepEvictsExpired(t *testing.T) {
	now := time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC)
	store := NewStoreWithClock(time.Hour, func() time.Time { return now })

	store.Create(Session{CustomerID: 1})
	store.Create(Session{CustomerID: 2})
	assert.Equal(t, 2, store.Len())

	now = now.Add(2 * time.Hour)
	store.sweep()
	assert.Equal(t, 0, store.Len())
}
