package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeFetcher struct {
	calls int
	data  []UnpaidOrder
	err   error
}

func (f *fakeFetcher) FetchUnpaidOrders(limit int) ([]UnpaidOrder, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func sampleOrders() []UnpaidOrder {
	no := 7
	return []UnpaidOrder{
		{OrderID: 101, TableLabel: "mybar, 7", TableNo: &no, AmountDue: 250.50, State: "draft"},
	}
}

func TestCacheServesFreshEntry(t *testing.T) {
	fetcher := &fakeFetcher{data: sampleOrders()}
	cache := NewUnpaidCache(fetcher, 15*time.Second)

	now := time.Date(2025, 10, 2, 20, 0, 0, 0, time.UTC)
	cache.Now = func() time.Time { return now }

	list, cached, err := cache.GetUnpaidOrders()
	assert.NoError(t, err)
	assert.False(t, cached)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, fetcher.calls)

	// Masih dalam TTL -> dilayani dari cache, tanpa fetch kedua
	now = now.Add(10 * time.Second)
	list, cached, err = cache.GetUnpaidOrders()
	assert.NoError(t, err)
	assert.True(t, cached)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, fetcher.calls)
}

func TestCacheExpires(t *testing.T) {
	fetcher := &fakeFetcher{data: sampleOrders()}
	cache := NewUnpaidCache(fetcher, 15*time.Second)

	now := time.Date(2025, 10, 2, 20, 0, 0, 0, time.UTC)
	cache.Now = func() time.Time { return now }

	_, _, err := cache.GetUnpaidOrders()
	assert.NoError(t, err)

	now = now.Add(16 * time.Second)
	_, cached, err := cache.GetUnpaidOrders()
	assert.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, fetcher.calls)
}

// Snapshot kosong tidak dianggap hit walau masih segar: fetch ulang.
func TestCacheEmptySnapshotRefetches(t *testing.T) {
	fetcher := &fakeFetcher{data: nil}
	cache := NewUnpaidCache(fetcher, 15*time.Second)

	now := time.Date(2025, 10, 2, 20, 0, 0, 0, time.UTC)
	cache.Now = func() time.Time { return now }

	_, cached, err := cache.GetUnpaidOrders()
	assert.NoError(t, err)
	assert.False(t, cached)

	now = now.Add(time.Second)
	_, cached, err = cache.GetUnpaidOrders()
	assert.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, fetcher.calls)
}

func TestCacheUpstreamError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("odoo down")}
	cache := NewUnpaidCache(fetcher, 15*time.Second)

	_, _, err := cache.GetUnpaidOrders()
	assert.Error(t, err)
}
