package services

import (
	"sync"
	"time"
)

// UnpaidFetcher abstraksi di atas OdooClient supaya cache bisa dites dengan
// upstream palsu.
type UnpaidFetcher interface {
	FetchUnpaidOrders(limit int) ([]UnpaidOrder, error)
}

// cacheFetchSize: cache sengaja over-fetch dengan ukuran tetap yang besar
// supaya limit berapapun bisa dilayani dari satu entry.
const cacheFetchSize = 300

// UnpaidCache menahan satu entry hasil fetch upstream selama TTL untuk
// membatasi laju RPC dari dashboard yang polling.
type UnpaidCache struct {
	fetcher UnpaidFetcher
	ttl     time.Duration

	// Now bisa diganti di test untuk memajukan jam.
	Now func() time.Time

	mu        sync.Mutex
	fetchedAt time.Time
	data      []UnpaidOrder
}

func NewUnpaidCache(fetcher UnpaidFetcher, ttl time.Duration) *UnpaidCache {
	return &UnpaidCache{
		fetcher: fetcher,
		ttl:     ttl,
		Now:     time.Now,
	}
}

// GetUnpaidOrders melayani dari cache selama entry masih segar dan tidak
// kosong; selain itu fetch sinkron lalu ganti entry. Miss bersamaan tidak
// di-dedup (single-flight): masing-masing boleh fetch sendiri, konkurensi
// dashboard admin rendah.
func (c *UnpaidCache) GetUnpaidOrders() ([]UnpaidOrder, bool, error) {
	now := c.Now()

	c.mu.Lock()
	if now.Sub(c.fetchedAt) < c.ttl && len(c.data) > 0 {
		data := c.data
		c.mu.Unlock()
		return data, true, nil
	}
	c.mu.Unlock()

	list, err := c.fetcher.FetchUnpaidOrders(cacheFetchSize)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.fetchedAt = now
	c.data = list
	c.mu.Unlock()

	return list, false, nil
}
