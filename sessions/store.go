package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session adalah state kunjungan satu tamu: identitas hasil resolve plus
// konteks meja/shop. Hanya hidup di memori selama TTL sejak dibuat.
type Session struct {
	ID         string
	CustomerID uint
	Name       string
	Phone      string
	ShopLabel  string
	TableLabel string
	TableID    *uint
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Store menyimpan session per proses dengan expiry TTL tetap (tanpa sliding
// renewal). Clock bisa di-inject supaya test mengontrol expiry.
type Store struct {
	mu   sync.RWMutex
	data map[string]Session
	ttl  time.Duration
	now  func() time.Time

	stopCh chan struct{}
}

func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, time.Now)
}

func NewStoreWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		data:   make(map[string]Session),
		ttl:    ttl,
		now:    now,
		stopCh: make(chan struct{}),
	}
}

// Create menyimpan session baru dan mengembalikan id opaque untuk cookie.
func (s *Store) Create(sess Session) string {
	id := uuid.NewString()
	now := s.now()

	sess.ID = id
	sess.CreatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	s.data[id] = sess
	s.mu.Unlock()

	return id
}

// Get mengembalikan snapshot session. Session kadaluarsa dievict di sini;
// janitor hanya menjaga map tidak membengkak.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		s.Destroy(id)
		return Session{}, false
	}
	return sess, true
}

// Update menulis ulang field session (last-write-wins; satu tab browser
// melakukan ini secara serial).
func (s *Store) Update(id string, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok || s.now().After(sess.ExpiresAt) {
		return false
	}
	fn(&sess)
	s.data[id] = sess
	return true
}

func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Start menjalankan janitor sweep di background.
func (s *Store) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
}

func (s *Store) Stop() {
	close(s.stopCh)
}

func (s *Store) sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.data {
		if now.After(sess.ExpiresAt) {
			delete(s.data, id)
		}
	}
}
