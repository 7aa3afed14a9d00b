package inbox

import (
	"context"
	"sync"
	"time"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// MemoryInbox is a bounded in-memory inbox. When the cap is reached the
// oldest item is evicted to make room, so a burst of extension submissions
// can never grow the map without limit.
type MemoryInbox struct {
	mu       sync.Mutex
	items    map[string]*models.InboxItem
	order    []string
	maxItems int
	ttl      time.Duration
}

// NewMemoryInbox returns an inbox bounded by cfg.Inbox.MaxItems.
func NewMemoryInbox(cfg *config.Config) *MemoryInbox {
	max := cfg.Inbox.MaxItems
	if max <= 0 {
		max = 50
	}
	return &MemoryInbox{
		items:    make(map[string]*models.InboxItem),
		maxItems: max,
		ttl:      cfg.Inbox.TTL,
	}
}

func (m *MemoryInbox) Put(_ context.Context, item *models.InboxItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireLocked()

	token := newToken()
	item.Token = token
	if item.ReceivedAt.IsZero() {
		item.ReceivedAt = time.Now().UTC()
	}

	if len(m.order) >= m.maxItems {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.items, oldest)
	}

	stored := *item
	m.items[token] = &stored
	m.order = append(m.order, token)
	return token, nil
}

func (m *MemoryInbox) Get(_ context.Context, token string) (*models.InboxItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireLocked()

	item, ok := m.items[token]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *MemoryInbox) Ping(context.Context) error { return nil }

func (m *MemoryInbox) Close() error { return nil }

// expireLocked drops items older than the TTL. Caller holds the lock.
func (m *MemoryInbox) expireLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := time.Now().UTC().Add(-m.ttl)
	kept := m.order[:0]
	for _, token := range m.order {
		item := m.items[token]
		if item != nil && item.ReceivedAt.Before(cutoff) {
			delete(m.items, token)
			continue
		}
		kept = append(kept, token)
	}
	m.order = kept
}
