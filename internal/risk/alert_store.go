package risk

import (
	"sync"

	"payment-orchestrator/internal/core/domain"
)

// RingAlertStore keeps the most recent alerts in a fixed-capacity ring.
// Once full, the oldest alert is overwritten.
type RingAlertStore struct {
	mu    sync.RWMutex
	buf   []*domain.RiskAlert
	next  int
	count int
}

// NewRingAlertStore creates a store holding at most capacity alerts.
func NewRingAlertStore(capacity int) *RingAlertStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &RingAlertStore{buf: make([]*domain.RiskAlert, capacity)}
}

// Append records the alert, evicting the oldest when full.
func (s *RingAlertStore) Append(alert *domain.RiskAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf[s.next] = alert
	s.next = (s.next + 1) % len(s.buf)
	if s.count < len(s.buf) {
		s.count++
	}
}

// Recent returns up to limit alerts, newest first.
func (s *RingAlertStore) Recent(limit int) []*domain.RiskAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.count == 0 {
		return nil
	}
	if limit > s.count {
		limit = s.count
	}

	out := make([]*domain.RiskAlert, 0, limit)
	for i := 1; i <= limit; i++ {
		out = append(out, s.buf[(s.next-i+len(s.buf))%len(s.buf)])
	}
	return out
}
