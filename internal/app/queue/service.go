package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// DefaultInterval is the poll cadence between refreshes.
const DefaultInterval = 10 * time.Second

// Service keeps a local queue of paid orders consistent with the backend
// under periodic polling and concurrent mark-ready actions.
//
// Overlapping refreshes are resolved by issue order: each refresh takes a
// monotonically increasing sequence number and only applies its result if no
// later-issued refresh has applied first, so a slow early response can never
// overwrite newer data.
type Service struct {
	gateway  interfaces.OrderGateway
	sessions interfaces.SessionStore
	logger   logger.Logger
	interval time.Duration
	onExpire func()

	mu       sync.Mutex
	queue    []domain.Order
	inflight int
	lastErr  error
	issued   uint64
	applied  uint64
	expired  bool
}

// NewService builds a synchronizer. onExpire is invoked exactly once, after
// the session token has been cleared, when any backend call reports an
// authentication failure; the instance is terminal from then on.
func NewService(gw interfaces.OrderGateway, sessions interfaces.SessionStore, lgr logger.Logger, interval time.Duration, onExpire func()) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		gateway:  gw,
		sessions: sessions,
		logger:   lgr,
		interval: interval,
		onExpire: onExpire,
	}
}

// Refresh fetches the authoritative order list and atomically replaces the
// queue with the paid orders sorted oldest first. On failure the previous
// queue stays visible; only the error indicator changes.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.expired {
		s.mu.Unlock()
		return domain.ErrSessionExpired
	}
	s.issued++
	seq := s.issued
	s.inflight++
	s.mu.Unlock()

	orders, err := s.gateway.ListOrders(ctx)

	s.mu.Lock()
	s.inflight--

	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			fire := !s.expired
			s.expired = true
			s.mu.Unlock()
			if fire {
				s.expire()
			}
			return domain.ErrSessionExpired
		}
		// A later refresh may already have applied a clean result; its
		// state wins over this stale failure.
		if seq > s.applied {
			s.lastErr = err
		}
		s.mu.Unlock()
		return err
	}

	if seq > s.applied {
		s.queue = domain.PendingQueue(orders)
		s.applied = seq
		s.lastErr = nil
	}
	s.mu.Unlock()

	s.logger.Debug("queue_refreshed", "Order queue refreshed", map[string]interface{}{"orders": len(orders)})
	return nil
}

// MarkReady tells the backend the bill is prepared and removes it from the
// local queue immediately on success, without waiting for the next poll.
// A bill not currently in the queue is a benign failure: the action was
// already taken, either here or through another channel.
func (s *Service) MarkReady(ctx context.Context, billNumber string) error {
	s.mu.Lock()
	if s.expired {
		s.mu.Unlock()
		return domain.ErrSessionExpired
	}
	if !s.containsLocked(billNumber) {
		s.mu.Unlock()
		return domain.ErrOrderNotFound
	}
	s.mu.Unlock()

	if err := s.gateway.MarkReady(ctx, billNumber); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.mu.Lock()
			fire := !s.expired
			s.expired = true
			s.mu.Unlock()
			if fire {
				s.expire()
			}
			return domain.ErrSessionExpired
		}
		// Surfaced to the caller for per-bill display, never merged into
		// the global refresh error.
		return err
	}

	s.mu.Lock()
	kept := make([]domain.Order, 0, len(s.queue))
	for _, o := range s.queue {
		if o.BillNumber != billNumber {
			kept = append(kept, o)
		}
	}
	s.queue = kept
	s.mu.Unlock()

	s.logger.Info("order_marked_ready", "Bill marked ready", map[string]interface{}{"bill_number": billNumber})
	return nil
}

// Run polls Refresh on a fixed interval, starting immediately, until ctx is
// cancelled or the session expires. Failed ticks retry on the next tick; a
// longer retry cadence would only keep stale data visible longer.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("poll_started", "Order polling started", map[string]interface{}{"interval": s.interval.String()})

	if err := s.Refresh(ctx); err != nil && !errors.Is(err, domain.ErrSessionExpired) {
		s.logger.Error("refresh_failed", "Initial refresh failed", nil, err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("poll_stopped", "Order polling stopped", nil)
			return
		case <-ticker.C:
			err := s.Refresh(ctx)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrSessionExpired):
				return
			default:
				s.logger.Error("refresh_failed", "Scheduled refresh failed", nil, err)
			}
		}
	}
}

// Queue returns a snapshot of the displayed queue.
func (s *Service) Queue() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.queue))
	copy(out, s.queue)
	return out
}

// Syncing reports whether a refresh is outstanding.
func (s *Service) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// LastError returns the most recent refresh failure, or nil after a
// successful refresh. Session expiry never appears here.
func (s *Service) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Expired reports whether the session has been invalidated.
func (s *Service) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

func (s *Service) containsLocked(billNumber string) bool {
	for _, o := range s.queue {
		if o.BillNumber == billNumber {
			return true
		}
	}
	return false
}

func (s *Service) expire() {
	if err := s.sessions.Clear(); err != nil {
		s.logger.Error("session_clear_failed", "Failed to clear stored token", nil, err)
	}
	s.logger.Info("session_expired", "Session rejected by backend, logging out", nil)
	if s.onExpire != nil {
		s.onExpire()
	}
}
