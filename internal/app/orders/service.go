package orders

import (
	"context"
	"time"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// Service is the staff-facing order logic behind the HTTP handlers.
type Service struct {
	repo      interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

// NewService builds the service. publisher may be nil when no broker is
// configured; ready notifications are then skipped.
func NewService(repo interfaces.OrderRepository, publisher interfaces.MessagePublisher, lgr logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    lgr,
	}
}

// ListPaidOrders returns the bills awaiting preparation.
func (s *Service) ListPaidOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListByStatus(ctx, domain.StatusPaid)
}

// MarkReady transitions a paid bill to Ready and notifies subscribers.
func (s *Service) MarkReady(ctx context.Context, billNumber, markedBy string) (*domain.Order, error) {
	order, err := s.repo.FindByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	oldStatus := order.Status
	if err := order.TransitionTo(domain.StatusReady); err != nil {
		s.logger.Debug("mark_ready_rejected", "Bill not in a markable state", map[string]interface{}{
			"bill_number": billNumber,
			"status":      string(oldStatus),
		})
		return nil, err
	}

	if err := s.repo.Update(ctx, order); err != nil {
		s.logger.Error("db_update_failed", "Failed to persist ready status", nil, err)
		return nil, err
	}

	// Notification failures must not fail the action itself.
	if s.publisher != nil {
		msg := interfaces.OrderReadyMessage{
			BillNumber:  order.BillNumber,
			StudentName: order.CustomerName(),
			OldStatus:   oldStatus,
			NewStatus:   order.Status,
			MarkedBy:    markedBy,
			Timestamp:   time.Now(),
		}
		if err := s.publisher.PublishOrderReady(ctx, msg); err != nil {
			s.logger.Error("notify_publish_failed", "Failed to publish ready notification", map[string]interface{}{
				"bill_number": order.BillNumber,
			}, err)
		}
	}

	s.logger.Info("order_ready", "Bill marked ready", map[string]interface{}{
		"bill_number": order.BillNumber,
		"marked_by":   markedBy,
	})
	return order, nil
}

var _ interfaces.StaffOrderService = (*Service)(nil)
