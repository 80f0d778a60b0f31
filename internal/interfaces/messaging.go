package interfaces

import (
	"context"
	"time"

	"github.com/sharugesh2303/chef/internal/domain"
)

// OrderReadyMessage is published when a bill is marked ready so collection
// displays and student notifications can react.
type OrderReadyMessage struct {
	BillNumber  string        `json:"bill_number"`
	StudentName string        `json:"student_name"`
	OldStatus   domain.Status `json:"old_status"`
	NewStatus   domain.Status `json:"new_status"`
	MarkedBy    string        `json:"marked_by"`
	Timestamp   time.Time     `json:"timestamp"`
}

// MessagePublisher is the messaging side of the server (adapter/rabbitmq).
type MessagePublisher interface {
	PublishOrderReady(ctx context.Context, msg OrderReadyMessage) error
}
