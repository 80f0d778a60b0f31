package interfaces

import (
	"context"

	"github.com/sharugesh2303/chef/internal/domain"
)

// Server-side services (business logic behind the HTTP handlers).

type StaffAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (string, bool)
	Logout(ctx context.Context, token string)
}

type StaffOrderService interface {
	ListPaidOrders(ctx context.Context) ([]domain.Order, error)
	MarkReady(ctx context.Context, billNumber, markedBy string) (*domain.Order, error)
}
