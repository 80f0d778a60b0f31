package interfaces

import (
	"context"

	"github.com/sharugesh2303/chef/internal/domain"
)

// Server-side repositories (adapter/postgres, adapter/memory).

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByBillNumber(ctx context.Context, billNumber string) (*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	GenerateBillNumber(ctx context.Context) (string, error)
}

type StaffRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Staff, error)
	Create(ctx context.Context, staff *domain.Staff) error
}

// TokenStore maps issued bearer tokens to staff emails for the lifetime of
// the server process.
type TokenStore interface {
	Issue(email string) string
	Lookup(token string) (string, bool)
	Revoke(token string)
}
