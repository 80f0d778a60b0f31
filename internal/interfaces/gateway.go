package interfaces

import (
	"context"

	"github.com/sharugesh2303/chef/internal/domain"
)

// OrderGateway is the client-side view of the canteen backend.
type OrderGateway interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	MarkReady(ctx context.Context, billNumber string) error
}

// SessionStore owns the bearer token. Authentication state everywhere else
// is derived solely from token presence.
type SessionStore interface {
	Save(token string) error
	Token() (string, bool)
	Clear() error
}
