package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// OrderRepository is the in-memory storage used by the dev server and tests.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	nextID int
	seq    int
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
		nextID: 1,
		seq:    1000,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.BillNumber == "" {
		return fmt.Errorf("order has no bill number")
	}
	if _, exists := r.orders[order.BillNumber]; exists {
		return fmt.Errorf("bill number %s already exists", order.BillNumber)
	}

	order.ID = r.nextID
	r.nextID++

	stored := *order
	r.orders[order.BillNumber] = &stored
	return nil
}

func (r *OrderRepository) FindByBillNumber(ctx context.Context, billNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[billNumber]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Order
	for _, order := range r.orders {
		if order.Status == status {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.BillNumber]; !ok {
		return domain.ErrOrderNotFound
	}
	stored := *order
	r.orders[order.BillNumber] = &stored
	return nil
}

func (r *OrderRepository) GenerateBillNumber(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	return fmt.Sprintf("JJ%d", r.seq), nil
}

var _ interfaces.OrderRepository = (*OrderRepository)(nil)
