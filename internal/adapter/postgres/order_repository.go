package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (bill_number, student_name, status, total_amount, order_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		order.BillNumber, order.CustomerName(), order.Status, order.TotalAmount.StringFixed(2), order.OrderDate,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, name, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err = tx.QueryRow(ctx, itemQuery,
			order.ID, order.Items[i].Name, order.Items[i].Quantity, order.Items[i].Price.StringFixed(2),
		).Scan(&order.Items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByBillNumber(ctx context.Context, billNumber string) (*domain.Order, error) {
	query := `
		SELECT id, bill_number, student_name, status, total_amount::text, order_date, ready_at
		FROM orders
		WHERE bill_number = $1
	`

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, billNumber))
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	query := `
		SELECT id, bill_number, student_name, status, total_amount::text, order_date, ready_at
		FROM orders
		WHERE status = $1
		ORDER BY order_date ASC
	`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = $1, ready_at = $2
		WHERE id = $3
	`
	if err := r.db.Exec(ctx, query, order.Status, order.ReadyAt, order.ID); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *orderRepository) GenerateBillNumber(ctx context.Context) (string, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("JJ%d", 1001+n), nil
}

func (r *orderRepository) scanOrder(row Row) (*domain.Order, error) {
	var (
		order  domain.Order
		amount string
		ready  *time.Time
	)

	err := row.Scan(&order.ID, &order.BillNumber, &order.StudentName, &order.Status, &amount, &order.OrderDate, &ready)
	if err != nil {
		return nil, err
	}

	order.TotalAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid total amount %q: %w", amount, err)
	}
	order.ReadyAt = ready

	return &order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `SELECT id, name, quantity, price::text FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item  domain.OrderItem
			price string
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &price); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Price, err = decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("invalid item price %q: %w", price, err)
		}
		order.Items = append(order.Items, item)
	}

	return nil
}
