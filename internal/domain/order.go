package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Order represents one canteen bill as served by the staff API.
type Order struct {
	ID          int             `json:"-"`
	BillNumber  string          `json:"billNumber"`
	StudentName string          `json:"studentName,omitempty"`
	Student     *Student        `json:"student,omitempty"`
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      Status          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
	ReadyAt     *time.Time      `json:"readyAt,omitempty"`
}

// Student is the customer reference some backend responses nest instead of
// the flat studentName field.
type Student struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// OrderItem is one line of a bill.
type OrderItem struct {
	ID       int             `json:"-"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CustomerName resolves the display name regardless of which of the two
// customer fields the backend populated.
func (o *Order) CustomerName() string {
	if o.StudentName != "" {
		return o.StudentName
	}
	if o.Student != nil {
		return o.Student.Name
	}
	return "N/A"
}

// DisplayNumber is the short form of the bill number shown to staff: the
// bill without its 3-character prefix.
func (o *Order) DisplayNumber() string {
	if len(o.BillNumber) > 3 {
		return o.BillNumber[3:]
	}
	return o.BillNumber
}

// TotalItems sums the quantities across all items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// CalculateTotal recomputes the total amount from the items.
func (o *Order) CalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.TotalAmount = total
}

// TransitionTo moves the order to a new status.
func (o *Order) TransitionTo(newStatus Status) error {
	if !o.CanTransitionTo(newStatus) {
		return ErrInvalidStatusTransition
	}

	o.Status = newStatus
	if newStatus == StatusReady {
		now := time.Now()
		o.ReadyAt = &now
	}
	return nil
}

// CanTransitionTo checks whether the status change is allowed.
func (o *Order) CanTransitionTo(newStatus Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending:   {StatusPaid, StatusCancelled},
		StatusPaid:      {StatusReady, StatusCancelled},
		StatusReady:     {StatusCollected},
		StatusCollected: {},
		StatusCancelled: {},
	}

	for _, s := range validTransitions[o.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// PendingQueue filters the authoritative order list down to the paid bills
// awaiting preparation, oldest first. The input slice is left untouched.
func PendingQueue(orders []Order) []Order {
	queue := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == StatusPaid {
			queue = append(queue, o)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].OrderDate.Before(queue[j].OrderDate)
	})
	return queue
}
