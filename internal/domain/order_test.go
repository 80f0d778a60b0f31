package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(bill string, status Status, placed time.Time) Order {
	return Order{
		BillNumber:  bill,
		StudentName: "Ravi",
		Status:      status,
		OrderDate:   placed,
	}
}

func TestPendingQueueFiltersToPaid(t *testing.T) {
	base := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	orders := []Order{
		orderAt("JJ1001", StatusPaid, base),
		orderAt("JJ1002", StatusPending, base.Add(time.Minute)),
		orderAt("JJ1003", StatusReady, base.Add(2*time.Minute)),
		orderAt("JJ1004", StatusPaid, base.Add(3*time.Minute)),
		orderAt("JJ1005", StatusCancelled, base.Add(4*time.Minute)),
	}

	queue := PendingQueue(orders)

	require.Len(t, queue, 2)
	for _, o := range queue {
		assert.Equal(t, StatusPaid, o.Status)
	}
}

func TestPendingQueueSortsOldestFirst(t *testing.T) {
	base := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	orders := []Order{
		orderAt("JJ1003", StatusPaid, base.Add(20*time.Minute)),
		orderAt("JJ1001", StatusPaid, base),
		orderAt("JJ1002", StatusPaid, base.Add(10*time.Minute)),
	}

	queue := PendingQueue(orders)

	require.Len(t, queue, 3)
	assert.Equal(t, "JJ1001", queue[0].BillNumber)
	assert.Equal(t, "JJ1002", queue[1].BillNumber)
	assert.Equal(t, "JJ1003", queue[2].BillNumber)
}

func TestPendingQueueLeavesInputUntouched(t *testing.T) {
	base := time.Now()
	orders := []Order{
		orderAt("JJ1002", StatusPaid, base.Add(time.Minute)),
		orderAt("JJ1001", StatusPaid, base),
	}

	_ = PendingQueue(orders)

	assert.Equal(t, "JJ1002", orders[0].BillNumber)
}

func TestCustomerNameFallsBackToNestedStudent(t *testing.T) {
	flat := Order{StudentName: "Ravi"}
	nested := Order{Student: &Student{Name: "Priya"}}
	neither := Order{}

	assert.Equal(t, "Ravi", flat.CustomerName())
	assert.Equal(t, "Priya", nested.CustomerName())
	assert.Equal(t, "N/A", neither.CustomerName())
}

func TestDisplayNumberStripsPrefix(t *testing.T) {
	assert.Equal(t, "1001", (&Order{BillNumber: "JJC1001"}).DisplayNumber())
	assert.Equal(t, "JJ", (&Order{BillNumber: "JJ"}).DisplayNumber())
}

func TestTotalItemsSumsQuantities(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Name: "Dosa", Quantity: 2},
		{Name: "Coffee", Quantity: 3},
	}}
	assert.Equal(t, 5, o.TotalItems())
}

func TestCalculateTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Name: "Dosa", Quantity: 2, Price: decimal.NewFromInt(60)},
		{Name: "Coffee", Quantity: 1, Price: decimal.NewFromInt(25)},
	}}
	o.CalculateTotal()
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(145)), "got %s", o.TotalAmount)
}

func TestStatusTransitions(t *testing.T) {
	o := Order{Status: StatusPaid}

	require.NoError(t, o.TransitionTo(StatusReady))
	assert.Equal(t, StatusReady, o.Status)
	require.NotNil(t, o.ReadyAt)

	// Ready bills cannot be marked ready again.
	assert.ErrorIs(t, o.TransitionTo(StatusReady), ErrInvalidStatusTransition)
}

func TestPendingOrdersCannotBeMarkedReady(t *testing.T) {
	o := Order{Status: StatusPending}
	assert.ErrorIs(t, o.TransitionTo(StatusReady), ErrInvalidStatusTransition)
}
