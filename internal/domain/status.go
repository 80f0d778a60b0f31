package domain

type Status string

const (
	StatusPending   Status = "Pending"
	StatusPaid      Status = "Paid"
	StatusReady     Status = "Ready"
	StatusCollected Status = "Collected"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus validates a status value coming off the wire.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusReady, StatusCollected, StatusCancelled:
		return Status(s), true
	}
	return "", false
}
