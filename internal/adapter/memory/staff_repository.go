package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// StaffRepository keeps staff accounts in memory, keyed by lowercased email.
type StaffRepository struct {
	mu     sync.RWMutex
	staff  map[string]*domain.Staff
	nextID int
}

func NewStaffRepository() *StaffRepository {
	return &StaffRepository{
		staff:  make(map[string]*domain.Staff),
		nextID: 1,
	}
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.staff[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	copied := *member
	return &copied, nil
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staff.ID = r.nextID
	r.nextID++

	stored := *staff
	r.staff[strings.ToLower(staff.Email)] = &stored
	return nil
}

var _ interfaces.StaffRepository = (*StaffRepository)(nil)
