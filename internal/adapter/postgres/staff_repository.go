package postgres

import (
	"context"
	"strings"

	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

type staffRepository struct {
	db DB
}

func NewStaffRepository(db DB) interfaces.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM staff
		WHERE lower(email) = $1
	`

	var member domain.Staff
	err := r.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&member.ID, &member.Name, &member.Email, &member.PasswordHash, &member.CreatedAt,
	)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &member, nil
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	query := `
		INSERT INTO staff (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		staff.Name, staff.Email, staff.PasswordHash, staff.CreatedAt,
	).Scan(&staff.ID)
}
