package domain

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Staff represents a kitchen staff member allowed to work the dashboard.
type Staff struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewStaff creates a staff member with a freshly hashed password.
func NewStaff(name, email, password string) (*Staff, error) {
	if email == "" {
		return nil, errors.New("staff email is required")
	}
	if password == "" {
		return nil, errors.New("staff password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Staff{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}, nil
}

// CheckPassword reports whether the plain password matches the stored hash.
func (s *Staff) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
}
