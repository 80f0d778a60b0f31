package staff

import (
	"context"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// Service authenticates kitchen staff and manages their bearer tokens.
type Service struct {
	repo   interfaces.StaffRepository
	tokens interfaces.TokenStore
	logger logger.Logger
}

func NewService(repo interfaces.StaffRepository, tokens interfaces.TokenStore, lgr logger.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: lgr,
	}
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	member, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("login_unknown_email", "Login attempt for unknown email", map[string]interface{}{"email": email})
		return "", domain.ErrInvalidCredentials
	}

	if !member.CheckPassword(password) {
		s.logger.Debug("login_bad_password", "Password mismatch", map[string]interface{}{"email": email})
		return "", domain.ErrInvalidCredentials
	}

	token := s.tokens.Issue(member.Email)
	s.logger.Info("staff_logged_in", "Staff member logged in", map[string]interface{}{"email": member.Email})
	return token, nil
}

// Authenticate resolves a bearer token to the staff email it was issued for.
func (s *Service) Authenticate(ctx context.Context, token string) (string, bool) {
	return s.tokens.Lookup(token)
}

// Logout revokes a token. Revoking an unknown token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) {
	s.tokens.Revoke(token)
}

var _ interfaces.StaffAuthService = (*Service)(nil)
