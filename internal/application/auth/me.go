package auth

import (
	"context"

	"github.com/smarteval/auth-service/internal/domain"
)

// GetUserByID is a plain lookup with no side effects.
func (s *Service) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
