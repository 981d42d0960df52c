package auth

import (
	"context"
	"strings"

	"github.com/smarteval/auth-service/internal/domain"
	"github.com/smarteval/auth-service/internal/logger"
)

// Register validates input, hashes the password and creates the user.
// The store enforces email uniqueness atomically; the GetByEmail lookup here
// only gives a friendlier fast path, the unique index is the real guarantee.
func (s *Service) Register(ctx context.Context, email, password, role string, profile map[string]any) (domain.User, error) {
	email = strings.TrimSpace(email)

	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}
	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole(role)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	} else if domain.KindOf(err) != domain.KindNotFound {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	if profile == nil {
		profile = map[string]any{}
	}

	u := domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Profile:      profile,
		Settings:     domain.DefaultSettings(),
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	if s.pub != nil {
		if perr := s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID: created.ID,
			Email:  created.Email,
			Role:   created.Role,
		}); perr != nil {
			// Event delivery is best-effort; registration already succeeded.
			logger.WithCtx(ctx).Warn().Err(perr).Str("user_id", created.ID).Msg("publish user_registered failed")
		}
	}

	return created, nil
}
