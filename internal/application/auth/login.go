package auth

import (
	"context"
	"strings"
	"time"

	"github.com/smarteval/auth-service/internal/domain"
	"github.com/smarteval/auth-service/internal/logger"
)

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

// Login authenticates a user and issues an access + refresh token pair.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration):
// unknown email and wrong password return the identical error.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			// Hide not-found behind invalid credentials.
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	now := time.Now().UTC()
	u.LastLogin = &now
	saved, err := s.users.Save(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}

	toks, err := s.issueTokens(saved.ID)
	if err != nil {
		return LoginResult{}, err
	}

	if s.pub != nil {
		if perr := s.pub.PublishUserLoggedIn(ctx, UserLoggedInEvent{
			UserID: saved.ID,
			Email:  saved.Email,
		}); perr != nil {
			logger.WithCtx(ctx).Warn().Err(perr).Str("user_id", saved.ID).Msg("publish user_logged_in failed")
		}
	}

	return LoginResult{User: saved, Tokens: toks}, nil
}
