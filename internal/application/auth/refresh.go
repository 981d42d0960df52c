package auth

import (
	"context"

	"github.com/smarteval/auth-service/internal/domain"
)

// RefreshAccessToken issues a fresh access token for userID.
// The caller (the guard) has already proven possession of a valid,
// unexpired refresh token bound to this id. The refresh token itself is
// not rotated or reissued.
func (s *Service) RefreshAccessToken(ctx context.Context, userID string) (AuthTokens, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			// Subject deleted after the refresh token was issued.
			return AuthTokens{}, domain.ErrUnknownSubject()
		}
		return AuthTokens{}, err
	}

	access, err := s.signer.Issue(u.ID, ClassAccess)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}
