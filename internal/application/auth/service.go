package auth

import (
	"time"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	pub    EventPublisher

	accessTTL  time.Duration
	refreshTTL time.Duration
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	pub EventPublisher,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		pub:    pub,

		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL reports the configured access token lifetime (exposed for the
// expires_in field in responses).
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64  // seconds until the access token expires
	TokenType    string // "Bearer"
}

// issueTokens signs an access + refresh token pair bound to the user id.
func (s *Service) issueTokens(userID string) (AuthTokens, error) {
	access, err := s.signer.Issue(userID, ClassAccess)
	if err != nil {
		return AuthTokens{}, err
	}

	refresh, err := s.signer.Issue(userID, ClassRefresh)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
