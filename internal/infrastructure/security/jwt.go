package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smarteval/auth-service/internal/application/auth"
	"github.com/smarteval/auth-service/internal/domain"
)

// JWTSigner issues both bearer token classes from one HS256 key.
// Tokens are stateless: subject, class, iat and exp are everything, so the
// service keeps no record of what it issued and cannot revoke early.
type JWTSigner struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTSigner(secret, issuer string, accessTTL, refreshTTL time.Duration) *JWTSigner {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTSigner{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type tokenClaims struct {
	Class string `json:"cls"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) ttl(class auth.TokenClass) time.Duration {
	if class == auth.ClassRefresh {
		return s.refreshTTL
	}
	return s.accessTTL
}

func (s *JWTSigner) Issue(subjectID string, class auth.TokenClass) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Class: string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(class))),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

// Verify checks signature, expiry and class, returning the subject id.
// Expiry is reported as token_expired; everything else (bad signature,
// malformed token, wrong class) as token_invalid.
func (s *JWTSigner) Verify(token string, expected auth.TokenClass) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired()
		}
		return "", domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return "", domain.ErrTokenInvalid()
	}
	if claims.Class != string(expected) {
		return "", domain.ErrTokenInvalid()
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid()
	}

	return claims.Subject, nil
}
