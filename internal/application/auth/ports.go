package auth

import (
	"context"

	"github.com/smarteval/auth-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.

Create assigns the ID and timestamps and must enforce email uniqueness
atomically at the storage layer; a check-then-insert in the service would
race under concurrent registrations.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Save persists mutations of an existing user and refreshes UpdatedAt.
	Save(ctx context.Context, u domain.User) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. Compare returns nil on match and fails closed on
a malformed stored hash.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

/*
TokenSigner
-----------
Issues and verifies the two bearer token classes. Tokens are stateless and
self-contained: subject, class, issued-at, expiry, signed with the
process-wide key. Used by the service and by the guard.
*/
type TokenClass string

const (
	ClassAccess  TokenClass = "access"
	ClassRefresh TokenClass = "refresh"
)

type TokenSigner interface {
	Issue(subjectID string, class TokenClass) (string, error)
	// Verify checks signature, expiry and class. A wrong class fails the
	// same way as a bad signature; an elapsed expiry is reported distinctly.
	Verify(token string, expected TokenClass) (subjectID string, err error)
}

/*
EventPublisher
--------------
Publishes account lifecycle events to the message broker. Downstream
services (notifications, analytics) consume them; the auth service never
blocks a request on delivery.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
	PublishUserLoggedIn(ctx context.Context, evt UserLoggedInEvent) error
}

type UserRegisteredEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type UserLoggedInEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
