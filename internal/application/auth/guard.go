package auth

import (
	"context"

	"github.com/smarteval/auth-service/internal/domain"
)

/*
Guard
-----
Single enforcement point for every protected operation. No handler
implements its own ad-hoc auth check.

Check performs, in order:
 1. verify token signature/expiry/class
 2. load the user behind the subject id
 3. if a role set was given, check membership
*/
type Guard struct {
	signer TokenSigner
	users  UserRepo
}

func NewGuard(signer TokenSigner, users UserRepo) *Guard {
	return &Guard{signer: signer, users: users}
}

// Check validates rawToken as the given class and returns the authenticated
// user. With a non-empty role set, the user's role must be a member.
func (g *Guard) Check(ctx context.Context, rawToken string, class TokenClass, requiredRoles ...string) (domain.User, error) {
	if rawToken == "" {
		return domain.User{}, domain.ErrTokenMissing()
	}

	subjectID, err := g.signer.Verify(rawToken, class)
	if err != nil {
		return domain.User{}, err
	}

	u, err := g.users.GetByID(ctx, subjectID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.User{}, domain.ErrUnknownSubject()
		}
		return domain.User{}, err
	}

	if len(requiredRoles) > 0 && !roleInSet(u.Role, requiredRoles) {
		return domain.User{}, domain.ErrInsufficientRole(requiredRoles)
	}

	return u, nil
}

func roleInSet(role string, set []string) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}
