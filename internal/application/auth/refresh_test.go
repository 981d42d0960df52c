package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/smarteval/auth-service/internal/domain"
)

func TestRefresh_UnknownUser_AuthenticationFailed(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.RefreshAccessToken(context.Background(), "gone")
	requireErrCode(t, err, "unknown_subject")

	if kind := domain.KindOf(err); kind != domain.KindAuth {
		t.Fatalf("expected auth kind, got %s", kind)
	}
}

func TestRefresh_StoreFailure_Propagates(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.getByIDErr = domain.ErrStoreUnavailable(errors.New("timeout"))

	_, err := svc.RefreshAccessToken(context.Background(), "u1")
	requireErrCode(t, err, "store_unavailable")
}

func TestRefresh_Success_NewAccessToken_NoRefreshRotation(t *testing.T) {
	t.Parallel()

	svc, users, _, signer, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "e@x.com", PasswordHash: "h", Role: "student"})

	toks, err := svc.RefreshAccessToken(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if toks.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if toks.RefreshToken != "" {
		t.Fatalf("refresh token must not be reissued, got %q", toks.RefreshToken)
	}
	if len(signer.issued) != 1 || signer.issued[0] != "access:u1" {
		t.Fatalf("expected one access-class issue, got %v", signer.issued)
	}
}

func TestGetUserByID_Passthrough(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u9", Email: "x@y.com", PasswordHash: "h", Role: "admin"})

	u, err := svc.GetUserByID(context.Background(), "u9")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.Email != "x@y.com" {
		t.Fatalf("unexpected user %+v", u)
	}

	_, err = svc.GetUserByID(context.Background(), "missing")
	requireErrCode(t, err, "user_not_found")
}
