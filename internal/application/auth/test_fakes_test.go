package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/smarteval/auth-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	nextID int

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	saveErr       error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return domain.User{}, f.saveErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.UpdatedAt = time.Now().UTC()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return fmt.Errorf("mismatch")
	}
	return nil
}

// fakeSigner encodes class and subject into the token string so tests can
// assert round trips without real signing.
type fakeSigner struct {
	mu sync.Mutex

	issueErr  error
	verifyErr error

	issued []string
}

func (f *fakeSigner) Issue(subjectID string, class TokenClass) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.issueErr != nil {
		return "", f.issueErr
	}
	tok := string(class) + ":" + subjectID
	f.issued = append(f.issued, tok)
	return tok, nil
}

func (f *fakeSigner) Verify(token string, expected TokenClass) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	prefix := string(expected) + ":"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", domain.ErrTokenInvalid()
	}
	return token[len(prefix):], nil
}

type fakePublisher struct {
	mu sync.Mutex

	registeredErr error
	loggedInErr   error

	registered []UserRegisteredEvent
	loggedIn   []UserLoggedInEvent
}

func (p *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.registeredErr != nil {
		return p.registeredErr
	}
	p.registered = append(p.registered, evt)
	return nil
}

func (p *fakePublisher) PublishUserLoggedIn(ctx context.Context, evt UserLoggedInEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loggedInErr != nil {
		return p.loggedInErr
	}
	p.loggedIn = append(p.loggedIn, evt)
	return nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakePublisher) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	pub := &fakePublisher{}

	svc := NewService(users, hasher, signer, pub, Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	return svc, users, hasher, signer, pub
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
