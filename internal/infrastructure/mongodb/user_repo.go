package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/smarteval/auth-service/internal/domain"
)

// userDoc is the persisted shape of a user. The domain type stays free of
// bson tags.
type userDoc struct {
	ID           string         `bson:"_id"`
	Email        string         `bson:"email"`
	PasswordHash string         `bson:"password_hash"`
	Role         string         `bson:"role"`
	Profile      map[string]any `bson:"profile"`
	Settings     map[string]any `bson:"settings"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
	LastLogin    *time.Time     `bson:"last_login,omitempty"`
}

func toDoc(u domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Profile:      u.Profile,
		Settings:     u.Settings,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLogin:    u.LastLogin,
	}
}

func toDomain(d userDoc) domain.User {
	return domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		Profile:      d.Profile,
		Settings:     d.Settings,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		LastLogin:    d.LastLogin,
	}
}

// wrapErr maps driver errors to domain errors. Timeouts and unreachable
// servers surface as the retryable infrastructure kind.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrUserNotFound()
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrEmailAlreadyExists()
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ErrStoreUnavailable(err)
	case mongo.IsTimeout(err) || mongo.IsNetworkError(err):
		return domain.ErrStoreUnavailable(err)
	default:
		return domain.ErrInternal(err)
	}
}

// UserRepo implements auth.UserRepo on a Store.
type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	var d userDoc
	err := r.store.col(ColUsers).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&d)
	if err != nil {
		return domain.User{}, wrapErr(err)
	}
	return toDomain(d), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	var d userDoc
	err := r.store.col(ColUsers).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d)
	if err != nil {
		return domain.User{}, wrapErr(err)
	}
	return toDomain(d), nil
}

// Create assigns the id and timestamps and inserts the document. The
// unique index on email turns a concurrent duplicate into a Conflict for
// exactly one of the racers.
func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if !domain.IsValidRole(u.Role) {
		return domain.User{}, domain.ErrInvalidRole(u.Role)
	}

	u.ID = uuid.NewString()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	if _, err := r.store.col(ColUsers).InsertOne(ctx, toDoc(u)); err != nil {
		return domain.User{}, wrapErr(err)
	}
	return u, nil
}

// Save persists mutations of an existing user, always refreshing
// updated_at. Email is immutable and not part of the update.
func (r *UserRepo) Save(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	u.UpdatedAt = time.Now().UTC()

	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password_hash", Value: u.PasswordHash},
		{Key: "profile", Value: u.Profile},
		{Key: "settings", Value: u.Settings},
		{Key: "updated_at", Value: u.UpdatedAt},
		{Key: "last_login", Value: u.LastLogin},
	}}}

	res, err := r.store.col(ColUsers).UpdateOne(ctx, bson.D{{Key: "_id", Value: u.ID}}, update)
	if err != nil {
		return domain.User{}, wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}
