package repository

import (
	"context"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/uuid"
)

type AccountRepository interface {
	// Upsert inserts the account or refreshes email, name and age of an
	// existing one. The stored role is never overwritten. The passed account
	// is filled with the persisted row.
	Upsert(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

type ProfileRepository interface {
	// Create returns domain.ErrProfileAlreadyExists when the account already
	// owns a profile.
	Create(ctx context.Context, profile *domain.Profile) error
	GetByAccountID(ctx context.Context, accountID string) (*domain.Profile, error)
	// GetByAccountIDForUpdate locks the profile row until the surrounding
	// transaction ends.
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type TagRepository interface {
	// EnsureTags creates the tags whose slug is not yet present and returns
	// how many rows were inserted. Existing names are left untouched.
	EnsureTags(ctx context.Context, kind domain.TagKind, tags []domain.Tag) (int, error)
	GetBySlugs(ctx context.Context, kind domain.TagKind, slugs []string) ([]domain.Tag, error)
	LinkedTagIDs(ctx context.Context, profileID uuid.UUID, kind domain.TagKind) ([]uuid.UUID, error)
	Link(ctx context.Context, profileID uuid.UUID, kind domain.TagKind, tagIDs []uuid.UUID) error
	Unlink(ctx context.Context, profileID uuid.UUID, kind domain.TagKind, tagIDs []uuid.UUID) error
	ListForProfile(ctx context.Context, profileID uuid.UUID, kind domain.TagKind) ([]domain.Tag, error)
	List(ctx context.Context, kind domain.TagKind, limit, offset int) ([]domain.Tag, error)
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Accounts AccountRepository
	Profiles ProfileRepository
	Tags     TagRepository
}

type Store interface {
	// Repos returns repositories running outside any transaction.
	Repos() Repositories
	// WithTx runs fn in a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Repositories) error) error
	// WithReadTx runs fn against one consistent read-only snapshot. Writes
	// through the passed repositories fail.
	WithReadTx(ctx context.Context, fn func(Repositories) error) error
	Close() error
}
