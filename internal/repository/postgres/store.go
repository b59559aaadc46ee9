package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// readSnapshot makes every statement of a read see the same committed state.
var readSnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repos() repository.Repositories {
	return reposFor(s.db)
}

func (s *Store) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return s.inTx(ctx, nil, fn)
}

func (s *Store) WithReadTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return s.inTx(ctx, readSnapshot, fn)
}

func (s *Store) inTx(ctx context.Context, opts *sql.TxOptions, fn func(repository.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(reposFor(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func reposFor(db sqlx.ExtContext) repository.Repositories {
	return repository.Repositories{
		Accounts: NewAccountRepository(db),
		Profiles: NewProfileRepository(db),
		Tags:     NewTagRepository(db),
	}
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
