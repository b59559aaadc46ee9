package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type accountRepository struct {
	db sqlx.ExtContext
}

func NewAccountRepository(db sqlx.ExtContext) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, email, name, age, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    age = EXCLUDED.age,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id, email, name, age, role, created_at, updated_at
	`
	return r.db.QueryRowxContext(
		ctx, query,
		account.ID, account.Email, account.Name, account.Age, account.Role,
	).StructScan(account)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, email, name, age, role, created_at, updated_at FROM accounts WHERE id = $1`
	err := sqlx.GetContext(ctx, r.db, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
