package memory

import (
	"context"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
)

type accountRepository struct {
	db access
}

func (r *accountRepository) Upsert(_ context.Context, account *domain.Account) error {
	return r.db.write(func(s *state) error {
		now := time.Now().UTC()
		stored, ok := s.accounts[account.ID]
		if !ok {
			stored = *account
			stored.CreatedAt = now
		} else {
			stored.Email = account.Email
			stored.Name = account.Name
			stored.Age = account.Age
		}
		stored.UpdatedAt = now
		s.accounts[account.ID] = stored
		*account = stored
		return nil
	})
}

func (r *accountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.read(func(s *state) error {
		stored, ok := s.accounts[id]
		if !ok {
			return domain.ErrAccountNotFound
		}
		account = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}
