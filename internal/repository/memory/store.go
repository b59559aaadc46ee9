// Package memory is a process-local repository.Store used for development
// and tests. Transactions are serialized and work on a copy of the committed
// state that replaces it on success.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
)

type state struct {
	accounts map[string]domain.Account
	profiles map[string]domain.Profile
	tags     map[domain.TagKind]map[string]domain.Tag
	links    map[domain.TagKind]map[uuid.UUID]map[uuid.UUID]struct{}
}

func newState() *state {
	return &state{
		accounts: make(map[string]domain.Account),
		profiles: make(map[string]domain.Profile),
		tags: map[domain.TagKind]map[string]domain.Tag{
			domain.TagInterest: {},
			domain.TagIndustry: {},
		},
		links: map[domain.TagKind]map[uuid.UUID]map[uuid.UUID]struct{}{
			domain.TagInterest: {},
			domain.TagIndustry: {},
		},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for kind, bySlug := range s.tags {
		for slug, tag := range bySlug {
			c.tags[kind][slug] = tag
		}
	}
	for kind, byProfile := range s.links {
		for profileID, ids := range byProfile {
			set := make(map[uuid.UUID]struct{}, len(ids))
			for id := range ids {
				set[id] = struct{}{}
			}
			c.links[kind][profileID] = set
		}
	}
	return c
}

// access abstracts over the committed state and a transaction snapshot.
type access interface {
	read(fn func(*state) error) error
	write(fn func(*state) error) error
}

type Store struct {
	txMu sync.Mutex

	mu   sync.RWMutex
	data *state
}

func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) Repos() repository.Repositories {
	return reposFor(autoAccess{store: s})
}

func (s *Store) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.commit(func(snapshot *state) error {
		return fn(reposFor(txAccess{data: snapshot}))
	})
}

// WithReadTx runs fn against the committed state while holding off commits.
func (s *Store) WithReadTx(ctx context.Context, fn func(repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(reposFor(readOnlyAccess{data: s.data}))
}

func (s *Store) commit(fn func(*state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(snapshot); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = snapshot
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func reposFor(a access) repository.Repositories {
	return repository.Repositories{
		Accounts: &accountRepository{db: a},
		Profiles: &profileRepository{db: a},
		Tags:     &tagRepository{db: a},
	}
}

// autoAccess runs every write as its own single-statement transaction.
type autoAccess struct {
	store *Store
}

func (a autoAccess) read(fn func(*state) error) error {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.data)
}

func (a autoAccess) write(fn func(*state) error) error {
	return a.store.commit(fn)
}

type txAccess struct {
	data *state
}

func (t txAccess) read(fn func(*state) error) error  { return fn(t.data) }
func (t txAccess) write(fn func(*state) error) error { return fn(t.data) }

var errReadOnly = errors.New("memory: write in read-only transaction")

type readOnlyAccess struct {
	data *state
}

func (r readOnlyAccess) read(fn func(*state) error) error { return fn(r.data) }
func (r readOnlyAccess) write(func(*state) error) error   { return errReadOnly }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
