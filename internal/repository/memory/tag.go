package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/uuid"
)

type tagRepository struct {
	db access
}

func (r *tagRepository) EnsureTags(_ context.Context, kind domain.TagKind, tags []domain.Tag) (int, error) {
	if !kind.Valid() {
		return 0, domain.ErrInvalidTagKind
	}

	created := 0
	err := r.db.write(func(s *state) error {
		for _, tag := range tags {
			if _, ok := s.tags[kind][tag.Slug]; ok {
				continue
			}
			s.tags[kind][tag.Slug] = domain.Tag{
				ID:        uuid.New(),
				Name:      tag.Name,
				Slug:      tag.Slug,
				CreatedAt: time.Now().UTC(),
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *tagRepository) GetBySlugs(_ context.Context, kind domain.TagKind, slugs []string) ([]domain.Tag, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidTagKind
	}

	var result []domain.Tag
	err := r.db.read(func(s *state) error {
		for _, slug := range slugs {
			if tag, ok := s.tags[kind][slug]; ok {
				result = append(result, tag)
			}
		}
		return nil
	})
	return result, err
}

func (r *tagRepository) LinkedTagIDs(_ context.Context, profileID uuid.UUID, kind domain.TagKind) ([]uuid.UUID, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidTagKind
	}

	var ids []uuid.UUID
	err := r.db.read(func(s *state) error {
		for id := range s.links[kind][profileID] {
			ids = append(ids, id)
		}
		return nil
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, err
}

func (r *tagRepository) Link(_ context.Context, profileID uuid.UUID, kind domain.TagKind, tagIDs []uuid.UUID) error {
	if !kind.Valid() {
		return domain.ErrInvalidTagKind
	}
	if len(tagIDs) == 0 {
		return nil
	}

	return r.db.write(func(s *state) error {
		set, ok := s.links[kind][profileID]
		if !ok {
			set = make(map[uuid.UUID]struct{}, len(tagIDs))
			s.links[kind][profileID] = set
		}
		for _, id := range tagIDs {
			set[id] = struct{}{}
		}
		return nil
	})
}

func (r *tagRepository) Unlink(_ context.Context, profileID uuid.UUID, kind domain.TagKind, tagIDs []uuid.UUID) error {
	if !kind.Valid() {
		return domain.ErrInvalidTagKind
	}
	if len(tagIDs) == 0 {
		return nil
	}

	return r.db.write(func(s *state) error {
		set := s.links[kind][profileID]
		for _, id := range tagIDs {
			delete(set, id)
		}
		return nil
	})
}

func (r *tagRepository) ListForProfile(_ context.Context, profileID uuid.UUID, kind domain.TagKind) ([]domain.Tag, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidTagKind
	}

	result := []domain.Tag{}
	err := r.db.read(func(s *state) error {
		linked := s.links[kind][profileID]
		for _, tag := range s.tags[kind] {
			if _, ok := linked[tag.ID]; ok {
				result = append(result, tag)
			}
		}
		return nil
	})
	sortByName(result)
	return result, err
}

func (r *tagRepository) List(_ context.Context, kind domain.TagKind, limit, offset int) ([]domain.Tag, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidTagKind
	}

	all := []domain.Tag{}
	err := r.db.read(func(s *state) error {
		for _, tag := range s.tags[kind] {
			all = append(all, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByName(all)

	if offset >= len(all) {
		return []domain.Tag{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func sortByName(tags []domain.Tag) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Name == tags[j].Name {
			return tags[i].Slug < tags[j].Slug
		}
		return tags[i].Name < tags[j].Name
	})
}
