package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/pkg/slug"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
)

// Result of one reconciliation.
type Result struct {
	// Tags are the resolved tags in submission order.
	Tags []domain.Tag
	// Created counts dictionary rows inserted by this call.
	Created int
}

// Reconciler makes the set of tags linked to a profile equal a submitted set
// of names, creating missing dictionary entries on the way.
type Reconciler struct{}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Normalize slugs every name and keeps the first display name per slug.
// It fails with domain.ErrInvalidTagName when a name has no letters or digits.
func Normalize(names []string) ([]domain.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]domain.Tag, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		s := slug.Make(name)
		if strings.Trim(s, "-") == "" {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTagName, name)
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		tags = append(tags, domain.Tag{Name: name, Slug: s})
	}
	return tags, nil
}

// Reconcile must run inside the caller's transaction so that the removal of
// stale links and the insertion of new ones become visible together.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	repo repository.TagRepository,
	profileID uuid.UUID,
	kind domain.TagKind,
	names []string,
) (*Result, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidTagKind
	}

	wanted, err := Normalize(names)
	if err != nil {
		return nil, err
	}

	result := &Result{Tags: []domain.Tag{}}
	if len(wanted) > 0 {
		result.Created, err = repo.EnsureTags(ctx, kind, wanted)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure %s tags: %w", kind, err)
		}

		result.Tags, err = resolve(ctx, repo, kind, wanted)
		if err != nil {
			return nil, err
		}
	}

	current, err := repo.LinkedTagIDs(ctx, profileID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s links: %w", kind, err)
	}

	toLink, toUnlink := diff(current, result.Tags)
	if err := repo.Unlink(ctx, profileID, kind, toUnlink); err != nil {
		return nil, fmt.Errorf("failed to unlink %s tags: %w", kind, err)
	}
	if err := repo.Link(ctx, profileID, kind, toLink); err != nil {
		return nil, fmt.Errorf("failed to link %s tags: %w", kind, err)
	}

	return result, nil
}

func resolve(ctx context.Context, repo repository.TagRepository, kind domain.TagKind, wanted []domain.Tag) ([]domain.Tag, error) {
	slugs := make([]string, len(wanted))
	for i, t := range wanted {
		slugs[i] = t.Slug
	}

	found, err := repo.GetBySlugs(ctx, kind, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s tags: %w", kind, err)
	}

	bySlug := make(map[string]domain.Tag, len(found))
	for _, t := range found {
		bySlug[t.Slug] = t
	}

	tags := make([]domain.Tag, 0, len(wanted))
	for _, w := range wanted {
		t, ok := bySlug[w.Slug]
		if !ok {
			return nil, fmt.Errorf("%s tag %q missing after insert", kind, w.Slug)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// diff returns the ids to add and the ids to remove to turn current into target.
func diff(current []uuid.UUID, target []domain.Tag) (toLink, toUnlink []uuid.UUID) {
	have := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}

	want := make(map[uuid.UUID]struct{}, len(target))
	for _, t := range target {
		want[t.ID] = struct{}{}
		if _, ok := have[t.ID]; !ok {
			toLink = append(toLink, t.ID)
		}
	}

	for _, id := range current {
		if _, ok := want[id]; !ok {
			toUnlink = append(toUnlink, id)
		}
	}
	return toLink, toUnlink
}
