package postgres

import (
	"context"
	"fmt"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// tagTables names the dictionary and link table of a tag kind.
type tagTables struct {
	dict string
	link string
}

var tablesByKind = map[domain.TagKind]tagTables{
	domain.TagInterest: {dict: "interests", link: "profile_interests"},
	domain.TagIndustry: {dict: "industries", link: "profile_industries"},
}

type tagRepository struct {
	db sqlx.ExtContext
}

func NewTagRepository(db sqlx.ExtContext) repository.TagRepository {
	return &tagRepository{db: db}
}

func tables(kind domain.TagKind) (tagTables, error) {
	t, ok := tablesByKind[kind]
	if !ok {
		return tagTables{}, domain.ErrInvalidTagKind
	}
	return t, nil
}

func (r *tagRepository) EnsureTags(ctx context.Context, kind domain.TagKind, tags []domain.Tag) (int, error) {
	t, err := tables(kind)
	if err != nil {
		return 0, err
	}
	if len(tags) == 0 {
		return 0, nil
	}

	names := make([]string, len(tags))
	slugs := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
		slugs[i] = tag.Slug
	}

	// The unique slug index arbitrates concurrent inserts of the same tag.
	// Inserting in slug order keeps two overlapping submissions from taking
	// index locks in opposite orders.
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug)
		SELECT name, slug FROM unnest($1::text[], $2::text[]) AS t(name, slug)
		ORDER BY slug
		ON CONFLICT (slug) DO NOTHING
	`, t.dict)
	result, err := r.db.ExecContext(ctx, query, pq.Array(names), pq.Array(slugs))
	if err != nil {
		return 0, err
	}
	created, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(created), nil
}

func (r *tagRepository) GetBySlugs(ctx context.Context, kind domain.TagKind, slugs []string) ([]domain.Tag, error) {
	t, err := tables(kind)
	if err != nil {
		return nil, err
	}

	var tags []domain.Tag
	query := fmt.Sprintf(`SELECT id, name, slug, created_at FROM %s WHERE slug = ANY($1)`, t.dict)
	err = sqlx.SelectContext(ctx, r.db, &tags, query, pq.Array(slugs))
	return tags, err
}

func (r *tagRepository) LinkedTagIDs(ctx context.Context, profileID uuid.UUID, kind domain.TagKind) ([]uuid.UUID, error) {
	t, err := tables(kind)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	query := fmt.Sprintf(`SELECT tag_id FROM %s WHERE profile_id = $1`, t.link)
	err = sqlx.SelectContext(ctx, r.db, &ids, query, profileID)
	return ids, err
}

func (r *tagRepository) Link(ctx context.Context, profileID uuid.UUID, kind domain.TagKind, tagIDs []uuid.UUID) error {
	t, err := tables(kind)
	if err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, tag_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, t.link)
	_, err = r.db.ExecContext(ctx, query, profileID, pq.Array(uuidStrings(tagIDs)))
	return err
}

func (r *tagRepository) Unlink(ctx context.Context, profileID uuid.UUID, kind domain.TagKind, tagIDs []uuid.UUID) error {
	t, err := tables(kind)
	if err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE profile_id = $1 AND tag_id = ANY($2::uuid[])`, t.link)
	_, err = r.db.ExecContext(ctx, query, profileID, pq.Array(uuidStrings(tagIDs)))
	return err
}

func (r *tagRepository) ListForProfile(ctx context.Context, profileID uuid.UUID, kind domain.TagKind) ([]domain.Tag, error) {
	t, err := tables(kind)
	if err != nil {
		return nil, err
	}

	tags := []domain.Tag{}
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.slug, t.created_at
		FROM %s t
		JOIN %s l ON l.tag_id = t.id
		WHERE l.profile_id = $1
		ORDER BY t.name, t.slug
	`, t.dict, t.link)
	err = sqlx.SelectContext(ctx, r.db, &tags, query, profileID)
	return tags, err
}

func (r *tagRepository) List(ctx context.Context, kind domain.TagKind, limit, offset int) ([]domain.Tag, error) {
	t, err := tables(kind)
	if err != nil {
		return nil, err
	}

	tags := []domain.Tag{}
	query := fmt.Sprintf(`
		SELECT id, name, slug, created_at FROM %s
		ORDER BY name, slug
		LIMIT $1 OFFSET $2
	`, t.dict)
	err = sqlx.SelectContext(ctx, r.db, &tags, query, limit, offset)
	return tags, err
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
