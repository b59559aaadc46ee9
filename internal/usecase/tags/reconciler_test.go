package tags

import (
	"context"
	"errors"
	"testing"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/gdugdh24/mentorlink-backend/internal/repository/memory"
	"github.com/google/uuid"
)

func reconcile(t *testing.T, store *memory.Store, profileID uuid.UUID, kind domain.TagKind, names ...string) *Result {
	t.Helper()
	var res *Result
	err := store.WithTx(context.Background(), func(r repository.Repositories) error {
		var err error
		res, err = NewReconciler().Reconcile(context.Background(), r.Tags, profileID, kind, names)
		return err
	})
	if err != nil {
		t.Fatalf("reconcile %v: %v", names, err)
	}
	return res
}

func linkedSlugs(t *testing.T, store *memory.Store, profileID uuid.UUID, kind domain.TagKind) []string {
	t.Helper()
	tags, err := store.Repos().Tags.ListForProfile(context.Background(), profileID, kind)
	if err != nil {
		t.Fatalf("list linked tags: %v", err)
	}
	slugs := make([]string, len(tags))
	for i, tag := range tags {
		slugs[i] = tag.Slug
	}
	return slugs
}

func TestReconcileCollapsesVariants(t *testing.T) {
	store := memory.NewStore()
	profileID := uuid.New()

	res := reconcile(t, store, profileID, domain.TagInterest, "UX Design", "ux   design!", "UX design")

	if res.Created != 1 {
		t.Fatalf("expected 1 created tag, got %d", res.Created)
	}
	if len(res.Tags) != 1 || res.Tags[0].Slug != "ux-design" || res.Tags[0].Name != "UX Design" {
		t.Fatalf("unexpected tags: %+v", res.Tags)
	}

	got := linkedSlugs(t, store, profileID, domain.TagInterest)
	if len(got) != 1 || got[0] != "ux-design" {
		t.Fatalf("expected one ux-design link, got %v", got)
	}
}

func TestReconcileKeepsFirstDisplayName(t *testing.T) {
	store := memory.NewStore()

	reconcile(t, store, uuid.New(), domain.TagInterest, "Product Strategy")
	res := reconcile(t, store, uuid.New(), domain.TagInterest, "product   STRATEGY")

	if res.Created != 0 {
		t.Fatalf("expected no new tags, got %d", res.Created)
	}
	if res.Tags[0].Name != "Product Strategy" {
		t.Fatalf("display name overwritten: %q", res.Tags[0].Name)
	}

	all, err := store.Repos().Tags.List(context.Background(), domain.TagInterest, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single dictionary row, got %d", len(all))
	}
}

func TestReconcileReplacesSetWithoutDeletingTags(t *testing.T) {
	store := memory.NewStore()
	profileID := uuid.New()

	reconcile(t, store, profileID, domain.TagIndustry, "Fintech")
	reconcile(t, store, profileID, domain.TagIndustry, "Healthcare")

	got := linkedSlugs(t, store, profileID, domain.TagIndustry)
	if len(got) != 1 || got[0] != "healthcare" {
		t.Fatalf("expected only healthcare linked, got %v", got)
	}

	fintech, err := store.Repos().Tags.GetBySlugs(context.Background(), domain.TagIndustry, []string{"fintech"})
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if len(fintech) != 1 {
		t.Fatal("fintech tag row should still exist")
	}
}

func TestReconcileEmptyClearsLinks(t *testing.T) {
	store := memory.NewStore()
	profileID := uuid.New()

	reconcile(t, store, profileID, domain.TagInterest, "Go", "Rust")
	res := reconcile(t, store, profileID, domain.TagInterest)

	if len(res.Tags) != 0 {
		t.Fatalf("expected no tags, got %+v", res.Tags)
	}
	if got := linkedSlugs(t, store, profileID, domain.TagInterest); len(got) != 0 {
		t.Fatalf("expected no links, got %v", got)
	}
}

func TestReconcileKindsAreIndependent(t *testing.T) {
	store := memory.NewStore()
	profileID := uuid.New()

	reconcile(t, store, profileID, domain.TagInterest, "Fintech")
	res := reconcile(t, store, profileID, domain.TagIndustry, "Fintech")

	if res.Created != 1 {
		t.Fatalf("industry dictionary should get its own row, created %d", res.Created)
	}
	if got := linkedSlugs(t, store, profileID, domain.TagInterest); len(got) != 1 {
		t.Fatalf("interest links touched: %v", got)
	}
}

func TestReconcileRejectsEmptySlug(t *testing.T) {
	store := memory.NewStore()
	profileID := uuid.New()
	reconcile(t, store, profileID, domain.TagInterest, "Go")

	err := store.WithTx(context.Background(), func(r repository.Repositories) error {
		_, err := NewReconciler().Reconcile(context.Background(), r.Tags, profileID, domain.TagInterest, []string{"Rust", "!!!"})
		return err
	})
	if !errors.Is(err, domain.ErrInvalidTagName) {
		t.Fatalf("expected ErrInvalidTagName, got %v", err)
	}

	got := linkedSlugs(t, store, profileID, domain.TagInterest)
	if len(got) != 1 || got[0] != "go" {
		t.Fatalf("links changed after rejected input: %v", got)
	}
}

type countingTags struct {
	repository.TagRepository
	unlinked int
}

func (c *countingTags) Unlink(ctx context.Context, profileID uuid.UUID, kind domain.TagKind, ids []uuid.UUID) error {
	c.unlinked += len(ids)
	return c.TagRepository.Unlink(ctx, profileID, kind, ids)
}

func TestReconcileOnlyTouchesDifference(t *testing.T) {
	store := memory.NewStore()
	profileID := uuid.New()
	reconcile(t, store, profileID, domain.TagInterest, "Go", "Rust")

	var counter *countingTags
	err := store.WithTx(context.Background(), func(r repository.Repositories) error {
		counter = &countingTags{TagRepository: r.Tags}
		_, err := NewReconciler().Reconcile(context.Background(), counter, profileID, domain.TagInterest, []string{"go", "Zig"})
		return err
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if counter.unlinked != 1 {
		t.Fatalf("expected exactly one unlink, got %d", counter.unlinked)
	}

	got := linkedSlugs(t, store, profileID, domain.TagInterest)
	if len(got) != 2 || got[0] != "go" || got[1] != "zig" {
		t.Fatalf("unexpected links: %v", got)
	}
}

func TestNormalize(t *testing.T) {
	tags, err := Normalize([]string{"  Data Science ", "data science", "ML", "ml!"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %+v", tags)
	}
	if tags[0].Name != "Data Science" || tags[0].Slug != "data-science" {
		t.Fatalf("unexpected first tag: %+v", tags[0])
	}
	if tags[1].Slug != "ml" {
		t.Fatalf("unexpected second tag: %+v", tags[1])
	}

	for _, bad := range []string{"", "   ", "!!!", " - "} {
		if _, err := Normalize([]string{bad}); !errors.Is(err, domain.ErrInvalidTagName) {
			t.Errorf("Normalize(%q): expected ErrInvalidTagName, got %v", bad, err)
		}
	}
}
