package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/cache"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/mentorlink-backend/internal/pkg/optional"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/tags"
	"github.com/go-playground/validator/v10"
)

const (
	defaultTagPageSize = 50
	maxTagPageSize     = 200
)

// BioGenerator drafts bio suggestions keyed by tone.
type BioGenerator interface {
	GenerateBios(ctx context.Context, req domain.BioRequest) (map[string]string, error)
}

type ProfileUseCase struct {
	store      repository.Store
	reconciler *tags.Reconciler
	cache      *cache.ProfileCache
	metrics    *metrics.Metrics
	bios       BioGenerator
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewProfileUseCase wires the usecase. cache, metrics and bios may be nil.
func NewProfileUseCase(
	store repository.Store,
	reconciler *tags.Reconciler,
	profileCache *cache.ProfileCache,
	m *metrics.Metrics,
	bios BioGenerator,
	logger *slog.Logger,
) *ProfileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileUseCase{
		store:      store,
		reconciler: reconciler,
		cache:      profileCache,
		metrics:    m,
		bios:       bios,
		validate:   newValidator(),
		logger:     logger,
	}
}

// CompleteOnboarding creates the account, the profile and its tag links in
// one transaction.
func (uc *ProfileUseCase) CompleteOnboarding(ctx context.Context, identity domain.Identity, req *CreateProfileRequest) (*domain.ProfileView, error) {
	role, err := req.validate(uc.validate)
	if err != nil {
		uc.metrics.Onboarding("unknown", outcome(err))
		return nil, err
	}

	interestNames := req.interestNames(role)
	industryNames := req.industryNames()
	if err := checkTagNames(interestNames, industryNames); err != nil {
		uc.metrics.Onboarding(string(role), outcome(err))
		return nil, err
	}

	var (
		view    *domain.ProfileView
		created = map[domain.TagKind]int{}
	)
	err = uc.store.WithTx(ctx, func(r repository.Repositories) error {
		account := req.toAccount(role, identity)
		if err := r.Accounts.Upsert(ctx, account); err != nil {
			return fmt.Errorf("failed to upsert account: %w", err)
		}

		_, err := r.Profiles.GetByAccountIDForUpdate(ctx, account.ID)
		if err == nil {
			return domain.ErrProfileAlreadyExists
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return fmt.Errorf("failed to check existing profile: %w", err)
		}
		if account.Role != role {
			return fmt.Errorf("%w: account is registered as %s", domain.ErrRoleMismatch, account.Role)
		}

		profile := req.toProfile(role, account.ID)
		if err := r.Profiles.Create(ctx, profile); err != nil {
			if errors.Is(err, domain.ErrProfileAlreadyExists) {
				return err
			}
			return fmt.Errorf("failed to create profile: %w", err)
		}

		interests, err := uc.reconciler.Reconcile(ctx, r.Tags, profile.ID, domain.TagInterest, interestNames)
		if err != nil {
			return err
		}
		industries, err := uc.reconciler.Reconcile(ctx, r.Tags, profile.ID, domain.TagIndustry, industryNames)
		if err != nil {
			return err
		}

		profile.Interests = interests.Tags
		profile.Industries = industries.Tags
		created[domain.TagInterest] = interests.Created
		created[domain.TagIndustry] = industries.Created
		view = &domain.ProfileView{User: account, Profile: profile}
		return nil
	})
	uc.metrics.Onboarding(string(role), outcome(err))
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, identity.ID)
	for kind, n := range created {
		uc.metrics.TagsCreated(string(kind), n)
	}
	uc.logger.Info("profile onboarded",
		slog.String("account_id", identity.ID),
		slog.String("role", string(role)),
		slog.Int("interests", len(view.Profile.Interests)),
		slog.Int("industries", len(view.Profile.Industries)),
	)
	return view, nil
}

// UpdateProfile applies a partial edit to the caller's own profile while
// holding a row lock on it.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, identity domain.Identity, req *UpdateProfileRequest) (*domain.Profile, error) {
	if err := req.validate(); err != nil {
		uc.metrics.ProfileUpdate(outcome(err))
		return nil, err
	}
	if err := checkTagNames(req.Interests.Value, req.Industries.Value); err != nil {
		uc.metrics.ProfileUpdate(outcome(err))
		return nil, err
	}

	var (
		updated *domain.Profile
		created = map[domain.TagKind]int{}
	)
	err := uc.store.WithTx(ctx, func(r repository.Repositories) error {
		profile, err := r.Profiles.GetByAccountIDForUpdate(ctx, identity.ID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return err
			}
			return fmt.Errorf("failed to load profile: %w", err)
		}

		req.apply(profile)
		if err := r.Profiles.Update(ctx, profile); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		if profile.Interests, created[domain.TagInterest], err = uc.syncTags(ctx, r.Tags, profile, domain.TagInterest, req.Interests); err != nil {
			return err
		}
		if profile.Industries, created[domain.TagIndustry], err = uc.syncTags(ctx, r.Tags, profile, domain.TagIndustry, req.Industries); err != nil {
			return err
		}

		updated = profile
		return nil
	})
	uc.metrics.ProfileUpdate(outcome(err))
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, identity.ID)
	for kind, n := range created {
		uc.metrics.TagsCreated(string(kind), n)
	}
	return updated, nil
}

// syncTags reconciles the links when the field is present and otherwise
// returns the links as they are.
func (uc *ProfileUseCase) syncTags(
	ctx context.Context,
	repo repository.TagRepository,
	profile *domain.Profile,
	kind domain.TagKind,
	names optional.Field[[]string],
) ([]domain.Tag, int, error) {
	if !names.Set {
		current, err := repo.ListForProfile(ctx, profile.ID, kind)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list %s tags: %w", kind, err)
		}
		return current, 0, nil
	}

	res, err := uc.reconciler.Reconcile(ctx, repo, profile.ID, kind, names.Value)
	if err != nil {
		return nil, 0, err
	}
	return res.Tags, res.Created, nil
}

// GetProfile returns the read projection of an account, from the cache when
// possible. The account, the profile and both tag sets come from one
// snapshot.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, accountID string) (*domain.ProfileView, error) {
	if view, ok := uc.cache.Get(ctx, accountID); ok {
		uc.metrics.CacheLookup(true)
		return view, nil
	}
	uc.metrics.CacheLookup(false)

	// Read before the database so a write committing in between makes
	// this view uncacheable.
	version := uc.cache.Version(ctx, accountID)

	var view *domain.ProfileView
	err := uc.store.WithReadTx(ctx, func(r repository.Repositories) error {
		account, err := r.Accounts.GetByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return domain.ErrProfileNotFound
			}
			return fmt.Errorf("failed to get account: %w", err)
		}

		profile, err := r.Profiles.GetByAccountID(ctx, accountID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return err
			}
			return fmt.Errorf("failed to get profile: %w", err)
		}

		if profile.Interests, err = r.Tags.ListForProfile(ctx, profile.ID, domain.TagInterest); err != nil {
			return fmt.Errorf("failed to list interests: %w", err)
		}
		if profile.Industries, err = r.Tags.ListForProfile(ctx, profile.ID, domain.TagIndustry); err != nil {
			return fmt.Errorf("failed to list industries: %w", err)
		}

		view = &domain.ProfileView{User: account, Profile: profile}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, view, version)
	return view, nil
}

// GenerateBio drafts bios with the model and falls back to templates when
// the model is missing or fails.
func (uc *ProfileUseCase) GenerateBio(ctx context.Context, req *GenerateBioRequest) (map[string]string, error) {
	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if err := validationError(uc.validate.Struct(req)); err != nil {
		return nil, err
	}

	bioReq := domain.BioRequest{
		Role:            role,
		FirstName:       req.FirstName,
		Interests:       req.Interests,
		Industry:        req.Industry,
		City:            req.City,
		ExperienceLevel: req.ExperienceLevel,
	}

	if uc.bios != nil {
		bios, err := uc.bios.GenerateBios(ctx, bioReq)
		if err == nil {
			return bios, nil
		}
		uc.logger.Warn("bio generation unavailable, using templates", slog.String("error", err.Error()))
	}
	return TemplateBios(bioReq), nil
}

// ListTags pages through the shared dictionary of one kind.
func (uc *ProfileUseCase) ListTags(ctx context.Context, kind domain.TagKind, limit, offset int) ([]domain.Tag, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidTagKind
	}
	if limit <= 0 {
		limit = defaultTagPageSize
	}
	if limit > maxTagPageSize {
		limit = maxTagPageSize
	}
	if offset < 0 {
		offset = 0
	}

	list, err := uc.store.Repos().Tags.List(ctx, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s tags: %w", kind, err)
	}
	return list, nil
}

func checkTagNames(lists ...[]string) error {
	for _, names := range lists {
		if _, err := tags.Normalize(names); err != nil {
			return err
		}
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrProfileAlreadyExists):
		return "conflict"
	case errors.Is(err, domain.ErrProfileNotFound):
		return "not_found"
	case IsValidationError(err):
		return "invalid"
	}
	return "error"
}

// IsValidationError reports whether err is caused by the submitted data.
func IsValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput,
		domain.ErrInvalidRole,
		domain.ErrRoleMismatch,
		domain.ErrMissingRequiredField,
		domain.ErrInvalidTagName,
		domain.ErrInvalidTagKind,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
