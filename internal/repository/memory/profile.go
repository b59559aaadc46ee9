package memory

import (
	"context"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/uuid"
)

type profileRepository struct {
	db access
}

func (r *profileRepository) Create(_ context.Context, profile *domain.Profile) error {
	return r.db.write(func(s *state) error {
		if _, ok := s.accounts[profile.AccountID]; !ok {
			return domain.ErrAccountNotFound
		}
		if _, ok := s.profiles[profile.AccountID]; ok {
			return domain.ErrProfileAlreadyExists
		}

		if profile.ID == uuid.Nil {
			profile.ID = uuid.New()
		}
		now := time.Now().UTC()
		profile.CreatedAt = now
		profile.UpdatedAt = now
		s.profiles[profile.AccountID] = copyProfile(profile)
		return nil
	})
}

func (r *profileRepository) GetByAccountID(_ context.Context, accountID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.read(func(s *state) error {
		stored, ok := s.profiles[accountID]
		if !ok {
			return domain.ErrProfileNotFound
		}
		profile = copyProfile(&stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByAccountIDForUpdate needs no row lock here: transactions already run
// one at a time.
func (r *profileRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Profile, error) {
	return r.GetByAccountID(ctx, accountID)
}

func (r *profileRepository) Update(_ context.Context, profile *domain.Profile) error {
	return r.db.write(func(s *state) error {
		stored, ok := s.profiles[profile.AccountID]
		if !ok || stored.ID != profile.ID {
			return domain.ErrProfileNotFound
		}
		profile.CreatedAt = stored.CreatedAt
		profile.UpdatedAt = time.Now().UTC()
		s.profiles[profile.AccountID] = copyProfile(profile)
		return nil
	})
}

func copyProfile(p *domain.Profile) domain.Profile {
	c := *p
	c.Bio = clonePtr(p.Bio)
	c.WorkExperience = clonePtr(p.WorkExperience)
	c.ExperienceLevel = clonePtr(p.ExperienceLevel)
	c.CurrentSituation = clonePtr(p.CurrentSituation)
	c.MeetingFrequency = clonePtr(p.MeetingFrequency)
	c.AvailableHoursPerMonth = clonePtr(p.AvailableHoursPerMonth)
	c.LookingFor = clonePtr(p.LookingFor)
	c.HelpsWith = clonePtr(p.HelpsWith)
	c.City = clonePtr(p.City)
	c.Timezone = clonePtr(p.Timezone)
	c.LinkedInURL = clonePtr(p.LinkedInURL)
	c.TwitterURL = clonePtr(p.TwitterURL)
	c.WebsiteURL = clonePtr(p.WebsiteURL)
	c.Goals = clonePtr(p.Goals)
	c.Interests = nil
	c.Industries = nil
	return c
}
