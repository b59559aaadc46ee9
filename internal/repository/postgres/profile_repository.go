package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

const profileColumns = `
	id, account_id, bio, work_experience, experience_level, current_situation,
	meeting_frequency, available_hours_per_month, looking_for, helps_with,
	city, timezone, linkedin_url, twitter_url, website_url, goals,
	created_at, updated_at`

type profileRepository struct {
	db sqlx.ExtContext
}

func NewProfileRepository(db sqlx.ExtContext) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			account_id, bio, work_experience, experience_level, current_situation,
			meeting_frequency, available_hours_per_month, looking_for, helps_with,
			city, timezone, linkedin_url, twitter_url, website_url, goals
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		profile.AccountID, profile.Bio, profile.WorkExperience, profile.ExperienceLevel,
		profile.CurrentSituation, profile.MeetingFrequency, profile.AvailableHoursPerMonth,
		profile.LookingFor, profile.HelpsWith, profile.City, profile.Timezone,
		profile.LinkedInURL, profile.TwitterURL, profile.WebsiteURL, profile.Goals,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	switch pqCode(err) {
	case pqUniqueViolation:
		return domain.ErrProfileAlreadyExists
	case pqForeignKeyViolation:
		return domain.ErrAccountNotFound
	}
	return err
}

func (r *profileRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Profile, error) {
	return r.get(ctx, `SELECT`+profileColumns+` FROM profiles WHERE account_id = $1`, accountID)
}

func (r *profileRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Profile, error) {
	return r.get(ctx, `SELECT`+profileColumns+` FROM profiles WHERE account_id = $1 FOR UPDATE`, accountID)
}

func (r *profileRepository) get(ctx context.Context, query string, args ...interface{}) (*domain.Profile, error) {
	var profile domain.Profile
	err := sqlx.GetContext(ctx, r.db, &profile, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET bio = $1, work_experience = $2, experience_level = $3, current_situation = $4,
		    meeting_frequency = $5, available_hours_per_month = $6, looking_for = $7,
		    helps_with = $8, city = $9, timezone = $10, linkedin_url = $11,
		    twitter_url = $12, website_url = $13, goals = $14,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $15
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		profile.Bio, profile.WorkExperience, profile.ExperienceLevel, profile.CurrentSituation,
		profile.MeetingFrequency, profile.AvailableHoursPerMonth, profile.LookingFor,
		profile.HelpsWith, profile.City, profile.Timezone, profile.LinkedInURL,
		profile.TwitterURL, profile.WebsiteURL, profile.Goals,
		profile.ID,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}
