package domain

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "ENTRY"
	ExperienceMid       ExperienceLevel = "MID"
	ExperienceSenior    ExperienceLevel = "SENIOR"
	ExperienceExecutive ExperienceLevel = "EXECUTIVE"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}

type MeetingFrequency string

const (
	MeetingWeekly   MeetingFrequency = "WEEKLY"
	MeetingBiweekly MeetingFrequency = "BIWEEKLY"
	MeetingFlexible MeetingFrequency = "FLEXIBLE"
)

func (f MeetingFrequency) Valid() bool {
	switch f {
	case MeetingWeekly, MeetingBiweekly, MeetingFlexible:
		return true
	}
	return false
}

type Profile struct {
	ID                     uuid.UUID         `json:"id" db:"id"`
	AccountID              string            `json:"accountId" db:"account_id"`
	Bio                    *string           `json:"bio" db:"bio"`
	WorkExperience         *string           `json:"workExperience" db:"work_experience"`
	ExperienceLevel        *ExperienceLevel  `json:"experienceLevel" db:"experience_level"`
	CurrentSituation       *string           `json:"currentSituation" db:"current_situation"`
	MeetingFrequency       *MeetingFrequency `json:"meetingFrequency" db:"meeting_frequency"`
	AvailableHoursPerMonth *int              `json:"availableHoursPerMonth" db:"available_hours_per_month"`
	LookingFor             *string           `json:"lookingFor" db:"looking_for"`
	HelpsWith              *string           `json:"helpsWith" db:"helps_with"`
	City                   *string           `json:"city" db:"city"`
	Timezone               *string           `json:"timezone" db:"timezone"`
	LinkedInURL            *string           `json:"linkedinUrl" db:"linkedin_url"`
	TwitterURL             *string           `json:"twitterUrl" db:"twitter_url"`
	WebsiteURL             *string           `json:"websiteUrl" db:"website_url"`
	Goals                  *string           `json:"goals" db:"goals"`
	Interests              []Tag             `json:"interests" db:"-"`
	Industries             []Tag             `json:"industries" db:"-"`
	CreatedAt              time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time         `json:"updatedAt" db:"updated_at"`
}

// ProfileView is the read projection returned by every profile endpoint.
type ProfileView struct {
	User    *Account `json:"user"`
	Profile *Profile `json:"profile"`
}
