package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/pkg/optional"
	"github.com/go-playground/validator/v10"
)

// DefaultAge is stored when the onboarding form leaves age empty.
const DefaultAge = 25

// CreateProfileRequest is the onboarding submission of either form.
type CreateProfileRequest struct {
	Role        string `json:"role"`
	FirstName   string `json:"firstName" validate:"max=100"`
	LastName    string `json:"lastName" validate:"max=100"`
	Age         *int   `json:"age" validate:"omitempty,min=13,max=120"`
	Bio         string `json:"bio" validate:"max=2000"`
	City        string `json:"city" validate:"max=100"`
	Timezone    string `json:"timezone" validate:"max=64"`
	LinkedInURL string `json:"linkedinUrl" validate:"max=500"`
	TwitterURL  string `json:"twitterUrl" validate:"max=500"`
	WebsiteURL  string `json:"websiteUrl" validate:"max=500"`
	Industry    string `json:"industry" validate:"max=100"`

	// Mentee form
	AreasOfInterest  []string `json:"areasOfInterest" validate:"max=30,dive,max=100"`
	ExperienceLevel  string   `json:"experienceLevel" validate:"max=32"`
	CurrentSituation string   `json:"currentSituation" validate:"max=2000"`
	Goals            string   `json:"goals" validate:"max=2000"`
	LookingFor       string   `json:"lookingFor" validate:"max=2000"`
	PreferredFormat  []string `json:"preferredFormat" validate:"max=10,dive,max=100"`
	TimeCommitment   string   `json:"timeCommitment" validate:"max=32"`

	// Mentor form
	Expertise         []string `json:"expertise" validate:"max=30,dive,max=100"`
	MentorshipAreas   []string `json:"mentorshipAreas" validate:"max=30,dive,max=100"`
	YearsOfExperience string   `json:"yearsOfExperience" validate:"max=32"`
	WorkExperience    string   `json:"workExperience" validate:"max=5000"`
	HelpsWith         string   `json:"helpsWith" validate:"max=2000"`
	MentoringFormat   []string `json:"mentoringFormat" validate:"max=10,dive,max=100"`
	Availability      string   `json:"availability" validate:"max=32"`
}

// UpdateProfileRequest is a partial edit. Absent keys leave values alone,
// null or a blank string clears them.
type UpdateProfileRequest struct {
	Bio                    optional.Field[string]                  `json:"bio"`
	WorkExperience         optional.Field[string]                  `json:"workExperience"`
	ExperienceLevel        optional.Field[domain.ExperienceLevel]  `json:"experienceLevel"`
	CurrentSituation       optional.Field[string]                  `json:"currentSituation"`
	MeetingFrequency       optional.Field[domain.MeetingFrequency] `json:"meetingFrequency"`
	AvailableHoursPerMonth optional.Field[int]                     `json:"availableHoursPerMonth"`
	LookingFor             optional.Field[string]                  `json:"lookingFor"`
	HelpsWith              optional.Field[string]                  `json:"helpsWith"`
	City                   optional.Field[string]                  `json:"city"`
	Timezone               optional.Field[string]                  `json:"timezone"`
	LinkedInURL            optional.Field[string]                  `json:"linkedinUrl"`
	TwitterURL             optional.Field[string]                  `json:"twitterUrl"`
	WebsiteURL             optional.Field[string]                  `json:"websiteUrl"`
	Goals                  optional.Field[string]                  `json:"goals"`
	Interests              optional.Field[[]string]                `json:"interests"`
	Industries             optional.Field[[]string]                `json:"industries"`
}

// GenerateBioRequest represents request to generate bio
type GenerateBioRequest struct {
	Role            string   `json:"role"`
	FirstName       string   `json:"firstName" validate:"required,max=100"`
	Interests       []string `json:"interests" validate:"max=30,dive,max=100"`
	Industry        string   `json:"industry" validate:"max=100"`
	City            string   `json:"city" validate:"max=100"`
	ExperienceLevel string   `json:"experienceLevel" validate:"max=32"`
}

// ParseRole accepts the lower-case form values and the canonical names.
func ParseRole(s string) (domain.Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mentor":
		return domain.RoleMentor, nil
	case "mentee":
		return domain.RoleMentee, nil
	}
	return "", domain.ErrInvalidRole
}

func (r *CreateProfileRequest) validate(v *validator.Validate) (domain.Role, error) {
	role, err := ParseRole(r.Role)
	if err != nil {
		return "", err
	}
	if err := validationError(v.Struct(r)); err != nil {
		return "", err
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return "", fmt.Errorf("%w: firstName", domain.ErrMissingRequiredField)
	}

	switch role {
	case domain.RoleMentee:
		if field := r.firstMentorField(); field != "" {
			return "", fmt.Errorf("%w: %s is not part of the mentee form", domain.ErrRoleMismatch, field)
		}
		if len(r.AreasOfInterest) == 0 {
			return "", fmt.Errorf("%w: areasOfInterest", domain.ErrMissingRequiredField)
		}
		if strings.TrimSpace(r.ExperienceLevel) != "" && MenteeExperienceLevel(r.ExperienceLevel) == nil {
			return "", fmt.Errorf("%w: unknown experienceLevel %q", domain.ErrInvalidInput, r.ExperienceLevel)
		}
	case domain.RoleMentor:
		if field := r.firstMenteeField(); field != "" {
			return "", fmt.Errorf("%w: %s is not part of the mentor form", domain.ErrRoleMismatch, field)
		}
		if len(r.Expertise) == 0 && len(r.MentorshipAreas) == 0 {
			return "", fmt.Errorf("%w: expertise or mentorshipAreas", domain.ErrMissingRequiredField)
		}
		if strings.TrimSpace(r.YearsOfExperience) != "" && MentorExperienceLevel(r.YearsOfExperience) == nil {
			return "", fmt.Errorf("%w: unknown yearsOfExperience %q", domain.ErrInvalidInput, r.YearsOfExperience)
		}
	}
	return role, nil
}

func (r *CreateProfileRequest) firstMentorField() string {
	switch {
	case len(r.Expertise) > 0:
		return "expertise"
	case len(r.MentorshipAreas) > 0:
		return "mentorshipAreas"
	case r.YearsOfExperience != "":
		return "yearsOfExperience"
	case r.WorkExperience != "":
		return "workExperience"
	case r.HelpsWith != "":
		return "helpsWith"
	case len(r.MentoringFormat) > 0:
		return "mentoringFormat"
	case r.Availability != "":
		return "availability"
	}
	return ""
}

func (r *CreateProfileRequest) firstMenteeField() string {
	switch {
	case len(r.AreasOfInterest) > 0:
		return "areasOfInterest"
	case r.ExperienceLevel != "":
		return "experienceLevel"
	case r.CurrentSituation != "":
		return "currentSituation"
	case r.Goals != "":
		return "goals"
	case r.LookingFor != "":
		return "lookingFor"
	case len(r.PreferredFormat) > 0:
		return "preferredFormat"
	case r.TimeCommitment != "":
		return "timeCommitment"
	}
	return ""
}

// interestNames merges the role's tag sources, dropping exact duplicates.
func (r *CreateProfileRequest) interestNames(role domain.Role) []string {
	if role == domain.RoleMentee {
		return r.AreasOfInterest
	}

	seen := make(map[string]struct{}, len(r.Expertise)+len(r.MentorshipAreas))
	names := make([]string, 0, len(r.Expertise)+len(r.MentorshipAreas))
	for _, name := range append(append([]string{}, r.Expertise...), r.MentorshipAreas...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func (r *CreateProfileRequest) industryNames() []string {
	if strings.TrimSpace(r.Industry) == "" {
		return nil
	}
	return []string{r.Industry}
}

func (r *CreateProfileRequest) toProfile(role domain.Role, accountID string) *domain.Profile {
	p := &domain.Profile{
		AccountID:   accountID,
		Bio:         text(r.Bio),
		City:        text(r.City),
		Timezone:    text(r.Timezone),
		LinkedInURL: text(r.LinkedInURL),
		TwitterURL:  text(r.TwitterURL),
		WebsiteURL:  text(r.WebsiteURL),
	}

	if role == domain.RoleMentee {
		p.ExperienceLevel = MenteeExperienceLevel(r.ExperienceLevel)
		p.MeetingFrequency = MeetingFrequency(r.PreferredFormat)
		p.AvailableHoursPerMonth = AvailableHours(r.TimeCommitment)
		p.CurrentSituation = text(r.CurrentSituation)
		p.Goals = text(r.Goals)
		p.LookingFor = text(r.LookingFor)
		return p
	}

	p.ExperienceLevel = MentorExperienceLevel(r.YearsOfExperience)
	p.MeetingFrequency = MeetingFrequency(r.MentoringFormat)
	p.AvailableHoursPerMonth = AvailableHours(r.Availability)
	p.WorkExperience = text(r.WorkExperience)
	p.HelpsWith = text(r.HelpsWith)
	return p
}

func (r *CreateProfileRequest) toAccount(role domain.Role, identity domain.Identity) *domain.Account {
	age := DefaultAge
	if r.Age != nil && *r.Age > 0 {
		age = *r.Age
	}
	return &domain.Account{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName)),
		Age:   age,
		Role:  role,
	}
}

const maxTextLength = 5000

func (r *UpdateProfileRequest) validate() error {
	if r.ExperienceLevel.HasValue() && !r.ExperienceLevel.Value.Valid() {
		return fmt.Errorf("%w: unknown experienceLevel %q", domain.ErrInvalidInput, r.ExperienceLevel.Value)
	}
	if r.MeetingFrequency.HasValue() && !r.MeetingFrequency.Value.Valid() {
		return fmt.Errorf("%w: unknown meetingFrequency %q", domain.ErrInvalidInput, r.MeetingFrequency.Value)
	}
	if r.AvailableHoursPerMonth.HasValue() && (r.AvailableHoursPerMonth.Value < 0 || r.AvailableHoursPerMonth.Value > 744) {
		return fmt.Errorf("%w: availableHoursPerMonth out of range", domain.ErrInvalidInput)
	}

	texts := map[string]optional.Field[string]{
		"bio": r.Bio, "workExperience": r.WorkExperience, "currentSituation": r.CurrentSituation,
		"lookingFor": r.LookingFor, "helpsWith": r.HelpsWith, "city": r.City, "timezone": r.Timezone,
		"linkedinUrl": r.LinkedInURL, "twitterUrl": r.TwitterURL, "websiteUrl": r.WebsiteURL, "goals": r.Goals,
	}
	for name, f := range texts {
		if f.HasValue() && len(f.Value) > maxTextLength {
			return fmt.Errorf("%w: %s is too long", domain.ErrInvalidInput, name)
		}
	}
	return nil
}

// apply copies every present scalar field onto p.
func (r *UpdateProfileRequest) apply(p *domain.Profile) {
	applyText(&p.Bio, r.Bio)
	applyText(&p.WorkExperience, r.WorkExperience)
	applyText(&p.CurrentSituation, r.CurrentSituation)
	applyText(&p.LookingFor, r.LookingFor)
	applyText(&p.HelpsWith, r.HelpsWith)
	applyText(&p.City, r.City)
	applyText(&p.Timezone, r.Timezone)
	applyText(&p.LinkedInURL, r.LinkedInURL)
	applyText(&p.TwitterURL, r.TwitterURL)
	applyText(&p.WebsiteURL, r.WebsiteURL)
	applyText(&p.Goals, r.Goals)
	applyValue(&p.ExperienceLevel, r.ExperienceLevel)
	applyValue(&p.MeetingFrequency, r.MeetingFrequency)
	applyValue(&p.AvailableHoursPerMonth, r.AvailableHoursPerMonth)
}

func applyText(dst **string, f optional.Field[string]) {
	if !f.Set {
		return
	}
	if f.Null {
		*dst = nil
		return
	}
	*dst = text(f.Value)
}

func applyValue[T any](dst **T, f optional.Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		*dst = nil
		return
	}
	v := f.Value
	*dst = &v
}

// text trims s and maps blank input to nil.
func text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %s", domain.ErrInvalidInput, jsonFieldName(fe), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

func jsonFieldName(fe validator.FieldError) string {
	if name := fe.Field(); name != "" {
		return name
	}
	return fe.StructField()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
