package domain

// BioRequest carries what the onboarding form knows when the user asks for
// bio suggestions.
type BioRequest struct {
	Role            Role
	FirstName       string
	Interests       []string
	Industry        string
	City            string
	ExperienceLevel string
}

// Bio tones returned as keys of a draft set.
const (
	BioToneProfessional = "professional"
	BioToneFriendly     = "friendly"
	BioToneConcise      = "concise"
)
