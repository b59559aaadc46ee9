package profile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
)

// maxAvailableHours is reported for open-ended brackets such as "8+".
const maxAvailableHours = 10

// The mentee form collects a self-assessed level and the mentor form a years
// bracket. Both feed the same enum through separate tables.
var (
	menteeExperienceLevels = map[string]domain.ExperienceLevel{
		"entry":  domain.ExperienceEntry,
		"junior": domain.ExperienceMid,
		"mid":    domain.ExperienceSenior,
		"senior": domain.ExperienceExecutive,
	}

	mentorExperienceLevels = map[string]domain.ExperienceLevel{
		"0-3":  domain.ExperienceEntry,
		"3-7":  domain.ExperienceMid,
		"7-15": domain.ExperienceSenior,
		"15+":  domain.ExperienceExecutive,
	}

	hoursRangePattern = regexp.MustCompile(`(\d+)-(\d+)`)
)

// MenteeExperienceLevel maps a mentee level key, ignoring case and
// surrounding space. Unknown keys return nil.
func MenteeExperienceLevel(key string) *domain.ExperienceLevel {
	if level, ok := menteeExperienceLevels[normalizeKey(key)]; ok {
		return &level
	}
	return nil
}

// MentorExperienceLevel maps a mentor years-of-experience bracket such as
// "7-15" or "15 +". Unknown brackets return nil.
func MentorExperienceLevel(bracket string) *domain.ExperienceLevel {
	key := strings.ReplaceAll(normalizeKey(bracket), " ", "")
	if level, ok := mentorExperienceLevels[key]; ok {
		return &level
	}
	return nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MeetingFrequency derives the frequency from the first selected format.
// An empty selection returns nil.
func MeetingFrequency(formats []string) *domain.MeetingFrequency {
	if len(formats) == 0 {
		return nil
	}

	first := strings.ToLower(formats[0])
	var freq domain.MeetingFrequency
	switch {
	case strings.Contains(first, "daily"):
		freq = domain.MeetingWeekly
	case strings.Contains(first, "weekly") && !strings.Contains(first, "bi"):
		freq = domain.MeetingWeekly
	case strings.Contains(first, "bi"):
		freq = domain.MeetingBiweekly
	default:
		freq = domain.MeetingFlexible
	}
	return &freq
}

// AvailableHours estimates monthly hours from a bracket like "2-4" or "8+".
func AvailableHours(bracket string) *int {
	if bracket == "" {
		return nil
	}
	if strings.Contains(bracket, "+") {
		hours := maxAvailableHours
		return &hours
	}

	m := hoursRangePattern.FindStringSubmatch(bracket)
	if m == nil {
		return nil
	}
	hours, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	return &hours
}
