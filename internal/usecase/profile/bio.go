package profile

import (
	"fmt"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
)

// TemplateBios builds deterministic bio drafts from the form data.
func TemplateBios(req domain.BioRequest) map[string]string {
	name := strings.TrimSpace(req.FirstName)
	topics := "growing my career"
	if len(req.Interests) > 0 {
		topics = joinTopics(req.Interests)
	}

	field := ""
	if industry := strings.TrimSpace(req.Industry); industry != "" {
		field = " in " + industry
	}
	place := ""
	if city := strings.TrimSpace(req.City); city != "" {
		place = fmt.Sprintf(" based in %s", city)
	}

	if req.Role == domain.RoleMentor {
		return map[string]string{
			domain.BioToneProfessional: fmt.Sprintf("I'm %s, a practitioner%s%s. I mentor people on %s and help them turn goals into concrete next steps.", name, field, place, topics),
			domain.BioToneFriendly:     fmt.Sprintf("Hi, I'm %s! I love talking about %s and I'm happy to share what I've learned along the way.", name, topics),
			domain.BioToneConcise:      fmt.Sprintf("%s. Mentor%s. Ask me about %s.", name, field, topics),
		}
	}

	return map[string]string{
		domain.BioToneProfessional: fmt.Sprintf("I'm %s%s, looking to grow%s with a focus on %s.", name, place, field, topics),
		domain.BioToneFriendly:     fmt.Sprintf("Hi, I'm %s! I'm curious about %s and looking for a mentor to learn from.", name, topics),
		domain.BioToneConcise:      fmt.Sprintf("%s. Learning %s.", name, topics),
	}
}

func joinTopics(items []string) string {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	switch len(clean) {
	case 0:
		return "growing my career"
	case 1:
		return clean[0]
	case 2:
		return clean[0] + " and " + clean[1]
	}
	return strings.Join(clean[:len(clean)-1], ", ") + " and " + clean[len(clean)-1]
}
