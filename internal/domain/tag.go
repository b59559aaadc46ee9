package domain

import (
	"time"

	"github.com/google/uuid"
)

type TagKind string

const (
	TagInterest TagKind = "interest"
	TagIndustry TagKind = "industry"
)

func (k TagKind) Valid() bool {
	return k == TagInterest || k == TagIndustry
}

// Tag is a shared label keyed by (kind, slug). Tags are created lazily and
// never deleted; the first submitted display name sticks.
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}
