package domain

import "time"

type Role string

const (
	RoleMentor Role = "MENTOR"
	RoleMentee Role = "MENTEE"
)

// Account is the platform user record. ID is the identity provider's user id.
// Role is written on first insert only.
type Account struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Identity is the verified caller supplied by the authentication provider.
type Identity struct {
	ID    string
	Email string
}
