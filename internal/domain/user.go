package domain

import "time"

// Role determines the visibility scope of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is a known enum value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for registered accounts. Emails are stored
// normalized (trimmed, lower-cased) and unique case-insensitively.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	Company      *string
	Address      *string
	City         *string
	Country      *string
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
