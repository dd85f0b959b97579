package dto

import (
	"time"

	"github.com/spec-kit/freight-board/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Country  *string `json:"country"`
}

// LoginRequest payload for session creation.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the account view returned by auth and profile endpoints.
// The password hash is never serialized.
type UserSummary struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Phone        *string     `json:"phone,omitempty"`
	Company      *string     `json:"company,omitempty"`
	Address      *string     `json:"address,omitempty"`
	City         *string     `json:"city,omitempty"`
	Country      *string     `json:"country,omitempty"`
	LastActiveAt time.Time   `json:"last_active_at"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SessionResponse carries the issued bearer token.
type SessionResponse struct {
	Token string `json:"token"`
}

// NewUserSummary maps a domain user to its response shape.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Phone:        user.Phone,
		Company:      user.Company,
		Address:      user.Address,
		City:         user.City,
		Country:      user.Country,
		LastActiveAt: user.LastActiveAt,
		CreatedAt:    user.CreatedAt,
	}
}
