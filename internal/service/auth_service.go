package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-board/internal/auth"
	"github.com/spec-kit/freight-board/internal/config"
	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/events"
	"github.com/spec-kit/freight-board/internal/repository"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Company  *string
	Address  *string
	City     *string
	Country  *string
}

// AuthService coordinates registration and session flows.
type AuthService struct {
	users      repository.UserRepository
	activities *ActivityService
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, activities *ActivityService, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		activities: activities,
		dispatcher: dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account with role "user". Passwords are hashed here
// and never leave the service.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "required"
	}
	if input.Password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", details)
	}

	email := repository.NormalizeEmail(input.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Phone:        input.Phone,
		Company:      input.Company,
		Address:      input.Address,
		City:         input.City,
		Country:      input.Country,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventUserRegistered,
		ActorID: user.ID,
		Payload: events.UserRegisteredPayload{UserID: user.ID, Email: user.Email},
	})
	return user, nil
}

// Login exchanges credentials for a session token. Unknown email and wrong
// password produce the same error so callers cannot probe which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("invalid credentials")
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.activities.Record(ctx, user, "login", domain.ActivityTypeUser, nil); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout ends the session. The audit write is best effort; a failed write
// never fails the logout itself.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) {
	s.activities.RecordQuiet(ctx, user, "logout", domain.ActivityTypeUser, nil)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
