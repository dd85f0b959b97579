package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-board/internal/domain"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

type stubUserRepo struct {
	user    *domain.User
	touched bool
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, pgx.ErrNoRows
	}
	clone := *s.user
	return &clone, nil
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) TouchLastActive(context.Context, string, time.Time) error {
	s.touched = true
	return nil
}

func (s *stubUserRepo) CountActiveSince(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newMiddlewareTestApp(mw *AuthMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		},
	})
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"data": fiber.Map{"id": principal.User.ID}})
	})
	return app
}

func middlewareStatus(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	tm := NewTokenManager("unit-secret", 5)
	app := newMiddlewareTestApp(NewAuthMiddleware(tm, &stubUserRepo{}))

	cases := []struct{ name, header string }{
		{"missing header", ""},
		{"wrong scheme", "Token abcdef"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		if status := middlewareStatus(t, app, tc.header); status != fiber.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, status)
		}
	}
}

func TestAuthMiddlewareRejectsForeignToken(t *testing.T) {
	issuer := NewTokenManager("secret-a", 5)
	verifier := NewTokenManager("secret-b", 5)
	token, _, err := issuer.GenerateToken("user-123", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newMiddlewareTestApp(NewAuthMiddleware(verifier, &stubUserRepo{}))
	if status := middlewareStatus(t, app, "Bearer "+token); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

// A well-signed token whose account has since been deleted is a missing user
// record, and renders as 404 rather than 401.
func TestAuthMiddlewareDeletedUserIsNotFound(t *testing.T) {
	tm := NewTokenManager("unit-secret", 5)
	token, _, err := tm.GenerateToken("gone-user", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newMiddlewareTestApp(NewAuthMiddleware(tm, &stubUserRepo{}))
	if status := middlewareStatus(t, app, "Bearer "+token); status != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestAuthMiddlewareLoadsPrincipal(t *testing.T) {
	tm := NewTokenManager("unit-secret", 5)
	repo := &stubUserRepo{user: &domain.User{ID: "user-123", Role: domain.RoleUser}}
	token, _, err := tm.GenerateToken("user-123", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newMiddlewareTestApp(NewAuthMiddleware(tm, repo))
	if status := middlewareStatus(t, app, "Bearer "+token); status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if !repo.touched {
		t.Error("authenticated request should refresh last_active_at")
	}
}
