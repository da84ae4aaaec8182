package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/api/handler"
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
	"github.com/weddingplan/planner-api/internal/core/store"
)

const testSecret = "router-secret"

type nopAuth struct{}

func (nopAuth) Register(context.Context, string, string, string) (*domain.User, error) {
	return nil, domain.ErrUserExists
}
func (nopAuth) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}
func (nopAuth) GuestSignIn(context.Context, string) (string, *domain.User, error) {
	return "", nil, nil
}
func (nopAuth) Logout(context.Context, string) error { return nil }

type nopUsers struct{}

func (nopUsers) Profile(context.Context, string) (*domain.User, error) {
	return &domain.User{ID: "u1"}, nil
}
func (nopUsers) UpdateProfile(context.Context, string, ports.ProfileUpdate) (*domain.User, error) {
	return nil, nil
}
func (nopUsers) ListUsers(context.Context, string) ([]*domain.User, error) { return nil, nil }
func (nopUsers) UpdateUser(context.Context, string, ports.UserUpdate) (*domain.User, error) {
	return nil, nil
}
func (nopUsers) DeleteUser(context.Context, string) error { return nil }
func (nopUsers) ResetUsage(context.Context, string) error { return nil }

type nopStores struct{}

func (nopStores) Acquire(context.Context, string) (*store.Store, error) {
	return nil, domain.ErrUserNotFound
}

func signedToken(t *testing.T, role domain.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "role": string(role)})
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

var (
	routerOnce sync.Once
	testRouter http.Handler
)

// newTestRouter builds the router once; the prometheus middleware registers
// its collectors globally.
func newTestRouter() http.Handler {
	routerOnce.Do(func() {
		testRouter = NewRouter(Deps{
			JWTSecret: testSecret,
			Logger:    zerolog.Nop(),
			Auth:      handler.NewAuthHandler(nopAuth{}),
			Planner:   handler.NewPlannerHandler(nopStores{}),
			Advisor:   handler.NewAdvisorHandler(nil),
			Users:     handler.NewUserHandler(nopUsers{}),
		})
	})
	return testRouter
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_AdminRoutesRequireAdminRole(t *testing.T) {
	router := newTestRouter()
	cases := map[domain.Role]int{
		domain.RoleUser:  http.StatusForbidden,
		domain.RoleAdmin: http.StatusOK,
	}
	for role, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, role))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("role %s: expected %d, got %d", role, want, rec.Code)
		}
	}
}

func TestRouter_DomainErrorsUseEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, domain.RoleUser))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
