package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
	"github.com/weddingplan/planner-api/internal/core/store"
)

const guestDisplayName = "Khách"

// AuthService implements registration, login and sign-out.
type AuthService struct {
	repo        ports.UserRepository
	sessions    Sessions
	jwtSecret   string
	tokenTTL    time.Duration
	adminEmails map[string]struct{}
	log         zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, sessions Sessions, jwtSecret string, tokenTTL time.Duration, adminEmails []string, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &AuthService{
		repo:        repo,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		adminEmails: admins,
		log:         log,
	}
}

// Register creates an email account. Addresses listed as admin emails become
// activated administrators with every permission.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Permissions:  domain.Permissions{CloudStorage: true},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, ok := s.adminEmails[email]; ok {
		user.Role = domain.RoleAdmin
		user.Activated = true
		user.Permissions = domain.Permissions{AllowCustomAPIKey: true, CloudStorage: true}
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GuestSignIn creates an anonymous account whose data never leaves the local
// slot.
func (s *AuthService) GuestSignIn(ctx context.Context, displayName string) (string, *domain.User, error) {
	if displayName == "" {
		displayName = guestDisplayName
	}
	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Role:        domain.RoleGuest,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout resets the usage counters of the user, opening the store from its
// saved state when no session holds it, pushes any pending cloud write and
// closes the store.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	st, err := s.sessions.Acquire(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = st.Dispatch(ctx, store.ResetUsage())
	s.sessions.Release(userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to persist usage reset on logout")
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  string(user.Role),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
