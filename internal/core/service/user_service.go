package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/planning"
	"github.com/weddingplan/planner-api/internal/core/ports"
	"github.com/weddingplan/planner-api/internal/core/store"
)

// SnapshotDeleter removes the stored planner data of an account.
type SnapshotDeleter interface {
	Delete(ctx context.Context, userID string) error
}

// UserService implements the profile and account administration use cases.
type UserService struct {
	repo     ports.UserRepository
	sessions Sessions
	purge    []SnapshotDeleter
	logger   zerolog.Logger
}

// NewUserService returns a UserService. The purge stores are cleared when an
// account is deleted.
func NewUserService(repo ports.UserRepository, sessions Sessions, logger zerolog.Logger, purge ...SnapshotDeleter) *UserService {
	return &UserService{repo: repo, sessions: sessions, purge: purge, logger: logger}
}

// Profile returns the account of userID.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile changes the display name and wedding date of userID.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		user.DisplayName = *in.DisplayName
	}
	if in.WeddingDate != nil {
		if *in.WeddingDate != "" {
			if _, err := planning.ParseDate(*in.WeddingDate); err != nil {
				return nil, err
			}
		}
		user.WeddingDate = *in.WeddingDate
	}
	return s.save(ctx, user)
}

// ListUsers returns every account. The listing is also kept on the
// requesting admin's open store.
func (s *UserService) ListUsers(ctx context.Context, adminID string) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if st, ok := s.sessions.Lookup(adminID); ok {
		flat := make([]domain.User, 0, len(users))
		for _, u := range users {
			flat = append(flat, *u)
		}
		_, _ = st.Dispatch(ctx, store.CacheAdminUsers(flat))
	}
	return users, nil
}

// UpdateUser changes role, activation and permissions of an account.
func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UserUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Activated != nil {
		user.Activated = *in.Activated
	}
	if in.Permissions != nil {
		user.Permissions = *in.Permissions
	}

	updated, err := s.save(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("user_id", id).
		Str("role", string(updated.Role)).
		Bool("activated", updated.Activated).
		Bool("cloud_storage", updated.Permissions.CloudStorage).
		Msg("user updated by admin")
	return updated, nil
}

// DeleteUser removes an account, drops its store without syncing and clears
// its planner data once queued cloud writes have landed.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.Discard(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("pending cloud write still running during delete")
	}
	for _, p := range s.purge {
		if err := p.Delete(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to clear planner data")
		}
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ResetUsage zeroes the advisor counters of an account.
func (s *UserService) ResetUsage(ctx context.Context, id string) error {
	st, err := s.sessions.Acquire(ctx, id)
	if err != nil {
		return err
	}
	if _, err := st.Dispatch(ctx, store.ResetUsage()); err != nil {
		return fmt.Errorf("reset usage: %w", err)
	}
	return nil
}

func (s *UserService) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update user")
		return nil, err
	}
	if st, ok := s.sessions.Lookup(user.ID); ok {
		_, _ = st.Dispatch(ctx, store.SetUser(user))
	}
	return user, nil
}
