package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrSnapshotNotFound   = errors.New("snapshot not found")
	ErrSyncConflict       = errors.New("remote snapshot was modified concurrently")
	ErrInvalidDate        = errors.New("invalid date")
	ErrUsageLimitReached  = errors.New("free usage limit reached")
	ErrProcedureNotFound  = errors.New("procedure step not found")
	ErrAdvisorUnavailable = errors.New("advisor unavailable")
	ErrProfileIncomplete  = errors.New("feng shui profile incomplete")
)
