package ports

import (
	"context"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// UserRepository defines persistence operations for the user directory.
//
// The three candidate queries back the match finder: each excludes the user
// identified by excludeID so a caller never matches themselves.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateSkills replaces both skill-id sets on the user's profile.
	UpdateSkills(ctx context.Context, id string, offered, seeking []string) error
	// UpdateFacultyAvailability replaces the faculty presence status and
	// weekly availability. The caller is responsible for validating the
	// schedule before this is invoked.
	UpdateFacultyAvailability(ctx context.Context, id string, status domain.FacultyStatus, weekly []domain.DayAvailability) error

	// FindSeekingAny returns users whose skills_seeking intersects skillIDs.
	FindSeekingAny(ctx context.Context, skillIDs []string, excludeID string) ([]*domain.User, error)
	// FindOfferingAny returns users whose skills_offered intersects skillIDs.
	FindOfferingAny(ctx context.Context, skillIDs []string, excludeID string) ([]*domain.User, error)
	// FindMutual returns users offering any of seekingIDs and simultaneously
	// seeking any of offeredIDs.
	FindMutual(ctx context.Context, offeredIDs, seekingIDs []string, excludeID string) ([]*domain.User, error)
}
