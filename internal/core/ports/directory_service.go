package ports

import (
	"context"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// UpdateSkillsInput replaces a user's offered and seeking skill sets.
type UpdateSkillsInput struct {
	UserID  string
	Offered []string
	Seeking []string
}

// UpdateAvailabilityInput replaces a faculty member's presence status and
// weekly schedule.
type UpdateAvailabilityInput struct {
	UserID        string
	CurrentStatus domain.FacultyStatus
	Weekly        []domain.DayAvailability
}

// CreateSkillInput registers a new skill in the catalogue.
type CreateSkillInput struct {
	Name        string
	Category    domain.SkillCategory
	Description string
	Difficulty  domain.SkillDifficulty
}

// DirectoryService is the thin read/write surface over users and skills the
// matching and scheduling core depends on.
type DirectoryService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateSkills(ctx context.Context, input UpdateSkillsInput) (*domain.User, error)
	UpdateFacultyAvailability(ctx context.Context, input UpdateAvailabilityInput) (*domain.User, error)
	ListSkills(ctx context.Context, category domain.SkillCategory) ([]*domain.Skill, error)
	CreateSkill(ctx context.Context, input CreateSkillInput) (*domain.Skill, error)
}
