package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

// DirectoryService implements the user/skill directory operations. It guards
// the faculty availability update path with ValidateWeeklyAvailability and
// keeps skill references duplicate-free.
type DirectoryService struct {
	users  ports.UserRepository
	skills ports.SkillRepository
	logger zerolog.Logger
}

func NewDirectoryService(users ports.UserRepository, skills ports.SkillRepository, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{users: users, skills: skills, logger: logger}
}

func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateSkills replaces both skill sets on the caller's own profile. Every
// referenced skill must exist and neither set may contain duplicates.
func (s *DirectoryService) UpdateSkills(ctx context.Context, input ports.UpdateSkillsInput) (*domain.User, error) {
	if hasDuplicates(input.Offered) || hasDuplicates(input.Seeking) {
		return nil, domain.ErrDuplicateSkillRef
	}

	for _, set := range [][]string{input.Offered, input.Seeking} {
		if len(set) == 0 {
			continue
		}
		resolved, err := s.skills.FindByIDs(ctx, set)
		if err != nil {
			return nil, fmt.Errorf("update skills: %w", err)
		}
		if len(resolved) != len(set) {
			return nil, domain.ErrSkillNotFound
		}
	}

	if err := s.users.UpdateSkills(ctx, input.UserID, input.Offered, input.Seeking); err != nil {
		return nil, fmt.Errorf("update skills: %w", err)
	}

	s.logger.Info().
		Str("user_id", input.UserID).
		Int("offered", len(input.Offered)).
		Int("seeking", len(input.Seeking)).
		Msg("skill sets updated")

	return s.users.FindByID(ctx, input.UserID)
}

// UpdateFacultyAvailability validates and stores a faculty member's weekly
// schedule. Non-faculty users are rejected.
func (s *DirectoryService) UpdateFacultyAvailability(ctx context.Context, input ports.UpdateAvailabilityInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleFaculty {
		return nil, domain.ErrForbidden
	}

	if err := ValidateWeeklyAvailability(input.Weekly); err != nil {
		return nil, err
	}

	if err := s.users.UpdateFacultyAvailability(ctx, input.UserID, input.CurrentStatus, input.Weekly); err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}

	s.logger.Info().Str("user_id", input.UserID).Msg("faculty availability updated")

	return s.users.FindByID(ctx, input.UserID)
}

func (s *DirectoryService) ListSkills(ctx context.Context, category domain.SkillCategory) ([]*domain.Skill, error) {
	return s.skills.List(ctx, category)
}

// CreateSkill registers a new skill. Name uniqueness (case-insensitive) is
// enforced by the repository.
func (s *DirectoryService) CreateSkill(ctx context.Context, input ports.CreateSkillInput) (*domain.Skill, error) {
	if input.Name == "" || input.Category == "" {
		return nil, domain.ErrMissingFields
	}

	skill := &domain.Skill{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Difficulty:  input.Difficulty,
	}

	created, err := s.skills.Create(ctx, skill)
	if err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}

	s.logger.Info().Str("skill_id", created.ID).Str("name", created.Name).Msg("skill created")
	return created, nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
