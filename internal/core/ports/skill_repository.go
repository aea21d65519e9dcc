package ports

import (
	"context"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// SkillRepository owns the skill catalogue. Skill names are globally unique,
// case-insensitive; Create returns domain.ErrSkillExists on a name collision.
type SkillRepository interface {
	Create(ctx context.Context, skill *domain.Skill) (*domain.Skill, error)
	FindByID(ctx context.Context, id string) (*domain.Skill, error)
	// FindByIDs resolves a set of skill ids to full records. Unknown ids are
	// silently dropped from the result.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Skill, error)
	List(ctx context.Context, category domain.SkillCategory) ([]*domain.Skill, error)
}
