package ports

import (
	"context"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// Pagination is the page metadata attached to every paginated result.
type Pagination struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// MatchedUser is the public view of a candidate partner.
type MatchedUser struct {
	ID          string
	Name        string
	Role        string
	IsAvailable bool
	Mode        domain.AvailabilityMode
	Location    string
}

// Match pairs a candidate with the overlap that produced it. A user may
// appear once per applicable direction; buckets are never de-duplicated.
type Match struct {
	User               MatchedUser
	MatchType          domain.MatchType
	SharedSkills       []*domain.Skill
	CompatibilityScore int
}

// FindMatchesInput carries the parameters of a ranked-match query.
type FindMatchesInput struct {
	UserID   string
	Category string // optional skill-category filter
	Page     int
	Limit    int
}

// UserSkillsView is the caller's own skill sets resolved to metadata.
type UserSkillsView struct {
	Offered []*domain.Skill
	Seeking []*domain.Skill
}

// FindMatchesResult is returned by FindMatches.
type FindMatchesResult struct {
	Matches    []Match
	Pagination Pagination
	UserSkills UserSkillsView
}

// Partner finder match types.
const (
	PartnersTeachers = "teachers"
	PartnersLearners = "learners"
	PartnersAll      = "all"
)

// Partner is a user who offers or seeks one specific skill.
type Partner struct {
	User        MatchedUser
	PartnerType string // "teacher" or "learner"
}

// SkillPartnersInput carries the parameters of a partner query for one skill.
type SkillPartnersInput struct {
	UserID    string
	SkillID   string
	MatchType string // teachers | learners | all
	Page      int
	Limit     int
}

// SkillPartnersResult is returned by FindSkillPartners.
type SkillPartnersResult struct {
	Skill      *domain.Skill
	Partners   []Partner
	Pagination Pagination
}

// CategoryCount breaks down one category of the caller's skill sets.
type CategoryCount struct {
	Offered int
	Seeking int
}

// MatchingStats summarises a user's exchange opportunities.
type MatchingStats struct {
	TeachingOpportunities int
	LearningOpportunities int
	MutualExchanges       int
	SkillsByCategory      map[domain.SkillCategory]CategoryCount
}

// MatchingService discovers and ranks potential exchange partners.
type MatchingService interface {
	FindMatches(ctx context.Context, input FindMatchesInput) (*FindMatchesResult, error)
	FindSkillPartners(ctx context.Context, input SkillPartnersInput) (*SkillPartnersResult, error)
	Stats(ctx context.Context, userID string) (*MatchingStats, error)
}
