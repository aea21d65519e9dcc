package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

// MatchingService discovers candidate partners in the user directory, scores
// them with CompatibilityScore, and returns them ranked.
type MatchingService struct {
	users  ports.UserRepository
	skills ports.SkillRepository
	logger zerolog.Logger
}

func NewMatchingService(users ports.UserRepository, skills ports.SkillRepository, logger zerolog.Logger) *MatchingService {
	return &MatchingService{users: users, skills: skills, logger: logger}
}

// FindMatches returns every candidate in the three direction buckets, scored,
// optionally filtered by category, sorted descending by score, paginated.
// A candidate legitimately appears once per applicable bucket.
func (s *MatchingService) FindMatches(ctx context.Context, input ports.FindMatchesInput) (*ports.FindMatchesResult, error) {
	me, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	offered, err := s.skills.FindByIDs(ctx, me.SkillsOffered)
	if err != nil {
		return nil, fmt.Errorf("find matches: resolve offered: %w", err)
	}
	seeking, err := s.skills.FindByIDs(ctx, me.SkillsSeeking)
	if err != nil {
		return nil, fmt.Errorf("find matches: resolve seeking: %w", err)
	}
	skillByID := indexSkills(offered, seeking)

	buckets, err := s.candidateBuckets(ctx, me)
	if err != nil {
		return nil, err
	}

	var matches []ports.Match
	for _, b := range buckets {
		for _, cand := range b.users {
			overlap := b.overlap(me, cand)
			matches = append(matches, ports.Match{
				User:               toMatchedUser(cand),
				MatchType:          b.direction,
				SharedSkills:       resolveSkills(overlap, skillByID),
				CompatibilityScore: CompatibilityScore(me.Profile(), cand.Profile(), b.direction),
			})
		}
	}

	if input.Category != "" {
		matches = filterByCategory(matches, domain.SkillCategory(input.Category))
	}

	// Stable keeps insertion order (teaching, learning, mutual) on ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CompatibilityScore > matches[j].CompatibilityScore
	})

	page, limit := normalizePage(input.Page, input.Limit)
	total := int64(len(matches))

	s.logger.Debug().
		Str("user_id", me.ID).
		Int64("total", total).
		Str("category", input.Category).
		Msg("matches computed")

	return &ports.FindMatchesResult{
		Matches:    pageSlice(matches, page, limit),
		Pagination: newPagination(total, page, limit),
		UserSkills: ports.UserSkillsView{Offered: offered, Seeking: seeking},
	}, nil
}

// FindSkillPartners returns all non-self users offering or seeking one skill,
// tagged by side. No scoring is applied.
func (s *MatchingService) FindSkillPartners(ctx context.Context, input ports.SkillPartnersInput) (*ports.SkillPartnersResult, error) {
	skill, err := s.skills.FindByID(ctx, input.SkillID)
	if err != nil {
		return nil, fmt.Errorf("find partners: %w", err)
	}

	var partners []ports.Partner

	if input.MatchType == ports.PartnersTeachers || input.MatchType == ports.PartnersAll {
		teachers, err := s.users.FindOfferingAny(ctx, []string{skill.ID}, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("find partners: teachers: %w", err)
		}
		for _, u := range teachers {
			partners = append(partners, ports.Partner{User: toMatchedUser(u), PartnerType: "teacher"})
		}
	}

	if input.MatchType == ports.PartnersLearners || input.MatchType == ports.PartnersAll {
		learners, err := s.users.FindSeekingAny(ctx, []string{skill.ID}, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("find partners: learners: %w", err)
		}
		for _, u := range learners {
			partners = append(partners, ports.Partner{User: toMatchedUser(u), PartnerType: "learner"})
		}
	}

	page, limit := normalizePage(input.Page, input.Limit)
	total := int64(len(partners))

	return &ports.SkillPartnersResult{
		Skill:      skill,
		Partners:   pageSlice(partners, page, limit),
		Pagination: newPagination(total, page, limit),
	}, nil
}

// Stats returns unpaginated opportunity counts per direction plus a
// per-category breakdown of the caller's own skill sets.
func (s *MatchingService) Stats(ctx context.Context, userID string) (*ports.MatchingStats, error) {
	me, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("matching stats: %w", err)
	}

	buckets, err := s.candidateBuckets(ctx, me)
	if err != nil {
		return nil, err
	}

	offered, err := s.skills.FindByIDs(ctx, me.SkillsOffered)
	if err != nil {
		return nil, fmt.Errorf("matching stats: resolve offered: %w", err)
	}
	seeking, err := s.skills.FindByIDs(ctx, me.SkillsSeeking)
	if err != nil {
		return nil, fmt.Errorf("matching stats: resolve seeking: %w", err)
	}

	byCategory := make(map[domain.SkillCategory]ports.CategoryCount)
	for _, sk := range offered {
		c := byCategory[sk.Category]
		c.Offered++
		byCategory[sk.Category] = c
	}
	for _, sk := range seeking {
		c := byCategory[sk.Category]
		c.Seeking++
		byCategory[sk.Category] = c
	}

	return &ports.MatchingStats{
		TeachingOpportunities: len(buckets[0].users),
		LearningOpportunities: len(buckets[1].users),
		MutualExchanges:       len(buckets[2].users),
		SkillsByCategory:      byCategory,
	}, nil
}

// bucket holds one direction's candidates plus how to derive the shared
// skill list for a candidate in it.
type bucket struct {
	direction domain.MatchType
	users     []*domain.User
	overlap   func(me, cand *domain.User) []string
}

// candidateBuckets runs the three directory queries. Order matters: the
// concatenation order (teaching, learning, mutual) is the tie-break order.
func (s *MatchingService) candidateBuckets(ctx context.Context, me *domain.User) ([3]bucket, error) {
	var out [3]bucket

	teaching, err := s.findIfAny(ctx, s.users.FindSeekingAny, me.SkillsOffered, me.ID)
	if err != nil {
		return out, fmt.Errorf("teaching candidates: %w", err)
	}
	learning, err := s.findIfAny(ctx, s.users.FindOfferingAny, me.SkillsSeeking, me.ID)
	if err != nil {
		return out, fmt.Errorf("learning candidates: %w", err)
	}

	var mutual []*domain.User
	if len(me.SkillsOffered) > 0 && len(me.SkillsSeeking) > 0 {
		mutual, err = s.users.FindMutual(ctx, me.SkillsOffered, me.SkillsSeeking, me.ID)
		if err != nil {
			return out, fmt.Errorf("mutual candidates: %w", err)
		}
	}

	out = [3]bucket{
		{
			direction: domain.MatchTeaching,
			users:     teaching,
			overlap: func(me, cand *domain.User) []string {
				return intersectIDs(me.SkillsOffered, cand.SkillsSeeking)
			},
		},
		{
			direction: domain.MatchLearning,
			users:     learning,
			overlap: func(me, cand *domain.User) []string {
				return intersectIDs(me.SkillsSeeking, cand.SkillsOffered)
			},
		},
		{
			direction: domain.MatchMutual,
			users:     mutual,
			overlap: func(me, cand *domain.User) []string {
				teach := intersectIDs(me.SkillsOffered, cand.SkillsSeeking)
				learn := intersectIDs(me.SkillsSeeking, cand.SkillsOffered)
				return append(teach, learn...)
			},
		},
	}
	return out, nil
}

type findFunc func(ctx context.Context, skillIDs []string, excludeID string) ([]*domain.User, error)

func (s *MatchingService) findIfAny(ctx context.Context, find findFunc, skillIDs []string, excludeID string) ([]*domain.User, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	return find(ctx, skillIDs, excludeID)
}

func filterByCategory(matches []ports.Match, category domain.SkillCategory) []ports.Match {
	var out []ports.Match
	for _, m := range matches {
		for _, sk := range m.SharedSkills {
			if sk.Category == category {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func toMatchedUser(u *domain.User) ports.MatchedUser {
	return ports.MatchedUser{
		ID:          u.ID,
		Name:        u.Name,
		Role:        u.Role,
		IsAvailable: u.IsAvailable,
		Mode:        u.Mode,
		Location:    u.Location,
	}
}

func indexSkills(sets ...[]*domain.Skill) map[string]*domain.Skill {
	byID := make(map[string]*domain.Skill)
	for _, set := range sets {
		for _, sk := range set {
			byID[sk.ID] = sk
		}
	}
	return byID
}

func resolveSkills(ids []string, byID map[string]*domain.Skill) []*domain.Skill {
	var out []*domain.Skill
	for _, id := range ids {
		if sk, ok := byID[id]; ok {
			out = append(out, sk)
		}
	}
	return out
}
