package handler

import (
	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

type skillResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty,omitempty"`
	Description string `json:"description,omitempty"`
}

type matchedUserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	IsAvailable bool   `json:"is_available"`
	Mode        string `json:"mode,omitempty"`
	Location    string `json:"location,omitempty"`
}

type matchResponse struct {
	User               matchedUserResponse `json:"user"`
	MatchType          string              `json:"match_type"`
	SharedSkills       []skillResponse     `json:"shared_skills"`
	CompatibilityScore int                 `json:"compatibility_score"`
}

type userSkillsResponse struct {
	Offered []skillResponse `json:"offered"`
	Seeking []skillResponse `json:"seeking"`
}

type findMatchesResponse struct {
	Matches      []matchResponse    `json:"matches"`
	TotalMatches int64              `json:"total_matches"`
	Pagination   paginationResponse `json:"pagination"`
	UserSkills   userSkillsResponse `json:"user_skills"`
}

type partnerResponse struct {
	User        matchedUserResponse `json:"user"`
	PartnerType string              `json:"partner_type"`
}

type skillPartnersResponse struct {
	Skill         skillResponse      `json:"skill"`
	Partners      []partnerResponse  `json:"partners"`
	TotalPartners int64              `json:"total_partners"`
	Pagination    paginationResponse `json:"pagination"`
}

type categoryCountResponse struct {
	Offered int `json:"offered"`
	Seeking int `json:"seeking"`
}

type matchingStatsResponse struct {
	TeachingOpportunities int                              `json:"teaching_opportunities"`
	LearningOpportunities int                              `json:"learning_opportunities"`
	MutualExchanges       int                              `json:"mutual_exchanges"`
	SkillsByCategory      map[string]categoryCountResponse `json:"skills_by_category"`
}

func toSkillResponse(s *domain.Skill) skillResponse {
	return skillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    string(s.Category),
		Difficulty:  string(s.Difficulty),
		Description: s.Description,
	}
}

func toSkillResponses(skills []*domain.Skill) []skillResponse {
	out := make([]skillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, toSkillResponse(s))
	}
	return out
}

func toMatchedUserResponse(u ports.MatchedUser) matchedUserResponse {
	return matchedUserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Role:        u.Role,
		IsAvailable: u.IsAvailable,
		Mode:        string(u.Mode),
		Location:    u.Location,
	}
}
