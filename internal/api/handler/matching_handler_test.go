package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

type stubMatchingService struct {
	findMatchesFn func(ctx context.Context, input ports.FindMatchesInput) (*ports.FindMatchesResult, error)
	partnersFn    func(ctx context.Context, input ports.SkillPartnersInput) (*ports.SkillPartnersResult, error)
	statsFn       func(ctx context.Context, userID string) (*ports.MatchingStats, error)
}

func (s *stubMatchingService) FindMatches(ctx context.Context, input ports.FindMatchesInput) (*ports.FindMatchesResult, error) {
	return s.findMatchesFn(ctx, input)
}
func (s *stubMatchingService) FindSkillPartners(ctx context.Context, input ports.SkillPartnersInput) (*ports.SkillPartnersResult, error) {
	return s.partnersFn(ctx, input)
}
func (s *stubMatchingService) Stats(ctx context.Context, userID string) (*ports.MatchingStats, error) {
	return s.statsFn(ctx, userID)
}

func TestMatchingHandler_Matches(t *testing.T) {
	e := newTestEcho()
	h := NewMatchingHandler(&stubMatchingService{
		findMatchesFn: func(ctx context.Context, input ports.FindMatchesInput) (*ports.FindMatchesResult, error) {
			if input.UserID != "user_1" || input.Category != "music" {
				t.Fatalf("input not forwarded: %+v", input)
			}
			return &ports.FindMatchesResult{
				Matches: []ports.Match{{
					User:               ports.MatchedUser{ID: "user_2", Name: "Leo", Role: domain.RoleStudent},
					MatchType:          domain.MatchMutual,
					SharedSkills:       []*domain.Skill{{ID: "skill_piano", Name: "Piano", Category: domain.CategoryMusic}},
					CompatibilityScore: 61,
				}},
				Pagination: ports.Pagination{Total: 7, Page: 1, Limit: 1, TotalPages: 7, HasNext: true},
			}, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matching/matches?category=music", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "user_1", "student")

	if err := h.Matches(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	matches, ok := resp["matches"].([]any)
	if !ok || len(matches) != 1 {
		t.Fatalf("matches missing: %+v", resp)
	}
	first := matches[0].(map[string]any)
	if first["match_type"] != "mutual" || first["compatibility_score"] != float64(61) {
		t.Fatalf("unexpected match payload: %+v", first)
	}
	// total_matches reports the full result-set size, not the page size.
	if resp["total_matches"] != float64(7) {
		t.Fatalf("total_matches wrong: %+v", resp["total_matches"])
	}
}

func TestMatchingHandler_Partners_DefaultsToAll(t *testing.T) {
	e := newTestEcho()
	h := NewMatchingHandler(&stubMatchingService{
		partnersFn: func(ctx context.Context, input ports.SkillPartnersInput) (*ports.SkillPartnersResult, error) {
			if input.MatchType != ports.PartnersAll {
				t.Fatalf("expected default type all, got %q", input.MatchType)
			}
			if input.SkillID != "skill_go" {
				t.Fatalf("skill id not forwarded: %q", input.SkillID)
			}
			return &ports.SkillPartnersResult{
				Skill: &domain.Skill{ID: "skill_go", Name: "Go", Category: domain.CategoryProgramming},
				Partners: []ports.Partner{{
					User:        ports.MatchedUser{ID: "user_2", Name: "Maya", Role: domain.RoleFaculty},
					PartnerType: "teacher",
				}},
				Pagination: ports.Pagination{Total: 3, Page: 1, Limit: 1, TotalPages: 3, HasNext: true},
			}, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matching/skills/skill_go/partners", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "user_1", "student")
	c.SetParamNames("skillId")
	c.SetParamValues("skill_go")

	if err := h.Partners(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["total_partners"] != float64(3) {
		t.Fatalf("total_partners wrong: %+v", resp["total_partners"])
	}
	partners, ok := resp["partners"].([]any)
	if !ok || len(partners) != 1 {
		t.Fatalf("partners missing: %+v", resp)
	}
}

func TestMatchingHandler_Partners_RejectsUnknownType(t *testing.T) {
	e := newTestEcho()
	h := NewMatchingHandler(&stubMatchingService{
		partnersFn: func(ctx context.Context, input ports.SkillPartnersInput) (*ports.SkillPartnersResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matching/skills/skill_go/partners?type=everyone", nil)
	c := authedContext(e, req, httptest.NewRecorder(), "user_1", "student")
	c.SetParamNames("skillId")
	c.SetParamValues("skill_go")

	err := h.Partners(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestMatchingHandler_Stats(t *testing.T) {
	e := newTestEcho()
	h := NewMatchingHandler(&stubMatchingService{
		statsFn: func(ctx context.Context, userID string) (*ports.MatchingStats, error) {
			return &ports.MatchingStats{
				TeachingOpportunities: 2,
				LearningOpportunities: 1,
				MutualExchanges:       1,
				SkillsByCategory: map[domain.SkillCategory]ports.CategoryCount{
					domain.CategoryProgramming: {Offered: 1},
				},
			}, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matching/stats", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "user_1", "student")

	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["teaching_opportunities"] != float64(2) {
		t.Fatalf("unexpected stats payload: %+v", resp)
	}
	byCategory, ok := resp["skills_by_category"].(map[string]any)
	if !ok {
		t.Fatalf("skills_by_category missing: %+v", resp)
	}
	prog := byCategory["programming"].(map[string]any)
	if prog["offered"] != float64(1) {
		t.Fatalf("programming breakdown wrong: %+v", prog)
	}
}
