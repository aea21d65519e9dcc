package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

type stubDirectoryService struct {
	getUserFn            func(ctx context.Context, id string) (*domain.User, error)
	updateSkillsFn       func(ctx context.Context, input ports.UpdateSkillsInput) (*domain.User, error)
	updateAvailabilityFn func(ctx context.Context, input ports.UpdateAvailabilityInput) (*domain.User, error)
	listSkillsFn         func(ctx context.Context, category domain.SkillCategory) ([]*domain.Skill, error)
	createSkillFn        func(ctx context.Context, input ports.CreateSkillInput) (*domain.Skill, error)
}

func (s *stubDirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserFn(ctx, id)
}
func (s *stubDirectoryService) UpdateSkills(ctx context.Context, input ports.UpdateSkillsInput) (*domain.User, error) {
	return s.updateSkillsFn(ctx, input)
}
func (s *stubDirectoryService) UpdateFacultyAvailability(ctx context.Context, input ports.UpdateAvailabilityInput) (*domain.User, error) {
	return s.updateAvailabilityFn(ctx, input)
}
func (s *stubDirectoryService) ListSkills(ctx context.Context, category domain.SkillCategory) ([]*domain.Skill, error) {
	return s.listSkillsFn(ctx, category)
}
func (s *stubDirectoryService) CreateSkill(ctx context.Context, input ports.CreateSkillInput) (*domain.Skill, error) {
	return s.createSkillFn(ctx, input)
}

func TestDirectoryHandler_CreateSkill_AcceptsEveryCategory(t *testing.T) {
	e := newTestEcho()
	h := NewDirectoryHandler(&stubDirectoryService{
		createSkillFn: func(ctx context.Context, input ports.CreateSkillInput) (*domain.Skill, error) {
			return &domain.Skill{ID: "skill_1", Name: input.Name, Category: input.Category}, nil
		},
	}, zerolog.Nop())

	for _, category := range domain.SkillCategories {
		body := `{"name":"Test Skill","category":"` + string(category) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/skills", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		if err := h.CreateSkill(e.NewContext(req, rec)); err != nil {
			t.Fatalf("%s: unexpected error: %v", category, err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s: expected 201, got %d", category, rec.Code)
		}
	}
}

func TestDirectoryHandler_CreateSkill_RejectsUnknownCategory(t *testing.T) {
	e := newTestEcho()
	h := NewDirectoryHandler(&stubDirectoryService{
		createSkillFn: func(ctx context.Context, input ports.CreateSkillInput) (*domain.Skill, error) {
			t.Fatal("service must not be called for an unknown category")
			return nil, nil
		},
	}, zerolog.Nop())

	for _, category := range []string{"cooking", "Programming", "PROGRAMMING", " music"} {
		body := `{"name":"Test Skill","category":"` + category + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/skills", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		err := h.CreateSkill(e.NewContext(req, httptest.NewRecorder()))
		if code := httpCode(t, err); code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", category, code)
		}
	}
}

func TestDirectoryHandler_ListSkills_ForwardsCategory(t *testing.T) {
	e := newTestEcho()
	h := NewDirectoryHandler(&stubDirectoryService{
		listSkillsFn: func(ctx context.Context, category domain.SkillCategory) ([]*domain.Skill, error) {
			if category != domain.CategoryMusic {
				t.Fatalf("category not forwarded: %q", category)
			}
			return []*domain.Skill{{ID: "skill_piano", Name: "Piano", Category: domain.CategoryMusic}}, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/skills?category=music", nil)
	rec := httptest.NewRecorder()

	if err := h.ListSkills(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
