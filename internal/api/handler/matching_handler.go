package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/api/metrics"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

type MatchingHandler struct {
	service ports.MatchingService
	logger  zerolog.Logger
}

func NewMatchingHandler(service ports.MatchingService, logger zerolog.Logger) *MatchingHandler {
	return &MatchingHandler{
		service: service,
		logger:  logger,
	}
}

// Matches godoc
// @Summary Find ranked exchange partners for the caller
// @Tags matching
// @Produce json
// @Param category query string false "Filter shared skills by category"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} findMatchesResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/matching/matches [get]
func (h *MatchingHandler) Matches(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	category := c.QueryParam("category")

	start := time.Now()
	result, err := h.service.FindMatches(c.Request().Context(), ports.FindMatchesInput{
		UserID:   actorID,
		Category: category,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	metrics.MatchComputationDuration.Observe(time.Since(start).Seconds())

	label := category
	if label == "" {
		label = "all"
	}
	metrics.MatchesComputedTotal.WithLabelValues(label).Inc()

	matches := make([]matchResponse, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, matchResponse{
			User:               toMatchedUserResponse(m.User),
			MatchType:          string(m.MatchType),
			SharedSkills:       toSkillResponses(m.SharedSkills),
			CompatibilityScore: m.CompatibilityScore,
		})
	}

	return c.JSON(http.StatusOK, findMatchesResponse{
		Matches:      matches,
		TotalMatches: result.Pagination.Total,
		Pagination:   toPaginationResponse(result.Pagination),
		UserSkills:   userSkillsResponse{
			Offered: toSkillResponses(result.UserSkills.Offered),
			Seeking: toSkillResponses(result.UserSkills.Seeking),
		},
	})
}

// Partners godoc
// @Summary Find users who teach or want to learn one skill
// @Tags matching
// @Produce json
// @Param skillId path string true "Skill ID"
// @Param type query string false "Partner side" Enums(teachers, learners, all)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} skillPartnersResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/matching/skills/{skillId}/partners [get]
func (h *MatchingHandler) Partners(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	matchType := c.QueryParam("type")
	if matchType == "" {
		matchType = ports.PartnersAll
	}
	switch matchType {
	case ports.PartnersTeachers, ports.PartnersLearners, ports.PartnersAll:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "type must be one of: teachers, learners, all")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.FindSkillPartners(c.Request().Context(), ports.SkillPartnersInput{
		UserID:    actorID,
		SkillID:   c.Param("skillId"),
		MatchType: matchType,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	partners := make([]partnerResponse, 0, len(result.Partners))
	for _, p := range result.Partners {
		partners = append(partners, partnerResponse{
			User:        toMatchedUserResponse(p.User),
			PartnerType: p.PartnerType,
		})
	}

	return c.JSON(http.StatusOK, skillPartnersResponse{
		Skill:         toSkillResponse(result.Skill),
		Partners:      partners,
		TotalPartners: result.Pagination.Total,
		Pagination:    toPaginationResponse(result.Pagination),
	})
}

// Stats godoc
// @Summary Matching statistics for the caller
// @Tags matching
// @Produce json
// @Success 200 {object} matchingStatsResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/matching/stats [get]
func (h *MatchingHandler) Stats(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), actorID)
	if err != nil {
		return err
	}

	byCategory := make(map[string]categoryCountResponse, len(stats.SkillsByCategory))
	for category, count := range stats.SkillsByCategory {
		byCategory[string(category)] = categoryCountResponse{
			Offered: count.Offered,
			Seeking: count.Seeking,
		}
	}

	return c.JSON(http.StatusOK, matchingStatsResponse{
		TeachingOpportunities: stats.TeachingOpportunities,
		LearningOpportunities: stats.LearningOpportunities,
		MutualExchanges:       stats.MutualExchanges,
		SkillsByCategory:      byCategory,
	})
}
