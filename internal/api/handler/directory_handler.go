package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

type updateSkillsRequest struct {
	Offered []string `json:"offered" validate:"required"`
	Seeking []string `json:"seeking" validate:"required"`
}

type timeSlotRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end"   validate:"required"`
}

type dayAvailabilityRequest struct {
	Day       string            `json:"day"        validate:"required"`
	TimeSlots []timeSlotRequest `json:"time_slots" validate:"required"`
}

type updateAvailabilityRequest struct {
	CurrentStatus string                   `json:"current_status" validate:"required,oneof=free busy in-class unavailable"`
	Weekly        []dayAvailabilityRequest `json:"weekly"         validate:"required"`
}

type createSkillRequest struct {
	Name        string `json:"name"        validate:"required"`
	Category    string `json:"category"    validate:"required,skill_category"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"  validate:"omitempty,oneof=beginner intermediate advanced"`
}

type listSkillsResponse struct {
	Skills []skillResponse `json:"skills"`
}

type DirectoryHandler struct {
	service ports.DirectoryService
	logger  zerolog.Logger
}

func NewDirectoryHandler(service ports.DirectoryService, logger zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		logger:  logger,
	}
}

// GetUser godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} userResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/users/{id} [get]
func (h *DirectoryHandler) GetUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMySkills godoc
// @Summary Replace the caller's offered and seeking skill sets
// @Tags users
// @Accept json
// @Produce json
// @Param request body updateSkillsRequest true "Skill ID sets"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/users/me/skills [put]
func (h *DirectoryHandler) UpdateMySkills(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateSkillsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateSkills(c.Request().Context(), ports.UpdateSkillsInput{
		UserID:  actorID,
		Offered: req.Offered,
		Seeking: req.Seeking,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMyAvailability godoc
// @Summary Replace the caller's presence status and weekly schedule
// @Description Only faculty accounts carry availability
// @Tags users
// @Accept json
// @Produce json
// @Param request body updateAvailabilityRequest true "Availability"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/users/me/availability [put]
func (h *DirectoryHandler) UpdateMyAvailability(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	weekly := make([]domain.DayAvailability, 0, len(req.Weekly))
	for _, day := range req.Weekly {
		slots := make([]domain.TimeSlot, 0, len(day.TimeSlots))
		for _, slot := range day.TimeSlots {
			slots = append(slots, domain.TimeSlot{Start: slot.Start, End: slot.End})
		}
		weekly = append(weekly, domain.DayAvailability{Day: day.Day, TimeSlots: slots})
	}

	user, err := h.service.UpdateFacultyAvailability(c.Request().Context(), ports.UpdateAvailabilityInput{
		UserID:        actorID,
		CurrentStatus: domain.FacultyStatus(req.CurrentStatus),
		Weekly:        weekly,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ListSkills godoc
// @Summary List the skill catalogue
// @Tags skills
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} listSkillsResponse
// @Security BearerAuth
// @Router /api/v1/skills [get]
func (h *DirectoryHandler) ListSkills(c echo.Context) error {
	skills, err := h.service.ListSkills(c.Request().Context(), domain.SkillCategory(c.QueryParam("category")))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listSkillsResponse{Skills: toSkillResponses(skills)})
}

// CreateSkill godoc
// @Summary Register a new skill in the catalogue
// @Description Admin only
// @Tags skills
// @Accept json
// @Produce json
// @Param request body createSkillRequest true "Skill details"
// @Success 201 {object} skillResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/skills [post]
func (h *DirectoryHandler) CreateSkill(c echo.Context) error {
	var req createSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	skill, err := h.service.CreateSkill(c.Request().Context(), ports.CreateSkillInput{
		Name:        req.Name,
		Category:    domain.SkillCategory(req.Category),
		Description: req.Description,
		Difficulty:  domain.SkillDifficulty(req.Difficulty),
	})
	if err != nil {
		return err
	}

	h.logger.Info().Str("skill_id", skill.ID).Str("category", string(skill.Category)).Msg("skill created")

	return c.JSON(http.StatusCreated, toSkillResponse(skill))
}
