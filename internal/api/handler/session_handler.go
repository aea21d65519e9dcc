package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/api/metrics"
	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

type SessionHandler struct {
	service ports.SessionService
	logger  zerolog.Logger
}

func NewSessionHandler(service ports.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

// Create godoc
// @Summary Schedule a new session
// @Description Creates a pending session between the authenticated teacher and a student
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body createSessionRequest true "Session details"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.service.Create(c.Request().Context(), ports.CreateSessionInput{
		TeacherID:     actorID,
		StudentID:     req.StudentID,
		SkillID:       req.SkillID,
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Duration:      req.Duration,
		SessionType:   domain.SessionType(req.SessionType),
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
	})
	if err != nil {
		if errors.Is(err, domain.ErrScheduleConflict) {
			metrics.SchedulingConflictsTotal.Inc()
		}
		return err
	}

	metrics.SessionsCreatedTotal.WithLabelValues(string(session.SessionType)).Inc()

	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Get godoc
// @Summary Get a session by ID
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} sessionResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	session, err := h.service.Get(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// List godoc
// @Summary List the caller's sessions
// @Tags sessions
// @Produce json
// @Param role query string false "Filter by side" Enums(teacher, student)
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} listSessionsResponse
// @Security BearerAuth
// @Router /api/v1/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListSessionsInput{
		UserID: actorID,
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listSessionsResponse{
		Sessions:   toSessionResponses(result.Sessions),
		Pagination: toPaginationResponse(result.Pagination),
	})
}

// Update godoc
// @Summary Update a pending or confirmed session
// @Description Only the teacher may edit session details
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body updateSessionRequest true "Fields to update"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/sessions/{id} [put]
func (h *SessionHandler) Update(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var sessionType *domain.SessionType
	if req.SessionType != nil {
		st := domain.SessionType(*req.SessionType)
		sessionType = &st
	}

	session, err := h.service.Update(c.Request().Context(), ports.UpdateSessionInput{
		SessionID:     c.Param("id"),
		ActorID:       actorID,
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Duration:      req.Duration,
		SessionType:   sessionType,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Confirm godoc
// @Summary Confirm a pending session
// @Description Only the student may confirm
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/confirm [patch]
func (h *SessionHandler) Confirm(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	session, err := h.service.Confirm(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return err
	}

	metrics.SessionTransitionsTotal.WithLabelValues(string(session.Status)).Inc()

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Cancel godoc
// @Summary Cancel a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body cancelSessionRequest false "Cancellation reason"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/cancel [patch]
func (h *SessionHandler) Cancel(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req cancelSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Cancel(c.Request().Context(), ports.CancelSessionInput{
		SessionID: c.Param("id"),
		ActorID:   actorID,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.SessionTransitionsTotal.WithLabelValues(string(session.Status)).Inc()

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Complete godoc
// @Summary Complete a session with notes and a rating
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body completeSessionRequest false "Completion details"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/complete [patch]
func (h *SessionHandler) Complete(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req completeSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.service.Complete(c.Request().Context(), ports.CompleteSessionInput{
		SessionID: c.Param("id"),
		ActorID:   actorID,
		Notes:     req.Notes,
		Rating:    req.Rating,
		Feedback:  req.Feedback,
	})
	if err != nil {
		return err
	}

	metrics.SessionTransitionsTotal.WithLabelValues(string(session.Status)).Inc()

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Delete godoc
// @Summary Delete a cancelled session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} nil
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, nil)
}

// Stats godoc
// @Summary Session statistics for the caller
// @Tags sessions
// @Produce json
// @Success 200 {object} sessionStatsResponse
// @Security BearerAuth
// @Router /api/v1/sessions/stats [get]
func (h *SessionHandler) Stats(c echo.Context) error {
	actorID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), actorID)
	if err != nil {
		return err
	}

	byStatus := make(map[string]int64, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}

	return c.JSON(http.StatusOK, sessionStatsResponse{
		Total:            stats.Total,
		ByStatus:         byStatus,
		AvgTeacherRating: stats.AvgTeacherRating,
		AvgStudentRating: stats.AvgStudentRating,
	})
}
