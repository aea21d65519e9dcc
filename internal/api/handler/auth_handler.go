package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=student faculty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsSeeking []string  `json:"skills_seeking"`
	IsAvailable   bool      `json:"is_available"`
	Mode          string    `json:"mode,omitempty"`
	Location      string    `json:"location,omitempty"`
	CurrentStatus string    `json:"current_status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		SkillsOffered: u.SkillsOffered,
		SkillsSeeking: u.SkillsSeeking,
		IsAvailable:   u.IsAvailable,
		Mode:          string(u.Mode),
		Location:      u.Location,
		CurrentStatus: string(u.CurrentStatus),
		CreatedAt:     u.CreatedAt,
	}
}

type AuthHandler struct {
	service ports.AuthService
	logger  zerolog.Logger
}

func NewAuthHandler(service ports.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register a new exchange member
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Account details"
// @Success 201 {object} userResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	h.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}
