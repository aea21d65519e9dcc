package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	mongo *mongo.Client
	redis *goredis.Client
}

func NewHealthHandler(mongoClient *mongo.Client, redisClient *goredis.Client) *HealthHandler {
	return &HealthHandler{
		mongo: mongoClient,
		redis: redisClient,
	}
}

// Live reports process liveness only.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Ready pings each backing store and degrades to 503 when either is down.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, 2)
	healthy := true

	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		checks["mongo"] = err.Error()
		healthy = false
	} else {
		checks["mongo"] = "ok"
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := http.StatusOK
	resp := healthResponse{Status: "ready", Checks: checks}
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "degraded"
	}

	return c.JSON(status, resp)
}
