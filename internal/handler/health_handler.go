package handler

import (
	"net/http"

	"fyyur-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck handles the health check endpoint. With ?check=db the
// database pool is pinged as well.
func (h *Handler) HealthCheck(c echo.Context) error {
	if c.QueryParam("check") != "db" {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "healthy",
			"service": "fyyur",
		})
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		logger.FromEcho(c).Error("Database health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":   "unhealthy",
			"service":  "fyyur",
			"database": "unreachable",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "healthy",
		"service":  "fyyur",
		"database": "ok",
	})
}
