package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const contextKey = "logger"

// FromEcho retrieves the request-scoped logger from the Echo context
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(contextKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// WithEcho stores a request-scoped logger on the Echo context
func WithEcho(c echo.Context, l *zap.Logger) {
	c.Set(contextKey, l)
}
