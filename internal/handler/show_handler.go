package handler

import (
	"net/http"

	"fyyur-service/internal/form"
	"fyyur-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListShows returns every show with the names of its venue and artist
func (h *Handler) ListShows(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("list_shows")()

	shows, err := h.store.ListShows(c.Request().Context())
	if err != nil {
		return h.fail(c, "Failed to list shows", err)
	}

	log.Info("Shows listed", zap.Int("count", len(shows)))
	h.metrics.RecordOperation("show", "list")
	return c.JSON(http.StatusOK, shows)
}

// CreateShow books an artist at a venue
func (h *Handler) CreateShow(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("create_show")()

	var req form.ShowRequest
	if err := form.Bind(c, &req); err != nil {
		return h.fail(c, "Invalid show data", err)
	}
	show := req.ToShow()

	if err := h.store.CreateShow(c.Request().Context(), show); err != nil {
		return h.fail(c, "Failed to create show", err,
			zap.Uint("venue_id", show.VenueID),
			zap.Uint("artist_id", show.ArtistID))
	}

	log.Info("Show created",
		zap.Uint("show_id", show.ID),
		zap.Uint("venue_id", show.VenueID),
		zap.Uint("artist_id", show.ArtistID),
		zap.Time("start_time", show.StartTime))
	h.metrics.RecordOperation("show", "create")
	return c.JSON(http.StatusCreated, show)
}
