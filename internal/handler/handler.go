package handler

import (
	"net/http"
	"strconv"
	"time"

	"fyyur-service/internal/aggregator"
	"fyyur-service/internal/apperr"
	"fyyur-service/internal/store"
	"fyyur-service/pkg/logger"
	"fyyur-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves the venue, artist and show routes
type Handler struct {
	store   *store.Store
	agg     *aggregator.Aggregator
	db      *gorm.DB
	metrics *prometheus.Metrics
	now     func() time.Time
}

// New creates a handler. db is only used for health checks.
func New(s *store.Store, agg *aggregator.Aggregator, db *gorm.DB, m *prometheus.Metrics) *Handler {
	return &Handler{
		store:   s,
		agg:     agg,
		db:      db,
		metrics: m,
		now:     time.Now,
	}
}

// Register mounts every route on e
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.HealthCheck)

	venues := e.Group("/venues")
	venues.GET("", h.ListVenues)
	venues.POST("/search", h.SearchVenues)
	venues.POST("/create", h.CreateVenue)
	venues.GET("/:id", h.ShowVenue)
	venues.GET("/:id/edit", h.EditVenueForm)
	venues.POST("/:id/edit", h.EditVenue)
	venues.DELETE("/:id", h.DeleteVenue)

	artists := e.Group("/artists")
	artists.GET("", h.ListArtists)
	artists.POST("/search", h.SearchArtists)
	artists.POST("/create", h.CreateArtist)
	artists.GET("/:id", h.ShowArtist)
	artists.GET("/:id/edit", h.EditArtistForm)
	artists.POST("/:id/edit", h.EditArtist)
	artists.DELETE("/:id", h.DeleteArtist)

	shows := e.Group("/shows")
	shows.GET("", h.ListShows)
	shows.POST("/create", h.CreateShow)
}

// Index returns the service banner
func (h *Handler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"service": "fyyur",
		"routes":  []string{"/venues", "/artists", "/shows"},
	})
}

// searchResult is one row of a search or location listing
type searchResult struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type searchResponse struct {
	Count int            `json:"count"`
	Data  []searchResult `json:"data"`
}

// timeOp records the duration of a database-backed operation
func (h *Handler) timeOp(op string) func() {
	start := time.Now()
	track := h.metrics.TrackDBOperation(op)
	return func() { track(start) }
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		var ve apperr.ValidationError
		ve.Add("id", "must be a positive integer")
		return 0, &ve
	}
	return uint(id), nil
}

// fail logs err, counts it and writes the matching JSON response
func (h *Handler) fail(c echo.Context, msg string, err error, fields ...zap.Field) error {
	log := logger.FromEcho(c)
	kind := apperr.Kind(err)
	h.metrics.RecordError(kind)

	fields = append(fields, zap.String("kind", kind), zap.Error(err))

	switch kind {
	case "validation":
		log.Warn(msg, fields...)
		body := echo.Map{"error": "Invalid request data"}
		if ve, ok := apperr.AsValidation(err); ok {
			body["fields"] = ve.Fields
		}
		return c.JSON(http.StatusBadRequest, body)
	case "not_found":
		log.Warn(msg, fields...)
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case "reference":
		log.Warn(msg, fields...)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case "conflict_on_delete":
		log.Warn(msg, fields...)
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		log.Error(msg, fields...)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
