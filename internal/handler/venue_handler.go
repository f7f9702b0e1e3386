package handler

import (
	"net/http"

	"fyyur-service/internal/aggregator"
	"fyyur-service/internal/form"
	"fyyur-service/internal/model"
	"fyyur-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type locationResponse struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []searchResult `json:"venues"`
}

// venueDetail is a venue together with its past and upcoming shows
type venueDetail struct {
	*model.Venue
	*aggregator.Partition
}

// ListVenues groups every venue by city and state
func (h *Handler) ListVenues(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("list_locations")()

	locations, err := h.store.ListLocations(c.Request().Context())
	if err != nil {
		return h.fail(c, "Failed to list venues", err)
	}

	ids := lo.FlatMap(locations, func(l model.Location, _ int) []uint {
		return lo.Map(l.Venues, func(v model.Venue, _ int) uint { return v.ID })
	})
	counts, err := h.agg.UpcomingCounts(c.Request().Context(), ids, aggregator.RoleVenue, h.now())
	if err != nil {
		return h.fail(c, "Failed to count upcoming shows", err)
	}

	resp := lo.Map(locations, func(l model.Location, _ int) locationResponse {
		return locationResponse{
			City:   l.City,
			State:  l.State,
			Venues: venueResults(l.Venues, counts),
		}
	})

	log.Info("Venues listed", zap.Int("locations", len(resp)), zap.Int("venues", len(ids)))
	h.metrics.RecordOperation("venue", "list")
	return c.JSON(http.StatusOK, resp)
}

// SearchVenues finds venues by a case-insensitive part of their name
func (h *Handler) SearchVenues(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("search_venues")()

	var req form.SearchRequest
	if err := form.Bind(c, &req); err != nil {
		return h.fail(c, "Invalid search request", err)
	}
	term := req.Term()

	venues, err := h.store.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return h.fail(c, "Failed to search venues", err, zap.String("search_term", term))
	}

	ids := lo.Map(venues, func(v model.Venue, _ int) uint { return v.ID })
	counts, err := h.agg.UpcomingCounts(c.Request().Context(), ids, aggregator.RoleVenue, h.now())
	if err != nil {
		return h.fail(c, "Failed to count upcoming shows", err)
	}

	log.Info("Venues searched", zap.String("search_term", term), zap.Int("count", len(venues)))
	h.metrics.RecordOperation("venue", "search")
	return c.JSON(http.StatusOK, searchResponse{
		Count: len(venues),
		Data:  venueResults(venues, counts),
	})
}

func venueResults(venues []model.Venue, counts map[uint]int) []searchResult {
	return lo.Map(venues, func(v model.Venue, _ int) searchResult {
		return searchResult{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]}
	})
}

// ShowVenue returns a venue with its shows split into past and upcoming
func (h *Handler) ShowVenue(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("get_venue")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid venue id", err, zap.String("venue_id", c.Param("id")))
	}

	venue, err := h.store.GetVenue(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "Venue not found", err, zap.Uint("venue_id", id))
	}

	partition, err := h.agg.Partition(c.Request().Context(), id, aggregator.RoleVenue, h.now())
	if err != nil {
		return h.fail(c, "Failed to load venue shows", err, zap.Uint("venue_id", id))
	}

	log.Info("Venue retrieved",
		zap.Uint("venue_id", id),
		zap.Int("past_shows", partition.PastCount),
		zap.Int("upcoming_shows", partition.UpcomingCount))
	h.metrics.RecordOperation("venue", "get")
	return c.JSON(http.StatusOK, venueDetail{Venue: venue, Partition: partition})
}

// CreateVenue adds a venue from a form or JSON submission
func (h *Handler) CreateVenue(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("create_venue")()

	var req form.VenueRequest
	if err := form.Bind(c, &req); err != nil {
		return h.fail(c, "Invalid venue data", err)
	}
	venue := req.ToVenue()

	if err := h.store.CreateVenue(c.Request().Context(), venue); err != nil {
		return h.fail(c, "Failed to create venue", err, zap.String("name", venue.Name))
	}

	log.Info("Venue created", zap.Uint("venue_id", venue.ID), zap.String("name", venue.Name))
	h.metrics.RecordOperation("venue", "create")
	return c.JSON(http.StatusCreated, venue)
}

// EditVenueForm returns the stored venue for populating an edit form
func (h *Handler) EditVenueForm(c echo.Context) error {
	defer h.timeOp("get_venue")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid venue id", err, zap.String("venue_id", c.Param("id")))
	}

	venue, err := h.store.GetVenue(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "Venue not found", err, zap.Uint("venue_id", id))
	}
	return c.JSON(http.StatusOK, venue)
}

// EditVenue applies the submitted fields to a venue
func (h *Handler) EditVenue(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("update_venue")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid venue id", err, zap.String("venue_id", c.Param("id")))
	}

	var req form.VenueRequest
	if err := form.Bind(c, &req); err != nil {
		return h.fail(c, "Invalid venue data", err, zap.Uint("venue_id", id))
	}

	venue, err := h.store.UpdateVenue(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return h.fail(c, "Failed to update venue", err, zap.Uint("venue_id", id))
	}

	log.Info("Venue updated", zap.Uint("venue_id", id), zap.String("name", venue.Name))
	h.metrics.RecordOperation("venue", "update")
	return c.JSON(http.StatusOK, venue)
}

// DeleteVenue removes a venue that has no shows
func (h *Handler) DeleteVenue(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("delete_venue")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid venue id", err, zap.String("venue_id", c.Param("id")))
	}

	if err := h.store.DeleteVenue(c.Request().Context(), id); err != nil {
		return h.fail(c, "Failed to delete venue", err, zap.Uint("venue_id", id))
	}

	log.Info("Venue deleted", zap.Uint("venue_id", id))
	h.metrics.RecordOperation("venue", "delete")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}
