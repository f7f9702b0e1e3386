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

type artistEntry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type artistDetail struct {
	*model.Artist
	*aggregator.Partition
}

// ListArtists returns the id and name of every artist
func (h *Handler) ListArtists(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("list_artists")()

	artists, err := h.store.ListArtists(c.Request().Context())
	if err != nil {
		return h.fail(c, "Failed to list artists", err)
	}

	resp := lo.Map(artists, func(a model.Artist, _ int) artistEntry {
		return artistEntry{ID: a.ID, Name: a.Name}
	})

	log.Info("Artists listed", zap.Int("count", len(resp)))
	h.metrics.RecordOperation("artist", "list")
	return c.JSON(http.StatusOK, resp)
}

// SearchArtists finds artists by a case-insensitive part of their name
func (h *Handler) SearchArtists(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("search_artists")()

	var req form.SearchRequest
	if err := form.Bind(c, &req); err != nil {
		return h.fail(c, "Invalid search request", err)
	}
	term := req.Term()

	artists, err := h.store.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return h.fail(c, "Failed to search artists", err, zap.String("search_term", term))
	}

	ids := lo.Map(artists, func(a model.Artist, _ int) uint { return a.ID })
	counts, err := h.agg.UpcomingCounts(c.Request().Context(), ids, aggregator.RoleArtist, h.now())
	if err != nil {
		return h.fail(c, "Failed to count upcoming shows", err)
	}

	log.Info("Artists searched", zap.String("search_term", term), zap.Int("count", len(artists)))
	h.metrics.RecordOperation("artist", "search")
	return c.JSON(http.StatusOK, searchResponse{
		Count: len(artists),
		Data: lo.Map(artists, func(a model.Artist, _ int) searchResult {
			return searchResult{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]}
		}),
	})
}

// ShowArtist returns an artist with its shows split into past and upcoming
func (h *Handler) ShowArtist(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("get_artist")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid artist id", err, zap.String("artist_id", c.Param("id")))
	}

	artist, err := h.store.GetArtist(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "Artist not found", err, zap.Uint("artist_id", id))
	}

	partition, err := h.agg.Partition(c.Request().Context(), id, aggregator.RoleArtist, h.now())
	if err != nil {
		return h.fail(c, "Failed to load artist shows", err, zap.Uint("artist_id", id))
	}

	log.Info("Artist retrieved",
		zap.Uint("artist_id", id),
		zap.Int("past_shows", partition.PastCount),
		zap.Int("upcoming_shows", partition.UpcomingCount))
	h.metrics.RecordOperation("artist", "get")
	return c.JSON(http.StatusOK, artistDetail{Artist: artist, Partition: partition})
}

// CreateArtist adds an artist from a form or JSON submission
func (h *Handler) CreateArtist(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("create_artist")()

	var req form.ArtistRequest
	if err := form.Bind(c, &req); err != nil {
		return h.fail(c, "Invalid artist data", err)
	}
	artist := req.ToArtist()

	if err := h.store.CreateArtist(c.Request().Context(), artist); err != nil {
		return h.fail(c, "Failed to create artist", err, zap.String("name", artist.Name))
	}

	log.Info("Artist created", zap.Uint("artist_id", artist.ID), zap.String("name", artist.Name))
	h.metrics.RecordOperation("artist", "create")
	return c.JSON(http.StatusCreated, artist)
}

// EditArtistForm returns the stored artist for populating an edit form
func (h *Handler) EditArtistForm(c echo.Context) error {
	defer h.timeOp("get_artist")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid artist id", err, zap.String("artist_id", c.Param("id")))
	}

	artist, err := h.store.GetArtist(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "Artist not found", err, zap.Uint("artist_id", id))
	}
	return c.JSON(http.StatusOK, artist)
}

// EditArtist applies the submitted fields to an artist
func (h *Handler) EditArtist(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("update_artist")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid artist id", err, zap.String("artist_id", c.Param("id")))
	}

	var req form.ArtistRequest
	if err := form.Bind(c, &req); err != nil {
		return h.fail(c, "Invalid artist data", err, zap.Uint("artist_id", id))
	}

	artist, err := h.store.UpdateArtist(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return h.fail(c, "Failed to update artist", err, zap.Uint("artist_id", id))
	}

	log.Info("Artist updated", zap.Uint("artist_id", id), zap.String("name", artist.Name))
	h.metrics.RecordOperation("artist", "update")
	return c.JSON(http.StatusOK, artist)
}

// DeleteArtist removes an artist that has no shows
func (h *Handler) DeleteArtist(c echo.Context) error {
	log := logger.FromEcho(c)
	defer h.timeOp("delete_artist")()

	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Invalid artist id", err, zap.String("artist_id", c.Param("id")))
	}

	if err := h.store.DeleteArtist(c.Request().Context(), id); err != nil {
		return h.fail(c, "Failed to delete artist", err, zap.Uint("artist_id", id))
	}

	log.Info("Artist deleted", zap.Uint("artist_id", id))
	h.metrics.RecordOperation("artist", "delete")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}
