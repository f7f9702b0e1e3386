package store

import (
	"context"
	"sort"

	"fyyur-service/internal/apperr"
	"fyyur-service/internal/model"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateShow inserts sh after checking that its venue and artist exist.
// start_time is stored in UTC.
func (s *Store) CreateShow(ctx context.Context, sh *model.Show) error {
	var ve apperr.ValidationError
	if sh.VenueID == 0 {
		ve.Add("venue_id", "is required")
	}
	if sh.ArtistID == 0 {
		ve.Add("artist_id", "is required")
	}
	if sh.StartTime.IsZero() {
		ve.Add("start_time", "is required")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	sh.ID = 0
	sh.StartTime = sh.StartTime.UTC()
	sh.Venue, sh.Artist = nil, nil

	return s.transaction(ctx, "create show", func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Venue{}, "venue", sh.VenueID); err != nil {
			return err
		}
		if err := mustExist(tx, &model.Artist{}, "artist", sh.ArtistID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(sh).Error
	})
}

func mustExist(tx *gorm.DB, table any, entity string, id uint) error {
	var n int64
	if err := tx.Model(table).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return &apperr.ReferenceError{Entity: entity, ID: id}
	}
	return nil
}

// GetShow returns the show with the given id
func (s *Store) GetShow(ctx context.Context, id uint) (*model.Show, error) {
	var sh model.Show
	if err := s.conn(ctx).First(&sh, id).Error; err != nil {
		return nil, apperr.Storage("get show", notFound(err, "show", id))
	}
	return &sh, nil
}

// ListShows returns every show with its venue and artist names, ordered by
// start time then id
func (s *Store) ListShows(ctx context.Context) ([]model.ShowListing, error) {
	var shows []model.Show
	err := s.conn(ctx).
		Preload("Venue").
		Preload("Artist").
		Order("start_time").Order("id").
		Find(&shows).Error
	if err != nil {
		return nil, apperr.Storage("list shows", err)
	}

	sort.SliceStable(shows, func(i, j int) bool {
		if !shows[i].StartTime.Equal(shows[j].StartTime) {
			return shows[i].StartTime.Before(shows[j].StartTime)
		}
		return shows[i].ID < shows[j].ID
	})

	return lo.Map(shows, func(sh model.Show, _ int) model.ShowListing {
		listing := model.ShowListing{
			ID:        sh.ID,
			VenueID:   sh.VenueID,
			ArtistID:  sh.ArtistID,
			StartTime: sh.StartTime,
		}
		if sh.Venue != nil {
			listing.VenueName = sh.Venue.Name
		}
		if sh.Artist != nil {
			listing.ArtistName = sh.Artist.Name
			listing.ArtistImageLink = sh.Artist.ImageLink
		}
		return listing
	}), nil
}
