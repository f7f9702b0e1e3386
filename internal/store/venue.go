package store

import (
	"context"
	"strings"

	"fyyur-service/internal/apperr"
	"fyyur-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateVenue validates and inserts v, filling in its generated id
func (s *Store) CreateVenue(ctx context.Context, v *model.Venue) error {
	v.ID = 0
	v.Name = strings.TrimSpace(v.Name)
	v.Genres = model.NormalizeGenres(v.Genres)
	if err := validateName(v.Name); err != nil {
		return err
	}

	return s.transaction(ctx, "create venue", func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(v).Error
	})
}

// GetVenue returns the venue with the given id
func (s *Store) GetVenue(ctx context.Context, id uint) (*model.Venue, error) {
	var v model.Venue
	if err := s.conn(ctx).First(&v, id).Error; err != nil {
		return nil, apperr.Storage("get venue", notFound(err, "venue", id))
	}
	return &v, nil
}

// UpdateVenue applies patch to the venue with the given id
func (s *Store) UpdateVenue(ctx context.Context, id uint, patch model.VenuePatch) (*model.Venue, error) {
	var v model.Venue
	err := s.transaction(ctx, "update venue", func(tx *gorm.DB) error {
		if err := tx.First(&v, id).Error; err != nil {
			return notFound(err, "venue", id)
		}

		patch.Apply(&v)
		v.Name = strings.TrimSpace(v.Name)
		if err := validateName(v.Name); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&v).Error
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVenue removes a venue. Venues that still have shows are kept and
// a ConflictOnDeleteError is returned.
func (s *Store) DeleteVenue(ctx context.Context, id uint) error {
	return s.transaction(ctx, "delete venue", func(tx *gorm.DB) error {
		var v model.Venue
		if err := tx.Select("id").First(&v, id).Error; err != nil {
			return notFound(err, "venue", id)
		}

		var shows int64
		if err := tx.Model(&model.Show{}).Where("venue_id = ?", id).Count(&shows).Error; err != nil {
			return err
		}
		if shows > 0 {
			return &apperr.ConflictOnDeleteError{Entity: "venue", ID: id, Shows: shows}
		}

		return tx.Delete(&model.Venue{}, id).Error
	})
}

// ListVenues returns every venue ordered by id
func (s *Store) ListVenues(ctx context.Context) ([]model.Venue, error) {
	var venues []model.Venue
	if err := s.conn(ctx).Order("id").Find(&venues).Error; err != nil {
		return nil, apperr.Storage("list venues", err)
	}
	return venues, nil
}

// SearchVenues returns the venues whose name contains term, ignoring case,
// ordered by id
func (s *Store) SearchVenues(ctx context.Context, term string) ([]model.Venue, error) {
	var venues []model.Venue
	if err := nameContains(s.conn(ctx), term).Order("id").Find(&venues).Error; err != nil {
		return nil, apperr.Storage("search venues", err)
	}
	return venues, nil
}

// ListLocations groups venues by distinct city and state
func (s *Store) ListLocations(ctx context.Context) ([]model.Location, error) {
	var venues []model.Venue
	if err := s.conn(ctx).Order("state").Order("city").Order("id").Find(&venues).Error; err != nil {
		return nil, apperr.Storage("list locations", err)
	}

	locations := []model.Location{}
	for _, v := range venues {
		n := len(locations)
		if n > 0 && locations[n-1].City == v.City && locations[n-1].State == v.State {
			locations[n-1].Venues = append(locations[n-1].Venues, v)
			continue
		}
		locations = append(locations, model.Location{City: v.City, State: v.State, Venues: []model.Venue{v}})
	}
	return locations, nil
}
