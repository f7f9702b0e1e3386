package store

import (
	"context"
	"strings"

	"fyyur-service/internal/apperr"
	"fyyur-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateArtist validates and inserts a, filling in its generated id
func (s *Store) CreateArtist(ctx context.Context, a *model.Artist) error {
	a.ID = 0
	a.Name = strings.TrimSpace(a.Name)
	a.Genres = model.NormalizeGenres(a.Genres)
	if err := validateName(a.Name); err != nil {
		return err
	}

	return s.transaction(ctx, "create artist", func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(a).Error
	})
}

// GetArtist returns the artist with the given id
func (s *Store) GetArtist(ctx context.Context, id uint) (*model.Artist, error) {
	var a model.Artist
	if err := s.conn(ctx).First(&a, id).Error; err != nil {
		return nil, apperr.Storage("get artist", notFound(err, "artist", id))
	}
	return &a, nil
}

// UpdateArtist applies patch to the artist with the given id
func (s *Store) UpdateArtist(ctx context.Context, id uint, patch model.ArtistPatch) (*model.Artist, error) {
	var a model.Artist
	err := s.transaction(ctx, "update artist", func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			return notFound(err, "artist", id)
		}

		patch.Apply(&a)
		a.Name = strings.TrimSpace(a.Name)
		if err := validateName(a.Name); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteArtist removes an artist under the same policy as DeleteVenue
func (s *Store) DeleteArtist(ctx context.Context, id uint) error {
	return s.transaction(ctx, "delete artist", func(tx *gorm.DB) error {
		var a model.Artist
		if err := tx.Select("id").First(&a, id).Error; err != nil {
			return notFound(err, "artist", id)
		}

		var shows int64
		if err := tx.Model(&model.Show{}).Where("artist_id = ?", id).Count(&shows).Error; err != nil {
			return err
		}
		if shows > 0 {
			return &apperr.ConflictOnDeleteError{Entity: "artist", ID: id, Shows: shows}
		}

		return tx.Delete(&model.Artist{}, id).Error
	})
}

// ListArtists returns every artist ordered by id
func (s *Store) ListArtists(ctx context.Context) ([]model.Artist, error) {
	var artists []model.Artist
	if err := s.conn(ctx).Order("id").Find(&artists).Error; err != nil {
		return nil, apperr.Storage("list artists", err)
	}
	return artists, nil
}

// SearchArtists returns the artists whose name contains term, ignoring
// case, ordered by id
func (s *Store) SearchArtists(ctx context.Context, term string) ([]model.Artist, error) {
	var artists []model.Artist
	if err := nameContains(s.conn(ctx), term).Order("id").Find(&artists).Error; err != nil {
		return nil, apperr.Storage("search artists", err)
	}
	return artists, nil
}
