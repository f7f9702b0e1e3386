// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"fyyur-service/internal/model"
	"fyyur-service/pkg/config"
	"fyyur-service/pkg/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated SQLite database private to the test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "fyyur.db"),
		LogLevel:   logger.Silent,
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

// InsertVenue writes a venue directly, bypassing the store
func InsertVenue(t *testing.T, db *gorm.DB, name, city, state string) model.Venue {
	t.Helper()

	v := model.Venue{Name: name, City: city, State: state, Genres: model.Genres{}}
	require.NoError(t, db.Create(&v).Error)
	return v
}

// InsertArtist writes an artist directly, bypassing the store
func InsertArtist(t *testing.T, db *gorm.DB, name, imageLink string) model.Artist {
	t.Helper()

	a := model.Artist{Name: name, ImageLink: imageLink, Genres: model.Genres{}}
	require.NoError(t, db.Create(&a).Error)
	return a
}

// InsertShow writes a show directly, bypassing the store
func InsertShow(t *testing.T, db *gorm.DB, venueID, artistID uint, start time.Time) model.Show {
	t.Helper()

	sh := model.Show{VenueID: venueID, ArtistID: artistID, StartTime: start.UTC()}
	require.NoError(t, db.Create(&sh).Error)
	return sh
}
