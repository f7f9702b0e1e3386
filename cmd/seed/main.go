package main

import (
	"context"
	"flag"
	"time"

	"fyyur-service/internal/model"
	"fyyur-service/internal/store"
	"fyyur-service/pkg/config"
	"fyyur-service/pkg/database"
	"fyyur-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var venues = []model.Venue{
	{
		Name:               "The Musical Hop",
		Genres:             model.Genres{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5",
	},
	{
		Name:         "The Dueling Pianos Bar",
		Genres:       model.Genres{"Classical", "R&B", "Hip-Hop"},
		Address:      "335 Delancey Street",
		City:         "New York",
		State:        "NY",
		Phone:        "914-003-1132",
		Website:      "https://www.theduelingpianos.com",
		FacebookLink: "https://www.facebook.com/theduelingpianos",
		ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae",
	},
	{
		Name:         "Park Square Live Music & Coffee",
		Genres:       model.Genres{"Rock n Roll", "Jazz", "Classical", "Folk"},
		Address:      "34 Whiskey Moore Ave",
		City:         "San Francisco",
		State:        "CA",
		Phone:        "415-000-1234",
		Website:      "https://www.parksquarelivemusicandcoffee.com",
		FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7",
	},
}

var artists = []model.Artist{
	{
		Name:               "Guns N Petals",
		Genres:             model.Genres{"Rock n Roll"},
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f",
	},
	{
		Name:         "Matt Quevedo",
		Genres:       model.Genres{"Jazz"},
		City:         "New York",
		State:        "NY",
		Phone:        "300-400-5000",
		FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5",
	},
	{
		Name:      "The Wild Sax Band",
		Genres:    model.Genres{"Jazz", "Classical"},
		City:      "San Francisco",
		State:     "CA",
		Phone:     "432-325-5432",
		ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61",
	},
}

// shows refer to venues and artists by their index above
var shows = []struct {
	venue, artist int
	start         string
}{
	{0, 0, "2019-05-21 21:30:00"},
	{2, 1, "2019-06-15 23:00:00"},
	{2, 2, "2035-04-01 20:00:00"},
	{2, 2, "2035-04-08 20:00:00"},
	{2, 2, "2035-04-15 20:00:00"},
}

func main() {
	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	flag.StringVar(&appConfig.DB.Driver, "driver", appConfig.DB.Driver, "Database driver (postgres, mysql, sqlite)")
	flag.StringVar(&appConfig.DB.Host, "host", appConfig.DB.Host, "Database host")
	flag.StringVar(&appConfig.DB.Port, "port", appConfig.DB.Port, "Database port")
	flag.StringVar(&appConfig.DB.DBName, "db", appConfig.DB.DBName, "Database name")
	flag.StringVar(&appConfig.DB.SQLitePath, "sqlite-path", appConfig.DB.SQLitePath, "SQLite database file")
	truncate := flag.Bool("truncate", false, "Delete existing shows, venues and artists before seeding")
	flag.Parse()

	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	db, err := database.Open(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to connect", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db, log); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	if *truncate {
		log.Info("Truncating tables")
		if err := truncateTables(db); err != nil {
			log.Fatal("Failed to truncate tables", zap.Error(err))
		}
	}

	start := time.Now()
	if err := seed(context.Background(), store.New(db), log); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	log.Info("Seeding complete",
		zap.Int("venues", len(venues)),
		zap.Int("artists", len(artists)),
		zap.Int("shows", len(shows)),
		zap.Duration("elapsed", time.Since(start)))
}

func truncateTables(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, table := range []any{&model.Show{}, &model.Venue{}, &model.Artist{}} {
			if err := all.Delete(table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func seed(ctx context.Context, s *store.Store, log *zap.Logger) error {
	venueIDs := make([]uint, len(venues))
	for i := range venues {
		v := venues[i]
		if err := s.CreateVenue(ctx, &v); err != nil {
			return err
		}
		venueIDs[i] = v.ID
		log.Debug("Venue seeded", zap.Uint("venue_id", v.ID), zap.String("name", v.Name))
	}

	artistIDs := make([]uint, len(artists))
	for i := range artists {
		a := artists[i]
		if err := s.CreateArtist(ctx, &a); err != nil {
			return err
		}
		artistIDs[i] = a.ID
		log.Debug("Artist seeded", zap.Uint("artist_id", a.ID), zap.String("name", a.Name))
	}

	for _, sh := range shows {
		start, err := time.ParseInLocation(time.DateTime, sh.start, time.UTC)
		if err != nil {
			return err
		}
		show := model.Show{
			VenueID:   venueIDs[sh.venue],
			ArtistID:  artistIDs[sh.artist],
			StartTime: start,
		}
		if err := s.CreateShow(ctx, &show); err != nil {
			return err
		}
	}
	return nil
}
