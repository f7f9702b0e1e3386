// Package aggregator splits the shows of a venue or artist into past and
// upcoming relative to a reference instant.
package aggregator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fyyur-service/internal/apperr"
	"fyyur-service/internal/model"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Role selects which side of a show the entity id refers to
type Role string

const (
	RoleVenue  Role = "venue"
	RoleArtist Role = "artist"
)

// ShowSummary describes a show from the point of view of one side; the
// counterpart is the artist on a venue page and the venue on an artist page.
type ShowSummary struct {
	ShowID               uint      `json:"show_id"`
	CounterpartID        uint      `json:"counterpart_id"`
	CounterpartName      string    `json:"counterpart_name"`
	CounterpartImageLink string    `json:"counterpart_image_link"`
	StartTime            time.Time `json:"start_time"`
}

// Partition holds the past and upcoming shows of one venue or artist
type Partition struct {
	Past          []ShowSummary `json:"past_shows"`
	Upcoming      []ShowSummary `json:"upcoming_shows"`
	PastCount     int           `json:"past_shows_count"`
	UpcomingCount int           `json:"upcoming_shows_count"`
}

// Aggregator reads shows; it never writes
type Aggregator struct {
	db *gorm.DB
}

// New creates an aggregator on an open database
func New(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

type roleInfo struct {
	column  string
	owner   any
	preload string
}

func (r Role) info() (roleInfo, error) {
	switch r {
	case RoleVenue:
		return roleInfo{column: "venue_id", owner: &model.Venue{}, preload: "Artist"}, nil
	case RoleArtist:
		return roleInfo{column: "artist_id", owner: &model.Artist{}, preload: "Venue"}, nil
	default:
		var ve apperr.ValidationError
		ve.Add("role", fmt.Sprintf("%q is not venue or artist", string(r)))
		return roleInfo{}, &ve
	}
}

// Partition loads the shows of the given venue or artist and splits them
// at now. The entity must exist.
func (a *Aggregator) Partition(ctx context.Context, entityID uint, role Role, now time.Time) (*Partition, error) {
	info, err := role.info()
	if err != nil {
		return nil, err
	}

	db := a.db.WithContext(ctx)

	var n int64
	if err := db.Model(info.owner).Where("id = ?", entityID).Count(&n).Error; err != nil {
		return nil, apperr.Storage("partition shows", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s %d: %w", role, entityID, apperr.ErrNotFound)
	}

	var shows []model.Show
	err = db.Preload(info.preload).
		Where(info.column+" = ?", entityID).
		Order("start_time").Order("id").
		Find(&shows).Error
	if err != nil {
		return nil, apperr.Storage("partition shows", err)
	}

	return PartitionShows(shows, role, now), nil
}

// PartitionShows splits shows at now: a show starting before now is past,
// one starting at or after now is upcoming. Both lists are ordered by start
// time, then show id.
func PartitionShows(shows []model.Show, role Role, now time.Time) *Partition {
	sorted := append([]model.Show(nil), shows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		}
		return sorted[i].ID < sorted[j].ID
	})

	past := lo.Filter(sorted, func(sh model.Show, _ int) bool {
		return sh.StartTime.Before(now)
	})
	upcoming := lo.Filter(sorted, func(sh model.Show, _ int) bool {
		return !sh.StartTime.Before(now)
	})

	summarize := func(sh model.Show, _ int) ShowSummary {
		return summary(sh, role)
	}

	return &Partition{
		Past:          lo.Map(past, summarize),
		Upcoming:      lo.Map(upcoming, summarize),
		PastCount:     len(past),
		UpcomingCount: len(upcoming),
	}
}

func summary(sh model.Show, role Role) ShowSummary {
	s := ShowSummary{ShowID: sh.ID, StartTime: sh.StartTime}
	switch role {
	case RoleVenue:
		s.CounterpartID = sh.ArtistID
		if sh.Artist != nil {
			s.CounterpartName = sh.Artist.Name
			s.CounterpartImageLink = sh.Artist.ImageLink
		}
	case RoleArtist:
		s.CounterpartID = sh.VenueID
		if sh.Venue != nil {
			s.CounterpartName = sh.Venue.Name
			s.CounterpartImageLink = sh.Venue.ImageLink
		}
	}
	return s
}

// UpcomingCounts returns, for each id, how many of its shows start at or
// after now. Ids without shows map to zero.
func (a *Aggregator) UpcomingCounts(ctx context.Context, ids []uint, role Role, now time.Time) (map[uint]int, error) {
	info, err := role.info()
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(ids))
	for _, id := range ids {
		counts[id] = 0
	}
	if len(ids) == 0 {
		return counts, nil
	}

	var shows []model.Show
	err = a.db.WithContext(ctx).
		Select("id", "venue_id", "artist_id", "start_time").
		Where(info.column+" IN ?", ids).
		Find(&shows).Error
	if err != nil {
		return nil, apperr.Storage("count upcoming shows", err)
	}

	upcoming := lo.Filter(shows, func(sh model.Show, _ int) bool {
		return !sh.StartTime.Before(now)
	})
	for id, n := range lo.CountValuesBy(upcoming, func(sh model.Show) uint {
		if role == RoleVenue {
			return sh.VenueID
		}
		return sh.ArtistID
	}) {
		counts[id] = n
	}
	return counts, nil
}
