package form

import (
	"strings"

	"fyyur-service/internal/model"
)

// VenueRequest is a venue create or edit submission
type VenueRequest struct {
	Name               *string   `form:"name" json:"name"`
	City               *string   `form:"city" json:"city"`
	State              *string   `form:"state" json:"state"`
	Address            *string   `form:"address" json:"address"`
	Phone              *string   `form:"phone" json:"phone"`
	ImageLink          *string   `form:"image_link" json:"image_link"`
	FacebookLink       *string   `form:"facebook_link" json:"facebook_link"`
	Website            *string   `form:"website" json:"website"`
	Genres             []string  `form:"genres" json:"genres"`
	SeekingTalent      *Checkbox `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription *string   `form:"seeking_description" json:"seeking_description"`
}

// ToVenue builds a new venue. Absent text fields are empty, an absent
// checkbox is unticked.
func (r VenueRequest) ToVenue() *model.Venue {
	return &model.Venue{
		Name:               orEmpty(r.Name),
		City:               orEmpty(r.City),
		State:              orEmpty(r.State),
		Address:            orEmpty(r.Address),
		Phone:              orEmpty(r.Phone),
		ImageLink:          orEmpty(r.ImageLink),
		FacebookLink:       orEmpty(r.FacebookLink),
		Website:            orEmpty(r.Website),
		Genres:             model.NormalizeGenres(r.Genres),
		SeekingTalent:      r.SeekingTalent != nil && bool(*r.SeekingTalent),
		SeekingDescription: orEmpty(r.SeekingDescription),
	}
}

// ToPatch builds an edit from the submitted fields only
func (r VenueRequest) ToPatch() model.VenuePatch {
	return model.VenuePatch{
		Name:               trimmed(r.Name),
		City:               trimmed(r.City),
		State:              trimmed(r.State),
		Address:            trimmed(r.Address),
		Phone:              trimmed(r.Phone),
		ImageLink:          trimmed(r.ImageLink),
		FacebookLink:       trimmed(r.FacebookLink),
		Website:            trimmed(r.Website),
		Genres:             genres(r.Genres),
		SeekingTalent:      checked(r.SeekingTalent),
		SeekingDescription: trimmed(r.SeekingDescription),
	}
}

// ArtistRequest is an artist create or edit submission
type ArtistRequest struct {
	Name               *string   `form:"name" json:"name"`
	City               *string   `form:"city" json:"city"`
	State              *string   `form:"state" json:"state"`
	Phone              *string   `form:"phone" json:"phone"`
	Genres             []string  `form:"genres" json:"genres"`
	ImageLink          *string   `form:"image_link" json:"image_link"`
	FacebookLink       *string   `form:"facebook_link" json:"facebook_link"`
	Website            *string   `form:"website" json:"website"`
	SeekingVenue       *Checkbox `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription *string   `form:"seeking_description" json:"seeking_description"`
}

// ToArtist builds a new artist with the same defaults as ToVenue
func (r ArtistRequest) ToArtist() *model.Artist {
	return &model.Artist{
		Name:               orEmpty(r.Name),
		City:               orEmpty(r.City),
		State:              orEmpty(r.State),
		Phone:              orEmpty(r.Phone),
		Genres:             model.NormalizeGenres(r.Genres),
		ImageLink:          orEmpty(r.ImageLink),
		FacebookLink:       orEmpty(r.FacebookLink),
		Website:            orEmpty(r.Website),
		SeekingVenue:       r.SeekingVenue != nil && bool(*r.SeekingVenue),
		SeekingDescription: orEmpty(r.SeekingDescription),
	}
}

// ToPatch builds an edit from the submitted fields only
func (r ArtistRequest) ToPatch() model.ArtistPatch {
	return model.ArtistPatch{
		Name:               trimmed(r.Name),
		City:               trimmed(r.City),
		State:              trimmed(r.State),
		Phone:              trimmed(r.Phone),
		Genres:             genres(r.Genres),
		ImageLink:          trimmed(r.ImageLink),
		FacebookLink:       trimmed(r.FacebookLink),
		Website:            trimmed(r.Website),
		SeekingVenue:       checked(r.SeekingVenue),
		SeekingDescription: trimmed(r.SeekingDescription),
	}
}

// ShowRequest is a show create submission. Missing fields bind as zero and
// are rejected by the store.
type ShowRequest struct {
	VenueID   uint       `form:"venue_id" json:"venue_id"`
	ArtistID  uint       `form:"artist_id" json:"artist_id"`
	StartTime *Timestamp `form:"start_time" json:"start_time"`
}

// ToShow builds the show
func (r ShowRequest) ToShow() *model.Show {
	show := &model.Show{VenueID: r.VenueID, ArtistID: r.ArtistID}
	if r.StartTime != nil {
		show.StartTime = r.StartTime.Time
	}
	return show
}

// SearchRequest is a name search submission
type SearchRequest struct {
	SearchTerm string `form:"search_term" json:"search_term"`
}

// Term returns the trimmed search term
func (r SearchRequest) Term() string {
	return strings.TrimSpace(r.SearchTerm)
}
