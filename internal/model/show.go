package model

import "time"

// Show links one venue and one artist at a start time
type Show struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	VenueID   uint      `json:"venue_id" gorm:"not null;index"`
	ArtistID  uint      `json:"artist_id" gorm:"not null;index"`
	StartTime time.Time `json:"start_time" gorm:"not null;index"`
	Venue     *Venue    `json:"-"`
	Artist    *Artist   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// ShowListing is a show joined with the names of both sides
type ShowListing struct {
	ID              uint      `json:"id"`
	VenueID         uint      `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint      `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}
