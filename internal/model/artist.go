package model

import "time"

// Artist is a performer
type Artist struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	Name               string    `json:"name" gorm:"type:varchar(255);not null;index"`
	City               string    `json:"city" gorm:"type:varchar(120)"`
	State              string    `json:"state" gorm:"type:varchar(120)"`
	Phone              string    `json:"phone" gorm:"type:varchar(120)"`
	Genres             Genres    `json:"genres"`
	ImageLink          string    `json:"image_link" gorm:"type:varchar(500)"`
	FacebookLink       string    `json:"facebook_link" gorm:"type:varchar(120)"`
	Website            string    `json:"website" gorm:"type:varchar(120)"`
	SeekingVenue       bool      `json:"seeking_venue" gorm:"not null;default:false"`
	SeekingDescription string    `json:"seeking_description" gorm:"type:text"`
	Shows              []Show    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ArtistPatch carries the fields of an edit submission. Nil fields are left
// unchanged.
type ArtistPatch struct {
	Name               *string
	City               *string
	State              *string
	Phone              *string
	Genres             *[]string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	SeekingVenue       *bool
	SeekingDescription *string
}

// Apply copies the set fields onto a
func (p ArtistPatch) Apply(a *Artist) {
	setString(&a.Name, p.Name)
	setString(&a.City, p.City)
	setString(&a.State, p.State)
	setString(&a.Phone, p.Phone)
	if p.Genres != nil {
		a.Genres = NormalizeGenres(*p.Genres)
	}
	setString(&a.ImageLink, p.ImageLink)
	setString(&a.FacebookLink, p.FacebookLink)
	setString(&a.Website, p.Website)
	if p.SeekingVenue != nil {
		a.SeekingVenue = *p.SeekingVenue
	}
	setString(&a.SeekingDescription, p.SeekingDescription)
}
