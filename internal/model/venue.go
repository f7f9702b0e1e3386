package model

import "time"

// Venue is a bookable location
type Venue struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	Name               string    `json:"name" gorm:"type:varchar(255);not null;index"`
	City               string    `json:"city" gorm:"type:varchar(120);index:idx_venue_location"`
	State              string    `json:"state" gorm:"type:varchar(120);index:idx_venue_location"`
	Address            string    `json:"address" gorm:"type:varchar(120)"`
	Phone              string    `json:"phone" gorm:"type:varchar(120)"`
	ImageLink          string    `json:"image_link" gorm:"type:varchar(500)"`
	FacebookLink       string    `json:"facebook_link" gorm:"type:varchar(120)"`
	Website            string    `json:"website" gorm:"type:varchar(120)"`
	Genres             Genres    `json:"genres"`
	SeekingTalent      bool      `json:"seeking_talent" gorm:"not null;default:false"`
	SeekingDescription string    `json:"seeking_description" gorm:"type:text"`
	Shows              []Show    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// VenuePatch carries the fields of an edit submission. Nil fields are left
// unchanged.
type VenuePatch struct {
	Name               *string
	City               *string
	State              *string
	Address            *string
	Phone              *string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	Genres             *[]string
	SeekingTalent      *bool
	SeekingDescription *string
}

// Apply copies the set fields onto v
func (p VenuePatch) Apply(v *Venue) {
	setString(&v.Name, p.Name)
	setString(&v.City, p.City)
	setString(&v.State, p.State)
	setString(&v.Address, p.Address)
	setString(&v.Phone, p.Phone)
	setString(&v.ImageLink, p.ImageLink)
	setString(&v.FacebookLink, p.FacebookLink)
	setString(&v.Website, p.Website)
	if p.Genres != nil {
		v.Genres = NormalizeGenres(*p.Genres)
	}
	if p.SeekingTalent != nil {
		v.SeekingTalent = *p.SeekingTalent
	}
	setString(&v.SeekingDescription, p.SeekingDescription)
}

// Location groups the venues sharing a city and state
type Location struct {
	City   string  `json:"city"`
	State  string  `json:"state"`
	Venues []Venue `json:"venues"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
