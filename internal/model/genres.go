package model

import (
	"database/sql/driver"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Genres is a list of free-text genre tags. It is stored as a text[] column
// on PostgreSQL and as the same array literal in a text column elsewhere.
type Genres []string

// Value implements driver.Valuer
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(g).Value()
}

// Scan implements sql.Scanner
func (g *Genres) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*g = Genres(arr)
	if *g == nil {
		*g = Genres{}
	}
	return nil
}

// GormDBDataType picks the column type per dialect
func (Genres) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// NormalizeGenres trims tags and drops blank ones
func NormalizeGenres(tags []string) Genres {
	out := make(Genres, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
