// Package store persists venues, artists and shows through GORM. Every
// write runs in its own transaction and either commits in full or is
// rolled back.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyyur-service/internal/apperr"

	"gorm.io/gorm"
)

// Store is the entity store
type Store struct {
	db *gorm.DB
}

// New creates a store on an open database
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return apperr.Storage(op, s.conn(ctx).Transaction(fn))
}

// notFound maps GORM's missing-row error onto the store taxonomy
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, apperr.ErrNotFound)
	}
	return err
}

func validateName(name string) error {
	var ve apperr.ValidationError
	if strings.TrimSpace(name) == "" {
		ve.Add("name", "is required")
	}
	return ve.OrNil()
}

// likeEscaper escapes LIKE wildcards with '!', which needs no quoting on
// PostgreSQL, MySQL or SQLite
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// nameContains filters on a case-insensitive substring of name. A blank
// term matches everything. Both sides are lowered by the database so the
// column and the term fold the same way, including non-ASCII letters the
// engine leaves untouched.
func nameContains(q *gorm.DB, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return q.Where("LOWER(name) LIKE LOWER(?) ESCAPE '!'", pattern)
}
