package models

import (
	"fmt"
	"time"
)

// Artist represents a recording artist in the demo database.
type Artist struct {
	id        string
	name      string
	genre     string
	age       int
	hometown  string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewArtist creates an Artist with timestamps set to now. The ID is assigned
// by the repository on Create.
func NewArtist(name, genre string, age int, hometown string) *Artist {
	now := time.Now()
	return &Artist{
		name:      name,
		genre:     genre,
		age:       age,
		hometown:  hometown,
		createdAt: now,
		updatedAt: now,
	}
}

func (a *Artist) ID() string            { return a.id }
func (a *Artist) Name() string          { return a.name }
func (a *Artist) Genre() string         { return a.genre }
func (a *Artist) Age() int              { return a.age }
func (a *Artist) Hometown() string      { return a.hometown }
func (a *Artist) CreatedAt() time.Time  { return a.createdAt }
func (a *Artist) UpdatedAt() time.Time  { return a.updatedAt }
func (a *Artist) DeletedAt() *time.Time { return a.deletedAt }

func (a *Artist) SetID(id string)           { a.id = id }
func (a *Artist) SetName(name string)       { a.name = name }
func (a *Artist) SetGenre(genre string)     { a.genre = genre }
func (a *Artist) SetAge(age int)            { a.age = age }
func (a *Artist) SetHometown(h string)      { a.hometown = h }
func (a *Artist) SetCreatedAt(t time.Time)  { a.createdAt = t }
func (a *Artist) SetUpdatedAt(t time.Time)  { a.updatedAt = t }
func (a *Artist) SetDeletedAt(t *time.Time) { a.deletedAt = t }

// Validate checks that the artist has a name and a non-negative age.
func (a *Artist) Validate() error {
	if a.name == "" {
		return fmt.Errorf("artist name is required")
	}
	if a.age < 0 {
		return fmt.Errorf("artist age cannot be negative: %d", a.age)
	}
	return nil
}
