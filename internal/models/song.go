package models

import (
	"fmt"
	"time"
)

// Song represents a song belonging to an artist. Length is in seconds.
type Song struct {
	id        string
	artistID  string
	name      string
	length    int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewSong creates a Song with timestamps set to now. The ID is assigned by
// the repository on Create.
func NewSong(artistID, name string, length int) *Song {
	now := time.Now()
	return &Song{
		artistID:  artistID,
		name:      name,
		length:    length,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Song) ID() string            { return s.id }
func (s *Song) ArtistID() string      { return s.artistID }
func (s *Song) Name() string          { return s.name }
func (s *Song) Length() int           { return s.length }
func (s *Song) CreatedAt() time.Time  { return s.createdAt }
func (s *Song) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Song) DeletedAt() *time.Time { return s.deletedAt }

func (s *Song) SetID(id string)           { s.id = id }
func (s *Song) SetArtistID(id string)     { s.artistID = id }
func (s *Song) SetName(name string)       { s.name = name }
func (s *Song) SetLength(length int)      { s.length = length }
func (s *Song) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *Song) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *Song) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// Validate checks that the song has a name and a positive length.
func (s *Song) Validate() error {
	if s.name == "" {
		return fmt.Errorf("song name is required")
	}
	if s.length <= 0 {
		return fmt.Errorf("song length must be positive: %d", s.length)
	}
	return nil
}
