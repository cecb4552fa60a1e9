package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/trek/internal/models"
	"github.com/desertthunder/trek/internal/shared"
)

// SongRepository implements models.Repository[*models.Song].
//
// The songs table does not exist until the walkthrough's first revision is
// applied; callers should expect "no such table" errors before then.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song into the database with a generated ID
func (r *SongRepository) Create(song *models.Song) error {
	song.SetID(shared.GenerateID())

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO songs (id, artist_id, name, length, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		song.ID(),
		song.ArtistID(),
		song.Name(),
		song.Length(),
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.Song, error) {
	query := `
		SELECT id, artist_id, name, length, created_at, updated_at, deleted_at
		FROM songs
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanSong(r.db.QueryRow(query, id))
}

// Update modifies an existing song in the database
func (r *SongRepository) Update(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.SetUpdatedAt(now)

	query := `
		UPDATE songs
		SET artist_id = ?, name = ?, length = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		song.ArtistID(),
		song.Name(),
		song.Length(),
		now,
		song.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("song not found or already deleted: %s", song.ID())
	}

	return nil
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	query := `
		UPDATE songs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("song not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all songs matching the given criteria, excluding
// soft-deleted songs
func (r *SongRepository) List(criteria map[string]any) ([]*models.Song, error) {
	query := `
		SELECT id, artist_id, name, length, created_at, updated_at, deleted_at
		FROM songs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if artistID, ok := criteria["artist_id"].(string); ok && artistID != "" {
		query += " AND artist_id = ?"
		args = append(args, artistID)
	}

	query += " ORDER BY created_at"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := r.scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// scanSong scans a row into a [models.Song]
func (r *SongRepository) scanSong(row scanner) (*models.Song, error) {
	var (
		id        string
		artistID  string
		name      string
		length    int
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &artistID, &name, &length, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("song not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	song := models.NewSong(artistID, name, length)
	song.SetID(id)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		song.SetDeletedAt(&deletedAt.Time)
	}

	return song, nil
}
