package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/trek/internal/models"
	"github.com/desertthunder/trek/internal/shared"
)

// ArtistRepository implements models.Repository[*models.Artist].
//
// Handles artist CRUD operations with soft delete support and
// genre/hometown-based queries.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new artist into the database with a generated ID
func (r *ArtistRepository) Create(artist *models.Artist) error {
	artist.SetID(shared.GenerateID())

	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO artists (id, name, genre, age, hometown, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		artist.ID(),
		artist.Name(),
		nullable(artist.Genre()),
		artist.Age(),
		nullable(artist.Hometown()),
		artist.CreatedAt(),
		artist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	return nil
}

// Get retrieves an artist by ID, excluding soft-deleted artists
func (r *ArtistRepository) Get(id string) (*models.Artist, error) {
	query := `
		SELECT id, name, genre, age, hometown, created_at, updated_at, deleted_at
		FROM artists
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanArtist(r.db.QueryRow(query, id))
}

// Update modifies an existing artist in the database
func (r *ArtistRepository) Update(artist *models.Artist) error {
	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	artist.SetUpdatedAt(now)

	query := `
		UPDATE artists
		SET name = ?, genre = ?, age = ?, hometown = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		artist.Name(),
		nullable(artist.Genre()),
		artist.Age(),
		nullable(artist.Hometown()),
		now,
		artist.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("artist not found or already deleted: %s", artist.ID())
	}

	return nil
}

// Delete soft-deletes an artist by ID
func (r *ArtistRepository) Delete(id string) error {
	query := `
		UPDATE artists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("artist not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all artists matching the given criteria, excluding
// soft-deleted artists
func (r *ArtistRepository) List(criteria map[string]any) ([]*models.Artist, error) {
	query := `
		SELECT id, name, genre, age, hometown, created_at, updated_at, deleted_at
		FROM artists
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if genre, ok := criteria["genre"].(string); ok && genre != "" {
		query += " AND genre = ?"
		args = append(args, genre)
	}

	if hometown, ok := criteria["hometown"].(string); ok && hometown != "" {
		query += " AND hometown = ?"
		args = append(args, hometown)
	}

	query += " ORDER BY created_at"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		artist, err := r.scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// scanner abstracts [sql.Row] and [sql.Rows] for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

// scanArtist scans a row into a [models.Artist]
func (r *ArtistRepository) scanArtist(row scanner) (*models.Artist, error) {
	var (
		id        string
		name      string
		genre     sql.NullString
		age       int
		hometown  sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &name, &genre, &age, &hometown, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}

	artist := models.NewArtist(name, genre.String, age, hometown.String)
	artist.SetID(id)
	artist.SetCreatedAt(createdAt)
	artist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		artist.SetDeletedAt(&deletedAt.Time)
	}

	return artist, nil
}
